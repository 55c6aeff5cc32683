package sheet_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sheetview/internal/model"
	"sheetview/internal/sheet"
	"sheetview/internal/table"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const twoByThree = "/*O_o*/\ngoogle.visualization.Query.setResponse(" +
	`{"table":{"cols":[{"label":"Domain"},{"label":"Price"}],"rows":[` +
	`{"c":[{"v":"b.com"},{"v":"$20.00"}]},` +
	`{"c":[{"v":"c.com"},{"v":"$5.00"}]},` +
	`{"c":[{"v":"a.com"},{"v":"$100.00"}]}` +
	`]}});`

func newSheetServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLoad(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, twoByThree)
	c := sheet.NewClient(srv.URL, sheet.WithHTTPClient(srv.Client()))

	ds, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Domain", "Price"}, ds.Columns)
	assert.Len(t, ds.Rows, 3)
	assert.Equal(t, srv.URL, c.URL())
}

func TestClientStatusError(t *testing.T) {
	srv := newSheetServer(t, http.StatusNotFound, "not here")
	c := sheet.NewClient(srv.URL, sheet.WithHTTPClient(srv.Client()))

	_, err := c.Fetch(context.Background())
	require.ErrorIs(t, err, sheet.ErrStatus)
	assert.Equal(t, "status", sheet.Kind(err))
}

func TestClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := sheet.NewClient(url, sheet.WithTimeout(2*time.Second))
	_, err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "network", sheet.Kind(err))
}

func TestClientMalformedPayload(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, "{}")
	c := sheet.NewClient(srv.URL, sheet.WithHTTPClient(srv.Client()))

	_, err := c.Load(context.Background())
	require.ErrorIs(t, err, sheet.ErrWrapper)
}

func TestLoadSortCycleEndToEnd(t *testing.T) {
	srv := newSheetServer(t, http.StatusOK, twoByThree)
	c := sheet.NewClient(srv.URL, sheet.WithHTTPClient(srv.Client()))

	ds, err := c.Load(context.Background())
	require.NoError(t, err)

	domains := func(rows []model.Row) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r[0].String())
		}
		return out
	}

	tbl := table.New(ds)
	original := []string{"b.com", "c.com", "a.com"}
	assert.Equal(t, original, domains(tbl.Rows()))

	tbl.ToggleSort(1)
	ascending := domains(tbl.Rows())
	assert.Equal(t, []string{"c.com", "b.com", "a.com"}, ascending)

	tbl.ToggleSort(1)
	descending := domains(tbl.Rows())
	for i, j := 0, len(ascending)-1; i < j; i, j = i+1, j-1 {
		ascending[i], ascending[j] = ascending[j], ascending[i]
	}
	if diff := cmp.Diff(ascending, descending); diff != "" {
		t.Fatalf("descending is not the reverse of ascending (-want +got):\n%s", diff)
	}

	tbl.ToggleSort(1)
	assert.Equal(t, original, domains(tbl.Rows()))
}
