// Package cmd implements the sheetview command line.
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"sheetview/internal/db"
	"sheetview/internal/logging"
	"sheetview/internal/model"
	"sheetview/internal/sheet"
	"sheetview/internal/source"
	"sheetview/internal/table"
	"sheetview/internal/ui"
)

type options struct {
	url         string
	configPath  string
	timeout     time.Duration
	journalPath string
	noJournal   bool
	logFile     string
	verbose     bool

	plain bool
	view  viewOptions
}

type viewOptions struct {
	filter string
	sort   string
	desc   bool
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context, version string) error {
	return NewRootCmd(version).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sheetview",
		Short: "Browse a published Google Sheet as a sortable table",
		Long: `Fetch a published Google Sheet and show it as a table.

In a terminal the table is interactive: press s on a column to sort it
(ascending, descending, original order) and / to filter by the first column.
When stdout is not a terminal, or with --plain, the table is printed once.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.url, "url", "", "Sheet gviz URL (or set "+EnvURL+")")
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.config/sheetview/config.yaml)")
	pf.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (default: 30s)")
	pf.StringVar(&opts.journalPath, "journal", "", "Fetch journal database (default: ~/.sheetview/journal.db)")
	pf.BoolVar(&opts.noJournal, "no-journal", false, "Do not record fetches")
	pf.StringVar(&opts.logFile, "log-file", "", "Log destination (default: ~/.sheetview/sheetview.log, stderr when not interactive)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	pf.StringVar(&opts.view.filter, "filter", "", "Keep rows whose first column contains this text")
	pf.StringVar(&opts.view.sort, "sort", "", "Sort by column name or 1-based index")
	pf.BoolVar(&opts.view.desc, "desc", false, "Sort descending (with --sort)")

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print the table instead of starting the interactive view")

	cmd.AddCommand(newDumpCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newHistoryCmd(opts))
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sheetview %s\n", version)
		},
	}
}

// session holds what a single command run needs to fetch the sheet.
type session struct {
	settings Settings
	logger   *zap.Logger
	journal  *sql.DB
	source   *source.Source
}

func newSession(opts *options, interactive bool) (*session, error) {
	settings, err := resolveSettings(opts, interactive)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(settings.LogFile, settings.Debug)
	if err != nil {
		return nil, err
	}

	for _, w := range settings.Warnings {
		logger.Warn(w)
	}

	s := &session{settings: settings, logger: logger}
	if !settings.NoJournal {
		s.journal = openJournal(settings.JournalPath, logger)
	}

	client := sheet.NewClient(settings.URL, sheet.WithTimeout(settings.Timeout))
	s.source = source.New(client, s.journal, logger)

	logger.Debug("Session started",
		zap.String("url", settings.URL),
		zap.Duration("timeout", settings.Timeout),
		zap.Bool("journal", s.journal != nil))
	return s, nil
}

// openJournal opens the fetch journal. A journal that cannot be opened is
// skipped, fetching still works.
func openJournal(path string, logger *zap.Logger) *sql.DB {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		logger.Warn("Fetch journal unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	journal, err := db.Open(path)
	if err != nil {
		logger.Warn("Fetch journal unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return journal
}

func (s *session) Close() {
	if s.journal != nil {
		_ = s.journal.Close()
	}
	_ = s.logger.Sync()
}

func runView(cmd *cobra.Command, opts *options) error {
	interactive := !opts.plain && term.IsTerminal(int(os.Stdout.Fd()))

	sess, err := newSession(opts, interactive)
	if err != nil {
		return err
	}
	defer sess.Close()

	if interactive {
		p := tea.NewProgram(ui.New(sess.source, ""), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running app: %w", err)
		}
		return nil
	}

	ds, err := sess.source.Load(cmd.Context(), "")
	if err != nil {
		// Already logged and journaled; the table stays empty.
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderPlain(model.Dataset{}, model.NewViewState()))
		return nil
	}

	view, state, err := deriveView(ds, opts.view)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderPlain(view, state))
	return nil
}

// loadView fetches the sheet once and derives the view for the one-shot
// commands. Fetch errors are returned.
func loadView(ctx context.Context, opts *options) (model.Dataset, model.ViewState, error) {
	sess, err := newSession(opts, false)
	if err != nil {
		return model.Dataset{}, model.ViewState{}, err
	}
	defer sess.Close()

	ds, err := sess.source.Load(ctx, "")
	if err != nil {
		return model.Dataset{}, model.ViewState{}, fmt.Errorf("failed to load sheet: %w", err)
	}
	return deriveView(ds, opts.view)
}

// deriveView applies the filter and sort flags the way the interactive view
// would: one toggle for ascending, two for descending.
func deriveView(ds model.Dataset, v viewOptions) (model.Dataset, model.ViewState, error) {
	t := table.New(ds)
	t.SetFilterText(v.filter)

	switch {
	case v.sort != "":
		col, err := resolveColumn(ds.Columns, v.sort)
		if err != nil {
			return model.Dataset{}, model.ViewState{}, err
		}
		t.ToggleSort(col)
		if v.desc {
			t.ToggleSort(col)
		}
	case v.desc:
		return model.Dataset{}, model.ViewState{}, fmt.Errorf("--desc requires --sort")
	}

	return model.Dataset{Columns: t.Columns(), Rows: t.Rows()}, t.State(), nil
}

// resolveColumn finds a column by label, ignoring case, or by 1-based index.
func resolveColumn(columns []string, name string) (int, error) {
	name = strings.TrimSpace(name)
	for i, c := range columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 && n <= len(columns) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("unknown column %q", name)
}
