package ui

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"sheetview/internal/export"
	"sheetview/internal/model"
)

// DefaultExportPath is where the x key writes the displayed rows.
const DefaultExportPath = "sheetview-export.xlsx"

// Source loads the sheet for one activation.
type Source interface {
	Load(ctx context.Context, fetchID string) (model.Dataset, error)
	URL() string
}

// Model is the root Bubble Tea model.
type Model struct {
	source     Source
	exportPath string
	mode       model.Mode
	gState     GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// fetchID identifies the current activation. Results from any other
	// fetch are dropped.
	fetchID string
	loading bool
	spinner spinner.Model
	filter  textinput.Model
	sheet   *SheetModel

	keys       KeyMap
	filterKeys FilterKeyMap
}

// New creates a new root model. An empty exportPath uses DefaultExportPath.
func New(src Source, exportPath string) Model {
	if exportPath == "" {
		exportPath = DefaultExportPath
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Filter"
	ti.CharLimit = 200

	return Model{
		source:     src,
		exportPath: exportPath,
		mode:       model.ModeNav,
		gState:     GStateIdle,
		fetchID:    uuid.NewString(),
		loading:    true,
		spinner:    sp,
		filter:     ti,
		keys:       DefaultKeyMap(),
		filterKeys: DefaultFilterKeyMap(),
	}
}

// Init starts the fetch for the first activation.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, fetchCmd(m.source, m.fetchID))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case model.DatasetLoadedMsg:
		if msg.FetchID != m.fetchID {
			return m, nil
		}
		m.loading = false
		m.sheet = NewSheetModel(msg.Dataset)
		m.sheet.SetFilter(m.filter.Value())
		m.filter.Placeholder = filterPlaceholder(msg.Dataset.Columns)
		return m, nil

	case model.FetchFailedMsg:
		// Failures are logged by the source; the table simply stays empty.
		if msg.FetchID != m.fetchID {
			return m, nil
		}
		m.loading = false
		return m, nil

	case model.ExportedMsg:
		m.error = ""
		m.info = fmt.Sprintf("Exported %d rows to %s", msg.Rows, msg.Path)
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.mode == model.ModeFilter {
			return m.handleFilterMode(msg)
		}

		if key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" {
				m.showingHelp = false
			}
			return m, nil
		}

		return m.handleNavMode(msg)
	}

	if m.mode == model.ModeFilter {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

func filterPlaceholder(columns []string) string {
	if len(columns) == 0 || strings.TrimSpace(columns[0]) == "" {
		return "Filter"
	}
	return "Filter by " + columns[0]
}

// handleFilterMode applies the filter on every keystroke.
func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.filterKeys.Done) {
		m.mode = model.ModeNav
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.sheet != nil {
		m.sheet.SetFilter(m.filter.Value())
	}
	return m, cmd
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.Filter):
		m.mode = model.ModeFilter
		m.info = ""
		cmd := m.filter.Focus()
		return m, cmd
	}

	if t := m.currentTable(); t != nil {
		switch {
		case key.Matches(msg, m.keys.NextColumn):
			t.NextColumn()
			return m, nil
		case key.Matches(msg, m.keys.PrevColumn):
			t.PrevColumn()
			return m, nil
		case key.Matches(msg, m.keys.Sort):
			m.info = t.ToggleSortActiveColumn()
			return m, nil
		case key.Matches(msg, m.keys.ClearFilter):
			if t.ClearFilter() {
				m.filter.SetValue("")
				m.info = "Filter cleared"
			}
			return m, nil
		case key.Matches(msg, m.keys.Export):
			return m, exportCmd(m.exportPath, m.sheet.Displayed())
		}
		if n, err := strconv.Atoi(msg.String()); err == nil {
			if t.JumpToColumn(n) {
				m.info = fmt.Sprintf("Jumped to column %d", n)
			} else {
				m.info = fmt.Sprintf("Column %d unavailable", n)
			}
			return m, nil
		}
	}

	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if m.sheet != nil {
			m.sheet.JumpToTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	if m.sheet == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		m.sheet.MoveDown()
	case key.Matches(msg, m.keys.Up):
		m.sheet.MoveUp()
	case key.Matches(msg, m.keys.Bottom):
		m.sheet.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.sheet.HalfPageDown(m.height)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.sheet.HalfPageUp(m.height)
	}
	return m, nil
}

func (m *Model) currentTable() tableController {
	if m.sheet == nil {
		return nil
	}
	return m.sheet
}

// reload starts a new activation with fresh state.
func (m Model) reload() (tea.Model, tea.Cmd) {
	wasLoading := m.loading
	m.fetchID = uuid.NewString()
	m.loading = true
	m.sheet = nil
	m.error = ""
	m.info = "Reloading sheet"
	m.filter.SetValue("")

	if wasLoading {
		return m, fetchCmd(m.source, m.fetchID)
	}
	return m, tea.Batch(m.spinner.Tick, fetchCmd(m.source, m.fetchID))
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	header := renderHeader([]string{"Data Table"}, sourceHost(m.source.URL()), m.width)
	footer := RenderHelp(m.mode, m.keys, m.filterKeys, m.width)

	sections := []string{header}
	if m.error != "" {
		sections = append(sections, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		sections = append(sections, SuccessStyle.Width(m.width).Render(m.info))
	}
	if m.mode == model.ModeFilter || m.filter.Value() != "" {
		sections = append(sections, FilterPromptStyle.Width(m.width).Render(m.filter.View()))
	}

	used := lipgloss.Height(footer)
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	contentHeight := max(1, m.height-used)

	var content string
	switch {
	case m.loading:
		content = EmptyStateStyle.Render(m.spinner.View() + " Loading sheet...")
	case m.sheet == nil:
		content = EmptyStateStyle.Render(NoDataMessage)
	default:
		content = m.sheet.View(m.width, contentHeight)
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentHeight).Render(content)

	sections = append(sections, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func sourceHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

func renderHeader(breadcrumbParts []string, right string, width int) string {
	title := HeaderStyle.Render("sheetview")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right = BreadcrumbStyle.Render(right) + "  "

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func fetchCmd(src Source, fetchID string) tea.Cmd {
	return func() tea.Msg {
		ds, err := src.Load(context.Background(), fetchID)
		if err != nil {
			return model.FetchFailedMsg{FetchID: fetchID, Err: err}
		}
		return model.DatasetLoadedMsg{FetchID: fetchID, Dataset: ds}
	}
}

func exportCmd(path string, view model.Dataset) tea.Cmd {
	return func() tea.Msg {
		if err := export.SaveXLSX(path, view); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("export failed: %w", err)}
		}
		return model.ExportedMsg{Path: path, Rows: len(view.Rows)}
	}
}
