package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sheetview/internal/config"
	"sheetview/internal/sheet"
)

// shouldRunOnboarding reports whether to ask for a sheet URL: only on a
// terminal, without a config file and without a URL from flags or env.
func shouldRunOnboarding(cfgPath, flagURL, envURL string) bool {
	if config.Exists(cfgPath) || flagURL != "" || envURL != "" {
		return false
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type onboardingStep int

const (
	stepURL onboardingStep = iota
	stepDone
)

type onboardingModel struct {
	step     onboardingStep
	urlInput textinput.Model
	url      string
	status   string
	invalid  string
	width    int
	height   int
}

var (
	obColorMuted  = lipgloss.Color("#7E8C80")
	obColorText   = lipgloss.Color("#D6E0D3")
	obColorAccent = lipgloss.Color("#8FA082")
	obColorDanger = lipgloss.Color("#f38ba8")

	obTitleStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obHeaderStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(obColorMuted)

	obPanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorMuted).
			Padding(1, 2)

	obInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(obColorAccent).
			Padding(0, 1)

	obLabelStyle = lipgloss.NewStyle().
			Foreground(obColorAccent).
			Bold(true)

	obMutedStyle = lipgloss.NewStyle().
			Foreground(obColorMuted)

	obWarnStyle = lipgloss.NewStyle().
			Foreground(obColorDanger)

	obFooterStyle = lipgloss.NewStyle().
			Foreground(obColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(obColorMuted)
)

func newOnboardingModel() onboardingModel {
	in := textinput.New()
	in.Placeholder = "https://docs.google.com/spreadsheets/d/<id>/gviz/tq?tqx=out:json"
	in.CharLimit = 500
	in.Prompt = "url> "
	in.TextStyle = lipgloss.NewStyle().Foreground(obColorText)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(obColorMuted)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(obColorText).Background(obColorAccent)
	in.Focus()

	return onboardingModel{
		step:     stepURL,
		urlInput: in,
	}
}

func (m onboardingModel) Init() tea.Cmd { return textinput.Blink }

func (m onboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.step != stepURL {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			raw := strings.TrimSpace(m.urlInput.Value())
			if raw == "" {
				m.status = "No URL entered. Using the built-in sheet."
				m.step = stepDone
				return m, tea.Quit
			}
			if err := validateSheetURL(raw); err != nil {
				m.invalid = err.Error()
				return m, nil
			}
			m.url = raw
			m.status = "Sheet URL saved."
			m.step = stepDone
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.status = "Skipped setup. Using the built-in sheet."
			m.step = stepDone
			return m, tea.Quit
		}
		m.invalid = ""
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func validateSheetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

func (m onboardingModel) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 24
	}

	header := obHeaderStyle.Width(width).Render("  " + obTitleStyle.Render("sheetview") + " " + obMutedStyle.Render("› Setup"))
	footer := obFooterStyle.Width(width).Render("enter save  esc skip")
	if m.step == stepDone {
		footer = obFooterStyle.Width(width).Render("Setup complete")
	}

	contentHeight := max(8, height-4)
	cardWidth := min(92, width-6)
	if cardWidth < 40 {
		cardWidth = width - 2
	}

	var body string
	switch m.step {
	case stepURL:
		input := obInputStyle.Width(max(30, cardWidth-8)).Render(m.urlInput.View())
		lines := []string{
			obLabelStyle.Render("Which sheet should sheetview open?"),
			"",
			obMutedStyle.Render("1) In Google Sheets choose File › Share › Publish to web"),
			obMutedStyle.Render("2) Paste the gviz query URL of the published sheet"),
			"",
			input,
		}
		if m.invalid != "" {
			lines = append(lines, obWarnStyle.Render(m.invalid))
		}
		lines = append(lines, "", obMutedStyle.Render("Leave empty to use the built-in sheet. Saved to ~/.config/sheetview/config.yaml"))
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, obLabelStyle.Render("Setup Complete"), "", obMutedStyle.Render(m.status))
	}

	card := obPanelStyle.Width(cardWidth).Render(body)
	content := lipgloss.Place(width, contentHeight, lipgloss.Center, lipgloss.Top, card)

	return lipgloss.NewStyle().
		Foreground(obColorText).
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, content, footer))
}

// runOnboarding prompts for the sheet URL and saves the config, so the
// prompt only appears once.
func runOnboarding(cfgPath string, cfg *config.Config) (*config.Config, error) {
	prog := tea.NewProgram(newOnboardingModel(), tea.WithAltScreen())
	finalModel, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("onboarding tui failed: %w", err)
	}
	m, ok := finalModel.(onboardingModel)
	if !ok {
		return nil, fmt.Errorf("unexpected onboarding model type")
	}
	return saveOnboarding(cfgPath, cfg, m.url)
}

func saveOnboarding(cfgPath string, cfg *config.Config, sheetURL string) (*config.Config, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if sheetURL != "" && sheetURL != sheet.DefaultURL {
		cfg.URL = sheetURL
	}
	if err := cfg.SaveToPath(cfgPath); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return cfg, nil
}
