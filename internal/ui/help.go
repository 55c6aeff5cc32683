package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"sheetview/internal/model"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(mode model.Mode, keys KeyMap, filterKeys FilterKeyMap, width int) string {
	if mode == model.ModeFilter {
		return renderHelpLine([]string{
			helpKey("type", "filter first column"),
			bindingHelp(filterKeys.Done),
		}, width)
	}

	return renderHelpLine([]string{
		helpKey("j/k", "navigate"),
		bindingHelp(keys.NextColumn),
		bindingHelp(keys.Sort),
		bindingHelp(keys.Filter),
		bindingHelp(keys.Reload),
		bindingHelp(keys.Export),
		bindingHelp(keys.Help),
		bindingHelp(keys.Quit),
	}, width)
}

func bindingHelp(b key.Binding) string {
	h := b.Help()
	return helpKey(h.Key, h.Desc)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d", "Half page down"},
			{"ctrl+u", "Half page up"},
			{"tab / l / →", "Next column"},
			{"shift+tab / h / ←", "Previous column"},
			{"1-9", "Jump to column"},
		}),
		titleSection("Sorting"),
		helpSection([]helpItem{
			{"s / enter", "Sort active column: ascending, descending, original order"},
		}),
		titleSection("Filtering"),
		helpSection([]helpItem{
			{"/", "Edit filter (matches the first column, ignoring case)"},
			{"enter / esc", "Leave the filter input"},
			{"esc", "Clear the filter"},
		}),
		titleSection("Data"),
		helpSection([]helpItem{
			{"r", "Reload the sheet"},
			{"x", "Export the displayed rows to xlsx"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
