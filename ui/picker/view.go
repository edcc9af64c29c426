package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/immich-janitor/immich-janitor/internal/pattern"
	"github.com/immich-janitor/immich-janitor/ui"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.PrimaryColor).
			Padding(0, 1)

	entryStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedEntryStyle = lipgloss.NewStyle().
				Background(ui.PrimaryColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.SecondaryColor).
			Padding(0, 1).
			Margin(1, 0, 0, 0)

	editInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.PrimaryColor).
			Padding(0, 1).
			Margin(1, 0)

	helpStyle = lipgloss.NewStyle().
			Foreground(ui.SecondaryColor).
			Italic(true).
			Margin(1, 0, 0, 0)

	countStyle   = lipgloss.NewStyle().Foreground(ui.SuccessColor)
	pendingStyle = lipgloss.NewStyle().Foreground(ui.SecondaryColor)
	errorStyle   = lipgloss.NewStyle().Foreground(ui.ErrorColor)
)

// View renders the picker
func (m *Model) View() string {
	if m.done {
		return ""
	}

	parts := []string{headerStyle.Render("Interactive Regex Builder")}

	switch m.mode {
	case EditMode:
		parts = append(parts,
			editInputStyle.Render(m.input.View()),
			helpStyle.Render("Enter: Test pattern • Esc: Cancel"))
	case ConfirmMode:
		e, _ := m.current()
		question := fmt.Sprintf("Use pattern %s (%d matches)? [y/N]", e.Pattern, e.Count)
		parts = append(parts, m.renderEntries(), m.renderPreview(), headerStyle.Render(question))
	default:
		parts = append(parts, m.renderEntries(), m.renderPreview(),
			helpStyle.Render("↑/↓: Move • Enter: Select • c: Custom pattern • q: Quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderEntries() string {
	if len(m.entries) == 0 {
		return pendingStyle.Italic(true).Render("No suggestions (press 'c' to type a pattern)")
	}

	width := m.width - 30
	if width < 20 {
		width = 20
	}

	lines := make([]string, 0, len(m.entries))
	for i, e := range m.entries {
		text := fmt.Sprintf("%d. %s", i+1, ui.Truncate(e.Pattern, width))
		if i == m.cursor {
			lines = append(lines, selectedEntryStyle.Render(text)+" "+renderStatus(e))
			continue
		}
		lines = append(lines, entryStyle.Render(text)+" "+renderStatus(e))
	}
	return strings.Join(lines, "\n")
}

func renderStatus(e Entry) string {
	switch {
	case !e.Tested:
		return pendingStyle.Render("(testing...)")
	case !e.Valid:
		return errorStyle.Render("(invalid)")
	default:
		return countStyle.Render(fmt.Sprintf("(%d matches)", e.Count))
	}
}

// renderPreview describes the highlighted entry and lists sample matches
func (m *Model) renderPreview() string {
	e, ok := m.current()
	if !ok {
		return ""
	}

	lines := []string{
		e.Description,
		ui.Dim("Explanation: " + pattern.Explain(e.Pattern)),
	}

	switch {
	case !e.Tested:
	case !e.Valid:
		lines = append(lines, errorStyle.Render("Invalid regex: "+e.Error))
	case len(e.Samples) == 0:
		lines = append(lines, ui.Warn("No matching files"))
	default:
		lines = append(lines, fmt.Sprintf("Sample matches (first %d):", pattern.SampleLimit))
		for _, name := range e.Samples {
			lines = append(lines, "  ✓ "+name)
		}
	}

	return previewStyle.Render(strings.Join(lines, "\n"))
}
