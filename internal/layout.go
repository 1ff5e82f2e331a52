package maestrotop

import (
	"github.com/charmbracelet/lipgloss"
)

// Horizontal renders panes side by side.
func Horizontal(panes ...Pane) string {
	if len(panes) == 0 {
		return ""
	}
	views := make([]string, len(panes))
	for i, pane := range panes {
		views[i] = pane.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, views...)
}

// Vertical renders panes stacked.
func Vertical(panes ...Pane) string {
	if len(panes) == 0 {
		return ""
	}
	views := make([]string, len(panes))
	for i, pane := range panes {
		views[i] = pane.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

// Wrap lays panes out in rows of the given column count.
func Wrap(columns int, panes ...Pane) string {
	if len(panes) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}
	var rows []string
	for i := 0; i < len(panes); i += columns {
		end := i + columns
		if end > len(panes) {
			end = len(panes)
		}
		rows = append(rows, Horizontal(panes[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
