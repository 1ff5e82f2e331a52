package maestrotop

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// WrapTable wraps a lipgloss table with a height budget: when the rows
// exceed maxHeight, it splits them into multiple tables rendered
// side-by-side. The heatmap and parallel-coordinate sinks use it to fit
// wide matrices into a pane.
type WrapTable struct {
	headers     []string
	rows        [][]string
	maxHeight   int
	maxWidth    int
	border      lipgloss.Border
	borderStyle lipgloss.Style
}

// NewWrapTable creates a wrap table with default styling.
func NewWrapTable() *WrapTable {
	return &WrapTable{
		border:      lipgloss.NormalBorder(),
		borderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Headers sets the table headers.
func (wt *WrapTable) Headers(headers ...string) *WrapTable {
	wt.headers = headers
	return wt
}

// Rows sets the table rows.
func (wt *WrapTable) Rows(rows ...[]string) *WrapTable {
	wt.rows = rows
	return wt
}

// MaxHeight sets the height budget.
func (wt *WrapTable) MaxHeight(height int) *WrapTable {
	wt.maxHeight = height
	return wt
}

// MaxWidth sets the width constraint applied when the rows fit one table.
func (wt *WrapTable) MaxWidth(width int) *WrapTable {
	wt.maxWidth = width
	return wt
}

// Render draws the table, wrapping into columns when needed.
func (wt *WrapTable) Render() string {
	if len(wt.rows) == 0 {
		return ""
	}

	// Header line + top/bottom borders + header separator.
	rowsPerTable := wt.maxHeight - 4
	if rowsPerTable < 1 {
		rowsPerTable = 1
	}

	if len(wt.rows) <= rowsPerTable {
		t := table.New().
			Border(wt.border).
			BorderStyle(wt.borderStyle).
			Headers(wt.headers...).
			Rows(wt.rows...)
		if wt.maxWidth > 0 {
			t = t.Width(wt.maxWidth)
		}
		return t.String()
	}

	var tables []string
	for i := 0; i < len(wt.rows); i += rowsPerTable {
		end := i + rowsPerTable
		if end > len(wt.rows) {
			end = len(wt.rows)
		}
		t := table.New().
			Border(wt.border).
			BorderStyle(wt.borderStyle).
			Headers(wt.headers...).
			Rows(wt.rows[i:end]...)
		tables = append(tables, t.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tables...)
}

// String is a convenience method that calls Render.
func (wt *WrapTable) String() string {
	return wt.Render()
}
