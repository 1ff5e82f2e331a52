package maestrotop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewTabs shows one view fullscreen with a tab bar to switch between
// views. Used by the dashboard's zoom mode.
type ViewTabs struct {
	views    []*View
	sinks    []TermSink
	selected int
	width    int
	height   int
}

// NewViewTabs creates tabs over parallel view/sink slices.
func NewViewTabs(views []*View, sinks []TermSink) *ViewTabs {
	return &ViewTabs{views: views, sinks: sinks, width: 80, height: 20}
}

// SetSize sets the dimensions for rendering.
func (ts *ViewTabs) SetSize(width, height int) *ViewTabs {
	ts.width = width
	ts.height = height
	return ts
}

// Select changes the active tab.
func (ts *ViewTabs) Select(index int) *ViewTabs {
	if index >= 0 && index < len(ts.views) {
		ts.selected = index
	}
	return ts
}

// Next moves to the next tab, wrapping around.
func (ts *ViewTabs) Next() *ViewTabs {
	if len(ts.views) > 0 {
		ts.selected = (ts.selected + 1) % len(ts.views)
	}
	return ts
}

// Prev moves to the previous tab, wrapping around.
func (ts *ViewTabs) Prev() *ViewTabs {
	if len(ts.views) > 0 {
		ts.selected = (ts.selected - 1 + len(ts.views)) % len(ts.views)
	}
	return ts
}

// Selected returns the active tab index.
func (ts *ViewTabs) Selected() int {
	return ts.selected
}

// Render draws the tab bar and the active view's sink content.
func (ts *ViewTabs) Render() string {
	if len(ts.views) == 0 {
		return "No views available"
	}

	var b strings.Builder
	b.WriteString(ts.renderTabs())
	b.WriteString("\n")

	sink := ts.sinks[ts.selected]
	sink.SetSize(ts.width-2, ts.height-5)
	b.WriteString(sink.View())
	return b.String()
}

func (ts *ViewTabs) renderTabs() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("170")).
		Background(lipgloss.Color("235")).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("170"))

	inactiveStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("236"))

	var tabs []string
	for i, v := range ts.views {
		if i == ts.selected {
			tabs = append(tabs, activeStyle.Render(v.Name))
		} else {
			tabs = append(tabs, inactiveStyle.Render(v.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
