package maestrotop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pane is a bordered panel in the dashboard grid. Panes compose through the
// layout helpers:
//
//	left := NewPane("Engine", 40, 12).SetContent(plot)
//	right := NewPane("Events", 40, 12).SetContent(table)
//	row := Horizontal(left, right)
type Pane struct {
	title       string
	content     string
	width       int
	height      int
	borderStyle lipgloss.Style
	titleStyle  lipgloss.Style
}

// NewPane creates a pane with default styling.
func NewPane(title string, width, height int) Pane {
	return Pane{
		title:  title,
		width:  width,
		height: height,
		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		titleStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true),
	}
}

// SetContent sets the pane body.
func (p Pane) SetContent(content string) Pane {
	p.content = content
	return p
}

// SetSize sets the pane dimensions.
func (p Pane) SetSize(width, height int) Pane {
	p.width = width
	p.height = height
	return p
}

// SetFocused switches the border highlight.
func (p Pane) SetFocused(focused bool) Pane {
	if focused {
		p.borderStyle = p.borderStyle.BorderForeground(lipgloss.Color("170"))
	} else {
		p.borderStyle = p.borderStyle.BorderForeground(lipgloss.Color("240"))
	}
	return p
}

// Render draws the pane with its border and title.
func (p Pane) Render() string {
	var b strings.Builder
	if p.title != "" {
		b.WriteString(p.titleStyle.Render(p.title) + "\n")
	}
	b.WriteString(p.content)

	return p.borderStyle.
		Width(p.width).
		Height(p.height).
		Render(b.String())
}
