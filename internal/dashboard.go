package maestrotop

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fileCategories is the backend's category order for the selection modal.
var fileCategories = []string{"simulations", "events", "models"}

type dashboardModel struct {
	client *Client
	cache  *Cache
	reload *Reloader
	views  []*View
	sinks  []TermSink
	tabs   *ViewTabs

	exportPath string

	selectedPane int
	zoomed       bool

	showModal bool
	listing   *FileListing
	catIdx    int
	fileIdx   int

	width  int
	height int
	ready  bool
	status string
}

type loadRequestMsg struct{}

// NewDashboard wires the four views to their terminal sinks and subscribes
// them to the reload signal.
func NewDashboard(client *Client, cache *Cache, reload *Reloader, exportPath string) dashboardModel {
	scatterSink := NewPlotSink()
	seriesSink := NewPlotSink()
	matrixSink := NewMatrixSink()
	parallelSink := NewParallelSink()

	views := []*View{
		NewScatterView(cache, scatterSink),
		NewHeatmapView(cache, matrixSink),
		NewTimeSeriesView(cache, seriesSink),
		NewParallelView(cache, parallelSink),
	}
	sinks := []TermSink{scatterSink, matrixSink, seriesSink, parallelSink}

	for _, v := range views {
		v.Attach(reload)
	}

	return dashboardModel{
		client:     client,
		cache:      cache,
		reload:     reload,
		views:      views,
		sinks:      sinks,
		tabs:       NewViewTabs(views, sinks),
		exportPath: exportPath,
	}
}

// RunDashboard starts the interactive terminal UI.
func RunDashboard(m dashboardModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m dashboardModel) Init() tea.Cmd {
	return func() tea.Msg { return loadRequestMsg{} }
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case loadRequestMsg:
		gen := m.reload.Bump()
		m.status = fmt.Sprintf("loaded generation %d", gen)
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showModal {
		return m.handleModalKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.cache.Dispose()
		return m, tea.Quit
	case "r":
		gen := m.reload.Bump()
		m.status = fmt.Sprintf("loaded generation %d", gen)
	case "f":
		listing, err := m.client.Files(context.Background())
		if err != nil {
			m.status = fmt.Sprintf("list files: %v", err)
			break
		}
		m.listing = listing
		m.catIdx = 0
		m.fileIdx = 0
		m.showModal = true
	case "z":
		m.zoomed = !m.zoomed
		if m.zoomed {
			m.tabs.Select(m.selectedPane)
		} else {
			m.selectedPane = m.tabs.Selected()
		}
	case "[":
		if m.zoomed {
			m.tabs.Prev()
		}
	case "]":
		if m.zoomed {
			m.tabs.Next()
		}
	case "h", "left":
		if !m.zoomed && m.selectedPane%2 == 1 {
			m.selectedPane--
		}
	case "l", "right":
		if !m.zoomed && m.selectedPane%2 == 0 && m.selectedPane+1 < len(m.views) {
			m.selectedPane++
		}
	case "k", "up":
		if !m.zoomed && m.selectedPane >= 2 {
			m.selectedPane -= 2
		}
	case "j", "down":
		if !m.zoomed && m.selectedPane+2 < len(m.views) {
			m.selectedPane += 2
		}
	case "x":
		m = m.cycleAxis(true)
	case "y":
		m = m.cycleAxis(false)
	case "e":
		m = m.export()
	}

	return m, nil
}

func (m dashboardModel) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	files := m.modalFiles()

	switch msg.String() {
	case "esc", "f":
		m.showModal = false
	case "h", "left":
		if m.catIdx > 0 {
			m.catIdx--
			m.fileIdx = 0
		}
	case "l", "right":
		if m.catIdx < len(fileCategories)-1 {
			m.catIdx++
			m.fileIdx = 0
		}
	case "j", "down":
		if m.fileIdx < len(files)-1 {
			m.fileIdx++
		}
	case "k", "up":
		if m.fileIdx > 0 {
			m.fileIdx--
		}
	case "enter":
		if m.fileIdx >= len(files) {
			break
		}
		category := fileCategories[m.catIdx]
		file := files[m.fileIdx]
		if err := m.client.Select(context.Background(), category, file); err != nil {
			m.status = fmt.Sprintf("select: %v", err)
			break
		}
		// Invalidation must complete before the reload signal fires so no
		// subscriber can observe a stale dataset.
		m.cache.Invalidate()
		gen := m.reload.Bump()
		m.status = fmt.Sprintf("%s/%s selected, generation %d", category, file, gen)
		m.showModal = false
	case "ctrl+c", "q":
		m.cache.Dispose()
		return m, tea.Quit
	}

	return m, nil
}

func (m dashboardModel) modalFiles() []string {
	if m.listing == nil {
		return nil
	}
	return m.listing.Files[fileCategories[m.catIdx]]
}

func (m dashboardModel) focusedView() *View {
	i := m.selectedPane
	if m.zoomed {
		i = m.tabs.Selected()
	}
	if i < 0 || i >= len(m.views) {
		return nil
	}
	return m.views[i]
}

func (m dashboardModel) cycleAxis(xAxis bool) dashboardModel {
	v := m.focusedView()
	if v == nil {
		return m
	}
	ds, err := m.cache.Get(context.Background(), v.Kind)
	if err != nil {
		m.status = fmt.Sprintf("%s: %v", v.Name, err)
		return m
	}
	if xAxis {
		v.CycleXAxis(ds)
	} else {
		v.CycleYAxis(ds)
	}
	if err := v.Refresh(context.Background()); err != nil {
		m.status = fmt.Sprintf("%s: %v", v.Name, err)
		return m
	}
	m.status = fmt.Sprintf("%s: x=%s y=%s", v.Name, v.XAxis, v.YAxis)
	return m
}

func (m dashboardModel) export() dashboardModel {
	report := NewReport(m.exportPath)
	for _, v := range m.views {
		ds, err := m.cache.Get(context.Background(), v.Kind)
		if err != nil {
			// One failing dataset should not block exporting the others.
			m.status = fmt.Sprintf("export: %s: %v", v.Name, err)
			continue
		}
		report.Add(v.Chart, v.Figure(ds))
	}
	if err := report.Save(); err != nil {
		m.status = fmt.Sprintf("export: %v", err)
		return m
	}
	m.status = fmt.Sprintf("exported %s", m.exportPath)
	return m
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var baseView string
	if m.zoomed {
		baseView = m.tabs.SetSize(m.width, m.height-2).Render()
	} else {
		columns := 2
		availableHeight := m.height - 2
		paneWidth := m.width/columns - 2
		paneHeight := availableHeight/columns - 2

		panes := make([]Pane, 0, len(m.views))
		for i, v := range m.views {
			m.sinks[i].SetSize(paneWidth-2, paneHeight-3)
			pane := NewPane(v.Name, paneWidth, paneHeight).
				SetContent(m.sinks[i].View())
			if i == m.selectedPane {
				pane = pane.SetFocused(true)
			}
			panes = append(panes, pane)
		}
		baseView = Wrap(columns, panes...)
	}

	help := "r=Reload  f=Files  x/y=Cycle Axis  z=Zoom  []=Switch View  e=Export  hjkl=Navigate  q=Quit"
	if m.status != "" {
		help = m.status + "  |  " + help
	}
	helpBar := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Background(lipgloss.Color("235")).
		Width(m.width).
		Align(lipgloss.Center).
		Render(help)

	baseView = baseView + "\n" + helpBar

	if m.showModal {
		return m.renderModal()
	}
	return baseView
}

func (m dashboardModel) renderModal() string {
	modalWidth := int(float64(m.width) * 0.6)
	modalHeight := int(float64(m.height) * 0.6)

	modalPane := NewPane("Select Data File", modalWidth, modalHeight).
		SetContent(m.renderFileList(modalHeight - 4)).
		SetFocused(true)

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("h/l=Category  j/k=File  Enter=Select  ESC=Cancel")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalPane.Render()+"\n"+helpText,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("235")),
	)
}

func (m dashboardModel) renderFileList(maxLines int) string {
	activeCatStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true)
	catStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("170")).
		Bold(true)

	var cats []string
	for i, cat := range fileCategories {
		if i == m.catIdx {
			cats = append(cats, activeCatStyle.Render(cat))
		} else {
			cats = append(cats, catStyle.Render(cat))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(cats, "  "))
	b.WriteString("\n\n")

	files := m.modalFiles()
	if len(files) == 0 {
		b.WriteString("No files available")
		return b.String()
	}

	current := ""
	if m.listing != nil {
		current = m.listing.Selected[fileCategories[m.catIdx]]
	}
	for i, file := range files {
		if i >= maxLines {
			break
		}
		line := "  " + file
		if file == current {
			line += " (current)"
		}
		if i == m.fileIdx {
			b.WriteString(selectedStyle.Render("▶" + line[1:]))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
