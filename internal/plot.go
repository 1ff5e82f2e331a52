package maestrotop

import (
	"fmt"
	"math"
	"sort"

	drawille "github.com/chriskim06/drawille-go"
)

// TermSink is a Sink that renders into the terminal at a pane-driven size.
type TermSink interface {
	Sink
	SetSize(width, height int)
	View() string
}

const waitingMsg = "Waiting for data..."

var plotPalette = []drawille.Color{
	drawille.Red,
	drawille.Green,
	drawille.Yellow,
	drawille.Blue,
	drawille.Cyan,
	drawille.Orange,
	drawille.Purple,
	drawille.White,
}

// PlotSink renders grouped series on a braille canvas, one colored line per
// entity. Used by the scatter and time-series views.
type PlotSink struct {
	width     int
	height    int
	maxSeries int
	fig       *Figure
}

func NewPlotSink() *PlotSink {
	return &PlotSink{width: 78, height: 18, maxSeries: len(plotPalette)}
}

func (s *PlotSink) Init() {}

// Render replaces the sink content with a new figure.
func (s *PlotSink) Render(fig Figure) {
	s.fig = &fig
}

func (s *PlotSink) SetSize(width, height int) {
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
}

// View draws the latest figure. The points of each series are ordered by x
// before plotting; NaN points are dropped at the edge of rendering only,
// never in the transforms.
func (s *PlotSink) View() string {
	if s.fig == nil {
		return waitingMsg
	}
	series, ok := s.fig.Data.([]Series)
	if !ok {
		return "Unsupported chart data"
	}

	rows := make([][]float64, 0, len(series))
	for _, sr := range series {
		if len(rows) == s.maxSeries {
			break
		}
		ys := orderedFinite(sr)
		rows = append(rows, ys)
	}

	canvas := drawille.NewCanvas(s.width, s.height)
	canvas.ShowAxis = true
	canvas.LineColors = plotPalette[:min(len(rows), len(plotPalette))]
	if hasPoints(rows) {
		canvas.Fill(rows)
	}
	return canvas.String()
}

// orderedFinite returns the finite y values of a series in ascending-x
// order.
func orderedFinite(sr Series) []float64 {
	type point struct{ x, y float64 }
	pts := make([]point, 0, len(sr.X))
	for i := range sr.X {
		if i >= len(sr.Y) {
			break
		}
		if math.IsNaN(sr.X[i]) || math.IsNaN(sr.Y[i]) {
			continue
		}
		pts = append(pts, point{sr.X[i], sr.Y[i]})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.y
	}
	return ys
}

func hasPoints(rows [][]float64) bool {
	for _, r := range rows {
		if len(r) > 0 {
			return true
		}
	}
	return false
}

// MatrixSink renders a pairwise-frequency matrix as a counts table. Used by
// the heatmap view.
type MatrixSink struct {
	width  int
	height int
	fig    *Figure
}

func NewMatrixSink() *MatrixSink {
	return &MatrixSink{width: 78, height: 18}
}

func (s *MatrixSink) Init() {}

func (s *MatrixSink) Render(fig Figure) {
	s.fig = &fig
}

func (s *MatrixSink) SetSize(width, height int) {
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
}

func (s *MatrixSink) View() string {
	if s.fig == nil {
		return waitingMsg
	}
	m, ok := s.fig.Data.(Matrix)
	if !ok {
		return "Unsupported chart data"
	}
	if len(m.Y) == 0 {
		return "No events"
	}

	headers := make([]string, 0, len(m.X)+1)
	headers = append(headers, fmt.Sprintf("%s \\ %s", s.fig.YLabel, s.fig.XLabel))
	headers = append(headers, m.X...)

	rows := make([][]string, 0, len(m.Y))
	for i, src := range m.Y {
		row := make([]string, 0, len(m.X)+1)
		row = append(row, src)
		for j := range m.X {
			row = append(row, fmt.Sprintf("%d", m.Z[i][j]))
		}
		rows = append(rows, row)
	}

	return NewWrapTable().
		MaxHeight(s.height).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// ParallelSink renders a dimension set as an aligned table: one column per
// dimension, one row per record, color id first. Used by the
// parallel-coordinates view.
type ParallelSink struct {
	width   int
	height  int
	maxRows int
	fig     *Figure
}

func NewParallelSink() *ParallelSink {
	return &ParallelSink{width: 78, height: 18, maxRows: 256}
}

func (s *ParallelSink) Init() {}

func (s *ParallelSink) Render(fig Figure) {
	s.fig = &fig
}

func (s *ParallelSink) SetSize(width, height int) {
	if width > 0 {
		s.width = width
	}
	if height > 0 {
		s.height = height
	}
}

func (s *ParallelSink) View() string {
	if s.fig == nil {
		return waitingMsg
	}
	dset, ok := s.fig.Data.(DimensionSet)
	if !ok {
		return "Unsupported chart data"
	}
	if len(dset.Color) == 0 {
		return "No rows"
	}

	headers := make([]string, 0, len(dset.Dims)+1)
	headers = append(headers, "id")
	for _, d := range dset.Dims {
		headers = append(headers, d.Label)
	}

	count := len(dset.Color)
	if count > s.maxRows {
		count = s.maxRows
	}
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		row := make([]string, 0, len(dset.Dims)+1)
		row = append(row, formatCell(dset.Color[i]))
		for _, d := range dset.Dims {
			row = append(row, formatCell(d.Values[i]))
		}
		rows = append(rows, row)
	}

	return NewWrapTable().
		MaxHeight(s.height).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}
