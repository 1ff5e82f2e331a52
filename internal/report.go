package maestrotop

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Report exports the dashboard's figures to a standalone HTML page. It
// consumes the exact same Figure payloads the terminal sinks render, so the
// views stay sink-agnostic.
type Report struct {
	path string
	page *components.Page
}

// NewReport creates an empty report to be written at path.
func NewReport(path string) *Report {
	page := components.NewPage()
	page.PageTitle = "maestrotop"
	return &Report{path: path, page: page}
}

// Add appends one figure to the report as the chart matching its type.
func (r *Report) Add(chart ChartType, fig Figure) {
	switch chart {
	case ChartScatter:
		if series, ok := fig.Data.([]Series); ok {
			r.page.AddCharts(scatterChart(fig, series))
		}
	case ChartTimeSeries:
		if series, ok := fig.Data.([]Series); ok {
			r.page.AddCharts(lineChart(fig, series))
		}
	case ChartHeatmap:
		if m, ok := fig.Data.(Matrix); ok {
			r.page.AddCharts(heatmapChart(fig, m))
		}
	case ChartParallel:
		if dset, ok := fig.Data.(DimensionSet); ok {
			r.page.AddCharts(parallelChart(fig, dset))
		}
	}
}

// Save renders the page to the report path.
func (r *Report) Save() error {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := r.page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func scatterChart(fig Figure, series []Series) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(xyGlobals(fig)...)
	for _, sr := range series {
		scatter.AddSeries(sr.Entity, scatterData(sr))
	}
	return scatter
}

func lineChart(fig Figure, series []Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(xyGlobals(fig)...)
	for _, sr := range series {
		line.AddSeries(sr.Entity, lineData(sr), charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(true),
		}))
	}
	return line
}

func heatmapChart(fig Figure, m Matrix) *charts.HeatMap {
	heatmap := charts.NewHeatMap()

	maxCount := 0
	var data []opts.HeatMapData
	for i := range m.Y {
		for j := range m.X {
			count := m.Z[i][j]
			if count > maxCount {
				maxCount = count
			}
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{j, i, count},
			})
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	heatmap.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      fig.XLabel,
			Type:      "category",
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      fig.YLabel,
			Type:      "category",
			Data:      m.Y,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#313695", "#74add1", "#e0f3f8", "#fdae61", "#a50026"},
			},
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "450px"}),
	)

	heatmap.SetXAxis(m.X).AddSeries("Count", data)
	return heatmap
}

func parallelChart(fig Figure, dset DimensionSet) *charts.Parallel {
	parallel := charts.NewParallel()

	axes := make([]opts.ParallelAxis, 0, len(dset.Dims))
	for i, d := range dset.Dims {
		axes = append(axes, opts.ParallelAxis{Dim: i, Name: d.Label})
	}

	parallel.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithParallelAxisList(axes),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "450px"}),
	)

	var data []opts.ParallelData
	for row := 0; row < len(dset.Color); row++ {
		values := make([]interface{}, 0, len(dset.Dims))
		skip := false
		for _, d := range dset.Dims {
			v := d.Values[row]
			if math.IsNaN(v) {
				// JSON cannot carry NaN; the row is dropped from the export
				// only, never from the transform output.
				skip = true
				break
			}
			values = append(values, v)
		}
		if skip {
			continue
		}
		data = append(data, opts.ParallelData{Value: values})
	}
	parallel.AddSeries(fig.Title, data)
	return parallel
}

func xyGlobals(fig Figure) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: fig.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: fig.XLabel, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fig.YLabel, Type: "value"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "450px"}),
	}
}

func scatterData(sr Series) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(sr.X))
	for i := range sr.X {
		if i >= len(sr.Y) || math.IsNaN(sr.X[i]) || math.IsNaN(sr.Y[i]) {
			continue
		}
		data = append(data, opts.ScatterData{Value: []interface{}{sr.X[i], sr.Y[i]}})
	}
	return data
}

func lineData(sr Series) []opts.LineData {
	data := make([]opts.LineData, 0, len(sr.X))
	for i := range sr.X {
		if i >= len(sr.Y) || math.IsNaN(sr.X[i]) || math.IsNaN(sr.Y[i]) {
			continue
		}
		data = append(data, opts.LineData{Value: []interface{}{sr.X[i], sr.Y[i]}})
	}
	return data
}
