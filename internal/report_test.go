package maestrotop

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportSaveWritesAllCharts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	report := NewReport(path)

	series := []Series{{Entity: "1", X: []float64{0, 1}, Y: []float64{5, 6}}}
	report.Add(ChartScatter, Figure{Title: "PE Engine", XLabel: "virtual_time", YLabel: "efficiency", Data: series})
	report.Add(ChartTimeSeries, Figure{Title: "Model", XLabel: "virtual_time", YLabel: "send_count", Data: series})
	report.Add(ChartHeatmap, Figure{Title: "Event Traffic", XLabel: "dest_lp", YLabel: "source_lp", Data: Matrix{
		Z: [][]int{{0, 2}, {1, 0}},
		X: []string{"1", "2"},
		Y: []string{"1", "2"},
	}})
	report.Add(ChartParallel, Figure{Title: "PE Parallel", Data: DimensionSet{
		Dims:  []Dimension{{Key: "efficiency", Label: "efficiency", Values: []float64{0.9, math.NaN()}}},
		Color: []float64{0, 1},
	}})

	if err := report.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(content)
	if !strings.Contains(html, "echarts") {
		t.Fatalf("report does not embed echarts")
	}
	for _, title := range []string{"PE Engine", "Model", "Event Traffic", "PE Parallel"} {
		if !strings.Contains(html, title) {
			t.Fatalf("report missing chart %q", title)
		}
	}
}

func TestReportEmptyFiguresStillSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")
	report := NewReport(path)
	report.Add(ChartScatter, Figure{Title: "PE Engine", Data: []Series{}})
	report.Add(ChartHeatmap, Figure{Title: "Event Traffic", Data: Matrix{Z: [][]int{}, X: []string{}, Y: []string{}}})

	if err := report.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}
