package maestrotop

import (
	"math"
	"reflect"
	"testing"
)

func TestGroupSeriesGroupsByEntity(t *testing.T) {
	data := []Record{
		{"id": float64(1), "x": float64(0), "y": float64(5)},
		{"id": float64(2), "x": float64(0), "y": float64(3)},
		{"id": float64(1), "x": float64(1), "y": float64(6)},
	}

	series := GroupSeries(data, "id", "x", "y")

	if len(series) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(series))
	}
	if series[0].Entity != "1" || series[1].Entity != "2" {
		t.Fatalf("groups out of first-seen order: %q, %q", series[0].Entity, series[1].Entity)
	}
	if !reflect.DeepEqual(series[0].X, []float64{0, 1}) || !reflect.DeepEqual(series[0].Y, []float64{5, 6}) {
		t.Fatalf("group 1 = x:%v y:%v", series[0].X, series[0].Y)
	}
	if !reflect.DeepEqual(series[1].X, []float64{0}) || !reflect.DeepEqual(series[1].Y, []float64{3}) {
		t.Fatalf("group 2 = x:%v y:%v", series[1].X, series[1].Y)
	}
}

func TestGroupSeriesSkipsRecordsMissingEntity(t *testing.T) {
	data := []Record{
		{"x": float64(0), "y": float64(1)},
		{"id": float64(7), "x": float64(2), "y": float64(3)},
	}

	series := GroupSeries(data, "id", "x", "y")
	if len(series) != 1 || series[0].Entity != "7" {
		t.Fatalf("expected only entity 7, got %+v", series)
	}
}

func TestGroupSeriesMissingValueKeepsAlignment(t *testing.T) {
	data := []Record{
		{"id": float64(1), "x": float64(0)},
		{"id": float64(1), "x": float64(1), "y": float64(4)},
	}

	series := GroupSeries(data, "id", "x", "y")
	if len(series) != 1 {
		t.Fatalf("expected 1 group, got %d", len(series))
	}
	if len(series[0].X) != 2 || len(series[0].Y) != 2 {
		t.Fatalf("rows dropped: x=%v y=%v", series[0].X, series[0].Y)
	}
	if !math.IsNaN(series[0].Y[0]) {
		t.Fatalf("missing y should be NaN, got %v", series[0].Y[0])
	}
	if series[0].Y[1] != 4 {
		t.Fatalf("present y misaligned: %v", series[0].Y)
	}
}

func TestPairwiseMatrixCounts(t *testing.T) {
	data := []Record{
		{"source_lp": float64(1), "dest_lp": float64(2)},
		{"source_lp": float64(1), "dest_lp": float64(2)},
		{"source_lp": float64(2), "dest_lp": float64(1)},
	}

	m := PairwiseMatrix(data, "source_lp", "dest_lp")

	if !reflect.DeepEqual(m.X, []string{"1", "2"}) {
		t.Fatalf("x = %v", m.X)
	}
	if !reflect.DeepEqual(m.Y, []string{"1", "2"}) {
		t.Fatalf("y = %v", m.Y)
	}
	if !reflect.DeepEqual(m.Z, [][]int{{0, 2}, {1, 0}}) {
		t.Fatalf("z = %v", m.Z)
	}
}

func TestPairwiseMatrixIndependentDomains(t *testing.T) {
	data := []Record{
		{"source_lp": float64(5), "dest_lp": float64(10)},
		{"source_lp": float64(5), "dest_lp": float64(2)},
	}

	m := PairwiseMatrix(data, "source_lp", "dest_lp")

	if !reflect.DeepEqual(m.Y, []string{"5"}) {
		t.Fatalf("sources = %v", m.Y)
	}
	// Destination values sort numerically, not lexically.
	if !reflect.DeepEqual(m.X, []string{"2", "10"}) {
		t.Fatalf("dests = %v", m.X)
	}
	if !reflect.DeepEqual(m.Z, [][]int{{1, 1}}) {
		t.Fatalf("z = %v", m.Z)
	}
}

func TestPairwiseMatrixSkipsIncompleteRecords(t *testing.T) {
	data := []Record{
		{"source_lp": float64(1)},
		{"dest_lp": float64(2)},
		{"source_lp": float64(1), "dest_lp": float64(2)},
	}

	m := PairwiseMatrix(data, "source_lp", "dest_lp")
	if !reflect.DeepEqual(m.Z, [][]int{{1}}) {
		t.Fatalf("z = %v", m.Z)
	}
}

func TestAxisOptionsExclusionAndOrder(t *testing.T) {
	columns := []string{"id", "time", "a", "b"}
	exclude := map[string]bool{"id": true, "time": true}

	opts := AxisOptions(columns, exclude)

	want := []AxisOption{
		{Key: "a", Label: "a", Enabled: true},
		{Key: "b", Label: "b", Enabled: true},
	}
	if !reflect.DeepEqual(opts, want) {
		t.Fatalf("options = %+v", opts)
	}
}

func TestAxisOptionsLabelsAndEmptyNames(t *testing.T) {
	opts := AxisOptions([]string{"network_sends", "", "gvt_time"}, nil)

	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if opts[0].Label != "network sends" || opts[1].Label != "gvt time" {
		t.Fatalf("labels = %q, %q", opts[0].Label, opts[1].Label)
	}
}

func TestDimensionsRowAlignment(t *testing.T) {
	data := []Record{
		{"PE_ID": float64(0), "efficiency": float64(0.9)},
		{"PE_ID": float64(1)},
		{"PE_ID": float64(2), "efficiency": float64(0.7)},
	}
	dims := []AxisOption{{Key: "efficiency", Label: "efficiency", Enabled: true}}

	dset := Dimensions(data, dims, "PE_ID")

	if len(dset.Color) != len(data) {
		t.Fatalf("color length %d, want %d", len(dset.Color), len(data))
	}
	values := dset.Dims[0].Values
	if len(values) != len(data) {
		t.Fatalf("dimension length %d, want %d", len(values), len(data))
	}
	if !math.IsNaN(values[1]) {
		t.Fatalf("missing field should be NaN, got %v", values[1])
	}
	if values[0] != 0.9 || values[2] != 0.7 {
		t.Fatalf("rows misaligned: %v", values)
	}
}

func TestTransformsIdempotent(t *testing.T) {
	data := []Record{
		{"id": float64(1), "x": float64(0), "y": float64(5)},
		{"id": float64(2), "x": float64(1), "y": float64(3)},
	}
	dims := []AxisOption{{Key: "x", Label: "x", Enabled: true}}

	if !reflect.DeepEqual(GroupSeries(data, "id", "x", "y"), GroupSeries(data, "id", "x", "y")) {
		t.Fatalf("GroupSeries is not idempotent")
	}
	if !reflect.DeepEqual(PairwiseMatrix(data, "id", "y"), PairwiseMatrix(data, "id", "y")) {
		t.Fatalf("PairwiseMatrix is not idempotent")
	}
	if !reflect.DeepEqual(Dimensions(data, dims, "id"), Dimensions(data, dims, "id")) {
		t.Fatalf("Dimensions is not idempotent")
	}

	// Inputs must not be mutated.
	if len(data) != 2 || len(data[0]) != 3 {
		t.Fatalf("input mutated: %+v", data)
	}
}

func TestTransformsEmptyInput(t *testing.T) {
	series := GroupSeries(nil, "id", "x", "y")
	if series == nil || len(series) != 0 {
		t.Fatalf("GroupSeries(nil) = %v", series)
	}

	m := PairwiseMatrix(nil, "source_lp", "dest_lp")
	if len(m.Z) != 0 || len(m.X) != 0 || len(m.Y) != 0 {
		t.Fatalf("PairwiseMatrix(nil) = %+v", m)
	}

	opts := AxisOptions(nil, nil)
	if opts == nil || len(opts) != 0 {
		t.Fatalf("AxisOptions(nil) = %v", opts)
	}

	dset := Dimensions(nil, []AxisOption{{Key: "a", Label: "a"}}, "id")
	if len(dset.Color) != 0 || len(dset.Dims) != 1 || len(dset.Dims[0].Values) != 0 {
		t.Fatalf("Dimensions(nil) = %+v", dset)
	}
}
