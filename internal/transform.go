package maestrotop

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// The transform functions turn raw record slices into chart-ready shapes.
// They are pure: inputs are never mutated, and calling one twice on the same
// dataset yields structurally identical output.

// Series is the per-entity output of GroupSeries: parallel x/y value slices
// in encounter order.
type Series struct {
	Entity string
	X      []float64
	Y      []float64
}

// GroupSeries partitions data by entityKey, keeping first-seen group order
// and per-group encounter order, and extracts (x, y) pairs from xKey/yKey.
// Records missing the entity field are skipped. A missing or non-numeric
// x/y value becomes NaN so rows stay aligned within a group.
func GroupSeries(data []Record, entityKey, xKey, yKey string) []Series {
	index := make(map[string]int)
	out := make([]Series, 0)
	for _, rec := range data {
		entity, ok := rec.Text(entityKey)
		if !ok {
			continue
		}
		i, ok := index[entity]
		if !ok {
			i = len(out)
			index[entity] = i
			out = append(out, Series{Entity: entity})
		}
		out[i].X = append(out[i].X, numberOrNaN(rec, xKey))
		out[i].Y = append(out[i].Y, numberOrNaN(rec, yKey))
	}
	return out
}

// Matrix is a pairwise co-occurrence count: Z[i][j] is the number of records
// with source Y[i] and destination X[j]. X and Y are the distinct values
// actually present, sorted ascending (numerically when both sides parse as
// numbers). Sources and destinations are independent domains.
type Matrix struct {
	Z [][]int
	X []string // sorted distinct destination values
	Y []string // sorted distinct source values
}

// PairwiseMatrix counts (source, dest) co-occurrences over data. Records
// missing either field are skipped; absent pairs materialize as zero.
func PairwiseMatrix(data []Record, sourceKey, destKey string) Matrix {
	type pair struct{ src, dst string }
	counts := make(map[pair]int)
	srcSet := make(map[string]bool)
	dstSet := make(map[string]bool)

	for _, rec := range data {
		src, ok := rec.Text(sourceKey)
		if !ok {
			continue
		}
		dst, ok := rec.Text(destKey)
		if !ok {
			continue
		}
		srcSet[src] = true
		dstSet[dst] = true
		counts[pair{src, dst}]++
	}

	sources := sortedValues(srcSet)
	dests := sortedValues(dstSet)

	z := make([][]int, len(sources))
	for i, src := range sources {
		row := make([]int, len(dests))
		for j, dst := range dests {
			row[j] = counts[pair{src, dst}]
		}
		z[i] = row
	}
	return Matrix{Z: z, X: dests, Y: sources}
}

// AxisOptions derives selectable axes from a column list minus an exclusion
// set. Order follows the input columns; empty names are skipped; labels are
// the key with underscores replaced by spaces.
func AxisOptions(columns []string, exclude map[string]bool) []AxisOption {
	opts := make([]AxisOption, 0, len(columns))
	for _, col := range columns {
		if col == "" || exclude[col] {
			continue
		}
		opts = append(opts, AxisOption{
			Key:     col,
			Label:   strings.ReplaceAll(col, "_", " "),
			Enabled: true,
		})
	}
	return opts
}

// Dimension is one parallel-coordinates axis with a value for every record.
type Dimension struct {
	Key    string
	Label  string
	Values []float64
}

// DimensionSet is the parallel-coordinates payload: one aligned value slice
// per dimension plus a coloring slice from the designated id field. Every
// slice has exactly len(data) entries; missing fields become NaN rather
// than dropping the row, so rows line up across dimensions.
type DimensionSet struct {
	Dims  []Dimension
	Color []float64
}

// Dimensions extracts one value array per descriptor plus the color array.
func Dimensions(data []Record, dims []AxisOption, colorKey string) DimensionSet {
	out := DimensionSet{
		Dims:  make([]Dimension, 0, len(dims)),
		Color: make([]float64, len(data)),
	}
	for _, d := range dims {
		values := make([]float64, len(data))
		for i, rec := range data {
			values[i] = numberOrNaN(rec, d.Key)
		}
		out.Dims = append(out.Dims, Dimension{Key: d.Key, Label: d.Label, Values: values})
	}
	for i, rec := range data {
		out.Color[i] = numberOrNaN(rec, colorKey)
	}
	return out
}

func numberOrNaN(rec Record, key string) float64 {
	if v, ok := rec.Number(key); ok {
		return v
	}
	return math.NaN()
}

// sortedValues orders a value set ascending, numerically when every
// comparison has two parseable numbers, lexically otherwise.
func sortedValues(set map[string]bool) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		ni, errI := strconv.ParseFloat(values[i], 64)
		nj, errJ := strconv.ParseFloat(values[j], 64)
		if errI == nil && errJ == nil {
			return ni < nj
		}
		return values[i] < values[j]
	})
	return values
}
