package maestrotop

import (
	"context"
	"log"
)

// ChartType selects which transform a view runs.
type ChartType int

const (
	ChartScatter ChartType = iota
	ChartTimeSeries
	ChartHeatmap
	ChartParallel
)

// Figure is the data/layout description handed to a rendering sink. Data is
// []Series, Matrix, or DimensionSet depending on the chart type; sinks
// treat it as opaque payload plus labels.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Data   any
}

// Sink is a rendering target. Init performs one-time setup and must be safe
// to call more than once; Render replaces the sink's content wholesale (no
// incremental updates).
type Sink interface {
	Init()
	Render(Figure)
}

// View binds one visualization to the dataset cache: it owns the axis
// selection, guards one-time sink setup, and on each refresh pulls its
// dataset, runs its transform, and pushes the result to the sink.
//
// Views are driven from a single goroutine (the UI loop / reload
// subscriber); they are not safe for concurrent use.
type View struct {
	Name  string
	Kind  Kind
	Chart ChartType

	// XAxis/YAxis are the selected field keys. For heatmaps XAxis is the
	// destination field and YAxis the source field, matching the matrix
	// orientation.
	XAxis string
	YAxis string

	// Entity is the grouping/coloring id field.
	Entity string

	exclude map[string]bool
	cache   *Cache
	sink    Sink

	initialized bool
}

// NewScatterView plots PE engine metrics against time.
func NewScatterView(cache *Cache, sink Sink) *View {
	return &View{
		Name:    "PE Engine",
		Kind:    KindRoss,
		Chart:   ChartScatter,
		XAxis:   DefaultTimeKey,
		YAxis:   "efficiency",
		Entity:  "PE_ID",
		exclude: axisExclusions(),
		cache:   cache,
		sink:    sink,
	}
}

// NewTimeSeriesView plots per-component model metrics over virtual time.
func NewTimeSeriesView(cache *Cache, sink Sink) *View {
	return &View{
		Name:    "Model",
		Kind:    KindModel,
		Chart:   ChartTimeSeries,
		XAxis:   DefaultTimeKey,
		YAxis:   "send_count",
		Entity:  "lp_id",
		exclude: axisExclusions(),
		cache:   cache,
		sink:    sink,
	}
}

// NewHeatmapView counts event traffic between source and destination LPs.
func NewHeatmapView(cache *Cache, sink Sink) *View {
	return &View{
		Name:    "Event Traffic",
		Kind:    KindEvent,
		Chart:   ChartHeatmap,
		XAxis:   "dest_lp",
		YAxis:   "source_lp",
		exclude: axisExclusions(),
		cache:   cache,
		sink:    sink,
	}
}

// NewParallelView shows every PE metric as a parallel-coordinates axis.
func NewParallelView(cache *Cache, sink Sink) *View {
	return &View{
		Name:    "PE Parallel",
		Kind:    KindRoss,
		Chart:   ChartParallel,
		Entity:  "PE_ID",
		exclude: axisExclusions(),
		cache:   cache,
		sink:    sink,
	}
}

// Refresh ensures the sink is initialized, pulls the view's dataset, runs
// the transform, and re-renders. A dataset with zero rows renders an empty
// figure; a nil sink makes rendering a no-op, never a crash.
func (v *View) Refresh(ctx context.Context) error {
	v.ensureSink()
	ds, err := v.cache.Get(ctx, v.Kind)
	if err != nil {
		return err
	}
	if v.sink != nil {
		v.sink.Render(v.Figure(ds))
	}
	return nil
}

// Attach subscribes the view to reload signals. A fetch failure is local to
// this view: it is logged and does not stop sibling subscribers.
func (v *View) Attach(r *Reloader) {
	r.Subscribe(func(uint64) {
		if err := v.Refresh(context.Background()); err != nil {
			log.Printf("%s: refresh failed: %v", v.Name, err)
		}
	})
}

func (v *View) ensureSink() {
	if v.initialized || v.sink == nil {
		return
	}
	v.sink.Init()
	v.initialized = true
}

// Figure runs the view's transform over ds and returns the chart-ready
// payload with axis labels.
func (v *View) Figure(ds *Dataset) Figure {
	fig := Figure{Title: v.Name, XLabel: v.XAxis, YLabel: v.YAxis}
	switch v.Chart {
	case ChartScatter, ChartTimeSeries:
		fig.Data = GroupSeries(ds.Data, v.Entity, v.XAxis, v.YAxis)
	case ChartHeatmap:
		fig.Data = PairwiseMatrix(ds.Data, v.YAxis, v.XAxis)
	case ChartParallel:
		fig.Data = Dimensions(ds.Data, v.Options(ds), v.Entity)
		fig.XLabel, fig.YLabel = "", ""
	}
	return fig
}

// Options recomputes the selectable axes for the view's current dataset.
// They are derived fresh on every call, never persisted.
func (v *View) Options(ds *Dataset) []AxisOption {
	columns := ds.Columns
	if len(columns) == 0 && v.Kind == KindEvent {
		columns = eventColumns
	}
	return AxisOptions(columns, v.exclude)
}

// CycleXAxis advances the x-axis selection to the next enabled option.
func (v *View) CycleXAxis(ds *Dataset) {
	v.XAxis = nextOption(v.Options(ds), v.XAxis)
}

// CycleYAxis advances the y-axis selection to the next enabled option.
func (v *View) CycleYAxis(ds *Dataset) {
	v.YAxis = nextOption(v.Options(ds), v.YAxis)
}

func nextOption(opts []AxisOption, current string) string {
	enabled := make([]AxisOption, 0, len(opts))
	for _, o := range opts {
		if o.Enabled {
			enabled = append(enabled, o)
		}
	}
	if len(enabled) == 0 {
		return current
	}
	for i, o := range enabled {
		if o.Key == current {
			return enabled[(i+1)%len(enabled)].Key
		}
	}
	return enabled[0].Key
}
