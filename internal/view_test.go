package maestrotop

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type fakeSink struct {
	inits   int
	renders int
	last    Figure
}

func (s *fakeSink) Init()             { s.inits++ }
func (s *fakeSink) Render(fig Figure) { s.renders++; s.last = fig }

func TestViewRefreshInitializesSinkOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDataset(w, "ross.bin")
	}))
	defer srv.Close()

	sink := &fakeSink{}
	view := NewScatterView(NewCache(testClient(t, srv), nil), sink)

	for i := 0; i < 3; i++ {
		if err := view.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
	}

	if sink.inits != 1 {
		t.Fatalf("sink initialized %d times, want 1", sink.inits)
	}
	if sink.renders != 3 {
		t.Fatalf("sink rendered %d times, want 3 (full re-render per refresh)", sink.renders)
	}
}

func TestViewRefreshEmptyDatasetRendersEmptyFigure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"file":"empty.bin","columns":["PE_ID","efficiency"],"data":[]}`)
	}))
	defer srv.Close()

	sink := &fakeSink{}
	view := NewScatterView(NewCache(testClient(t, srv), nil), sink)

	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	series, ok := sink.last.Data.([]Series)
	if !ok {
		t.Fatalf("figure data = %T", sink.last.Data)
	}
	if len(series) != 0 {
		t.Fatalf("expected empty series, got %v", series)
	}
}

func TestViewNilSinkIsSafe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDataset(w, "ross.bin")
	}))
	defer srv.Close()

	view := NewScatterView(NewCache(testClient(t, srv), nil), nil)
	if err := view.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh with nil sink: %v", err)
	}
}

func TestViewAttachRefreshesOnReload(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeDataset(w, "ross.bin")
	}))
	defer srv.Close()

	sink := &fakeSink{}
	view := NewScatterView(NewCache(testClient(t, srv), nil), sink)
	reload := NewReloader()
	view.Attach(reload)

	reload.Bump()
	reload.Bump()

	if sink.renders != 2 {
		t.Fatalf("rendered %d times, want 2", sink.renders)
	}
	// Second reload without invalidation is served from cache.
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("backend calls = %d, want 1", n)
	}
}

func TestViewFetchFailureDoesNotStopSiblings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == kindPaths[KindEvent] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeDataset(w, "ok.bin")
	}))
	defer srv.Close()

	cache := NewCache(testClient(t, srv), nil)
	brokenSink := &fakeSink{}
	healthySink := &fakeSink{}
	broken := NewHeatmapView(cache, brokenSink)
	healthy := NewScatterView(cache, healthySink)

	reload := NewReloader()
	broken.Attach(reload)
	healthy.Attach(reload)
	reload.Bump()

	if brokenSink.renders != 0 {
		t.Fatalf("failed view should not render, got %d", brokenSink.renders)
	}
	if healthySink.renders != 1 {
		t.Fatalf("sibling view should still render, got %d", healthySink.renders)
	}
}

func TestHeatmapViewFigure(t *testing.T) {
	ds := &Dataset{Data: []Record{
		{"source_lp": float64(1), "dest_lp": float64(2)},
		{"source_lp": float64(1), "dest_lp": float64(2)},
		{"source_lp": float64(2), "dest_lp": float64(1)},
	}}

	view := NewHeatmapView(nil, nil)
	fig := view.Figure(ds)

	m, ok := fig.Data.(Matrix)
	if !ok {
		t.Fatalf("figure data = %T", fig.Data)
	}
	if m.Z[0][1] != 2 || m.Z[1][0] != 1 {
		t.Fatalf("z = %v", m.Z)
	}
	if fig.XLabel != "dest_lp" || fig.YLabel != "source_lp" {
		t.Fatalf("labels = %q, %q", fig.XLabel, fig.YLabel)
	}
}

func TestViewOptionsFallBackToEventColumns(t *testing.T) {
	view := NewHeatmapView(nil, nil)
	opts := view.Options(&Dataset{})

	if len(opts) == 0 {
		t.Fatalf("expected event column options")
	}
	for _, o := range opts {
		if o.Key == "" {
			t.Fatalf("empty option key in %v", opts)
		}
	}
}

func TestViewCycleAxes(t *testing.T) {
	ds := &Dataset{Columns: []string{"PE_ID", "virtual_time", "efficiency", "network_sends"}}
	view := NewScatterView(nil, nil)

	view.YAxis = "efficiency"
	view.CycleYAxis(ds)
	if view.YAxis != "network_sends" {
		t.Fatalf("YAxis = %q, want network_sends", view.YAxis)
	}
	view.CycleYAxis(ds)
	if view.YAxis != "efficiency" {
		t.Fatalf("YAxis should wrap to efficiency, got %q", view.YAxis)
	}
}
