package maestrotop

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics instruments the dataset cache. A nil *Metrics is a valid no-op so
// the cache can run without a registry (tests, library use).
type Metrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	fetchErrs *prometheus.CounterVec
	fetchDur  *prometheus.HistogramVec
}

// NewMetrics registers the cache metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maestrotop_cache_hits_total",
			Help: "Dataset requests served from the resolved cache.",
		}, []string{"kind"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maestrotop_cache_misses_total",
			Help: "Dataset requests that joined or started a fetch.",
		}, []string{"kind"}),
		fetchErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maestrotop_fetch_errors_total",
			Help: "Backend fetches that failed.",
		}, []string{"kind"}),
		fetchDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maestrotop_fetch_duration_seconds",
			Help:    "Backend fetch latency per dataset kind.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"kind"}),
	}
	reg.MustRegister(m.hits, m.misses, m.fetchErrs, m.fetchDur)
	return m
}

func (m *Metrics) CacheHit(kind Kind) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(string(kind)).Inc()
}

func (m *Metrics) CacheMiss(kind Kind) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(string(kind)).Inc()
}

// FetchDone records one completed backend fetch.
func (m *Metrics) FetchDone(kind Kind, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetchDur.WithLabelValues(string(kind)).Observe(d.Seconds())
	if err != nil {
		m.fetchErrs.WithLabelValues(string(kind)).Inc()
	}
}

// ServeMetrics exposes the default registry on addr. Meant to run in its
// own goroutine; listen failures are logged, not fatal.
func ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics listener: %v", err)
	}
}
