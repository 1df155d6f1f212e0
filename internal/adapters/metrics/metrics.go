// Package metrics records cache activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/lesscache/internal/core/ports"
)

// Namespace prefixes every metric name.
const Namespace = "lesscache"

// Label names.
const (
	LabelReason = "reason"
	LabelResult = "result"
)

// Values of LabelResult.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var _ ports.Metrics = (*Recorder)(nil)

// Recorder implements ports.Metrics on its own Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	hits     prometheus.Counter
	misses   *prometheus.CounterVec
	compiles *prometheus.HistogramVec
	clears   prometheus.Counter
	entries  prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its collectors together with
// the Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Lookups answered from the cache.",
		}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Lookups that required a compilation, by reason.",
		}, []string{LabelReason}),
		compiles: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of compilations, by result.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{LabelResult}),
		clears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "clears_total",
			Help:      "Bulk invalidations of the cache.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Number of cached entries.",
		}),
	}

	// Pre-create the reason series so they are exported at zero.
	for _, reason := range []string{ports.MissAbsent, ports.MissStale, ports.MissCleared} {
		r.misses.WithLabelValues(reason)
	}

	r.registry.MustRegister(
		r.hits,
		r.misses,
		r.compiles,
		r.clears,
		r.entries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// CacheHit records a lookup answered from the store.
func (r *Recorder) CacheHit() {
	r.hits.Inc()
}

// CacheMiss records a lookup that needed a compilation.
func (r *Recorder) CacheMiss(reason string) {
	r.misses.WithLabelValues(reason).Inc()
}

// CompileDuration records how long a compilation took and whether it failed.
func (r *Recorder) CompileDuration(d time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	r.compiles.WithLabelValues(result).Observe(d.Seconds())
}

// Cleared records a bulk invalidation.
func (r *Recorder) Cleared() {
	r.clears.Inc()
}

// EntryCount reports the current number of stored entries.
func (r *Recorder) EntryCount(n int) {
	r.entries.Set(float64(n))
}
