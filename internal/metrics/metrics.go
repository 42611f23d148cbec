// Package metrics instruments the pipeline with Prometheus collectors
// and serves them over a tiny opt-in HTTP surface, pointed at pipeline
// phases and schedule quality instead of request routes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the registry and collectors this package exposes.
type Collector struct {
	registry       *prometheus.Registry
	handler        http.Handler
	phaseDuration  *prometheus.HistogramVec
	scheduleScore  prometheus.Gauge
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	solverDuration prometheus.Histogram
}

// NewCollector registers the core collectors for one process lifetime.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	phaseDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "phase_duration_seconds",
		Help:    "Duration of each scheduling pipeline phase",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	scheduleScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_score",
		Help: "Total validation score of the most recently validated schedule",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total schedule cache hits",
	})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total schedule cache misses",
	})

	solverDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solver_duration_seconds",
		Help:    "Duration of the student-assignment solver call",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(phaseDuration, scheduleScore, cacheHits, cacheMisses, solverDuration)

	return &Collector{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		phaseDuration:  phaseDuration,
		scheduleScore:  scheduleScore,
		cacheHits:      cacheHits,
		cacheMisses:    cacheMisses,
		solverDuration: solverDuration,
	}
}

// Handler exposes the Prometheus scrape handler.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return c.handler
}

// ObservePhase records how long a named pipeline phase took.
func (c *Collector) ObservePhase(phase string, d time.Duration) {
	if c == nil {
		return
	}
	c.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// ObserveSolve records the duration of one solver invocation.
func (c *Collector) ObserveSolve(d time.Duration) {
	if c == nil {
		return
	}
	c.solverDuration.Observe(d.Seconds())
}

// SetScheduleScore updates the gauge with the latest validation total.
func (c *Collector) SetScheduleScore(score float64) {
	if c == nil {
		return
	}
	c.scheduleScore.Set(score)
}

// RecordCacheLookup records a cache hit or miss.
func (c *Collector) RecordCacheLookup(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.cacheHits.Inc()
		return
	}
	c.cacheMisses.Inc()
}
