// Package metrics exposes analysis service metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder records analysis metrics on its own registry
type Recorder struct {
	registry *prometheus.Registry

	analyses      *prometheus.CounterVec
	failures      *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	eventsDropped prometheus.Counter
	duration      *prometheus.HistogramVec
	latest        *prometheus.GaugeVec
}

// New creates a Recorder with Go runtime and process collectors registered
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenpulse_analyses_total",
				Help: "Total number of completed analyses",
			},
			[]string{"dataset"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenpulse_analysis_failures_total",
				Help: "Total number of failed analyses by error code",
			},
			[]string{"code"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "greenpulse_cache_lookups_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),
		eventsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "greenpulse_events_publish_failures_total",
				Help: "Analysis events that could not be published",
			},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "greenpulse_analysis_duration_seconds",
				Help:    "Duration of analysis operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		latest: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "greenpulse_latest_emissions_mt",
				Help: "Latest observed emissions per dataset in Mt CO2eq",
			},
			[]string{"dataset"},
		),
	}
}

// RecordAnalysis records a completed analysis and its latest observation
func (r *Recorder) RecordAnalysis(dataset string, latestMt float64) {
	r.analyses.WithLabelValues(dataset).Inc()
	r.latest.WithLabelValues(dataset).Set(latestMt)
}

// RecordFailure records a failed analysis by service error code
func (r *Recorder) RecordFailure(code string) {
	r.failures.WithLabelValues(code).Inc()
}

// RecordCacheHit records a report cache hit
func (r *Recorder) RecordCacheHit() {
	r.cacheLookups.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a report cache miss
func (r *Recorder) RecordCacheMiss() {
	r.cacheLookups.WithLabelValues("miss").Inc()
}

// RecordPublishFailure records an event that could not be published
func (r *Recorder) RecordPublishFailure() {
	r.eventsDropped.Inc()
}

// ObserveDuration records how long op took since start
func (r *Recorder) ObserveDuration(op string, start time.Time) {
	r.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
