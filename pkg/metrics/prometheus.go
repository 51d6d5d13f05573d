package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchAttempts *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	feedStates    *prometheus.CounterVec
	cycles        *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// New creates a Prometheus recorder registered on reg. A nil reg means the
// default registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Recorder{
		fetchAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "axradar_fetch_attempts_total",
				Help: "Upstream fetch attempts by resource and outcome",
			},
			[]string{"resource", "outcome"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "axradar_fetch_stale_fallbacks_total",
				Help: "Fetches answered from the last good copy after retries were exhausted",
			},
			[]string{"resource"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "axradar_fetch_failures_total",
				Help: "Fetches that exhausted retries with nothing cached",
			},
			[]string{"resource"},
		),
		feedStates: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "axradar_feed_views_total",
				Help: "Published feed views by resulting state",
			},
			[]string{"feed", "state"},
		),
		cycles: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "axradar_refresh_cycles_total",
				Help: "Poll cycles started, by kind",
			},
			[]string{"kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "axradar_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordFetchAttempt(resource, outcome string) {
	r.fetchAttempts.WithLabelValues(family(resource), outcome).Inc()
}

func (r *Recorder) RecordFallback(resource string) {
	r.fallbacks.WithLabelValues(family(resource)).Inc()
}

func (r *Recorder) RecordFailure(resource string) {
	r.failures.WithLabelValues(family(resource)).Inc()
}

func (r *Recorder) RecordFeedState(feed, state string) {
	r.feedStates.WithLabelValues(feed, state).Inc()
}

func (r *Recorder) RecordCycle(kind string) {
	r.cycles.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(family(op)).Observe(seconds)
}

// family drops per-code suffixes ("stock/005930" -> "stock") to bound label cardinality.
func family(key string) string {
	if i := strings.IndexByte(key, '/'); i > 0 {
		return key[:i]
	}
	return key
}
