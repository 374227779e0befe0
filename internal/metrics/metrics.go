// Package metrics collects Prometheus metrics for the auth flows.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OpRegister = "register"
	OpLogin    = "login"
	OpLogout   = "logout"

	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Recorder is what the service layer reports to.
type Recorder interface {
	RecordAuth(operation, result string)
	RecordSessionCacheFailure(operation string)
	RecordSessionCacheSkipped(operation string)
	RecordHashDuration(d time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	authTotal          *prometheus.CounterVec
	cacheFailuresTotal *prometheus.CounterVec
	cacheSkippedTotal  *prometheus.CounterVec
	hashDuration       prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studypath_auth_requests_total",
			Help: "Auth operations by outcome.",
		}, []string{"operation", "result"}),
		cacheFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studypath_session_cache_failures_total",
			Help: "Session cache calls that returned an error and were ignored.",
		}, []string{"operation"}),
		cacheSkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studypath_session_cache_skipped_total",
			Help: "Session cache calls skipped because the cache was unavailable.",
		}, []string{"operation"}),
		hashDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "studypath_password_hash_seconds",
			Help:    "Time spent hashing passwords.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1},
		}),
	}

	reg.MustRegister(c.authTotal, c.cacheFailuresTotal, c.cacheSkippedTotal, c.hashDuration)

	return c
}

func (c *Collector) RecordAuth(operation, result string) {
	c.authTotal.WithLabelValues(operation, result).Inc()
}

func (c *Collector) RecordSessionCacheFailure(operation string) {
	c.cacheFailuresTotal.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordSessionCacheSkipped(operation string) {
	c.cacheSkippedTotal.WithLabelValues(operation).Inc()
}

func (c *Collector) RecordHashDuration(d time.Duration) {
	c.hashDuration.Observe(d.Seconds())
}

// Noop discards everything.
type Noop struct{}

func (Noop) RecordAuth(string, string) {
}

func (Noop) RecordSessionCacheFailure(string) {
}

func (Noop) RecordSessionCacheSkipped(string) {
}

func (Noop) RecordHashDuration(time.Duration) {
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
