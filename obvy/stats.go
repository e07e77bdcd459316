package obvy

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsInternal holds the process's prometheus collectors on a private registry.
// A nil *StatsInternal records nothing.
type StatsInternal struct {
	Registry   *prometheus.Registry
	Classified *prometheus.CounterVec
	Runs       *prometheus.CounterVec
	BatchTimer prometheus.Histogram
	WWW        *prometheus.CounterVec
}

func NewStatsInternal() *StatsInternal {
	reg := prometheus.NewRegistry()

	s := &StatsInternal{
		Registry: reg,
		Classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_sequences_classified_total",
			Help: "Sequences classified, by loop type. Unclassified sequences count as none.",
		}, []string{"loop_type"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_batch_runs_total",
			Help: "Batch runs by mode and outcome.",
		}, []string{"mode", "outcome"}),
		BatchTimer: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scribe_batch_duration_seconds",
			Help:    "Wall time of a batch run.",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		WWW: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scribe_http_requests_total",
			Help: "HTTP API requests by status code and method.",
		}, []string{"code", "method"}),
	}

	reg.MustRegister(
		s.Classified,
		s.Runs,
		s.BatchTimer,
		s.WWW,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// RecClassified counts one classification
func (s *StatsInternal) RecClassified(loopType string) {
	if s == nil {
		return
	}
	if loopType == "" {
		loopType = "none"
	}
	s.Classified.WithLabelValues(loopType).Inc()
}

func (s *StatsInternal) RecRun(mode, outcome string) {
	if s == nil {
		return
	}
	s.Runs.WithLabelValues(mode, outcome).Inc()
}

func (s *StatsInternal) RecBatchTimer(d time.Duration) {
	if s == nil {
		return
	}
	s.BatchTimer.Observe(d.Seconds())
}

func (s *StatsInternal) RecWWW(code, method string) {
	if s == nil {
		return
	}
	s.WWW.WithLabelValues(code, method).Inc()
}

// Handler serves the registry for /metrics, a nil *StatsInternal serves 404
func (s *StatsInternal) Handler() http.Handler {
	if s == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry})
}
