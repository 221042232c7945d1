package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/refresher"
)

var RefreshTotal *prometheus.CounterVec = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "codespaces_dashboard_refresh_total",
	Help: "Number of dashboard refresh operations by operation and outcome",
}, []string{"operation", "outcome"})

var RefreshDuration *prometheus.HistogramVec = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "codespaces_dashboard_refresh_duration_seconds",
	Help:    "Time spent fetching and rendering a dashboard refresh operation",
	Buckets: prometheus.DefBuckets,
}, []string{"operation"})

var LastSuccess *prometheus.GaugeVec = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "codespaces_dashboard_last_success_timestamp_seconds",
	Help: "Unix time of the last refresh that updated the view, by operation",
}, []string{"operation"})

// ObserveResult records one refresh result. Dropped calls (skipped by the
// overlap policy) are counted but not timed.
func ObserveResult(r refresher.Result) {
	op := string(r.Operation)
	RefreshTotal.WithLabelValues(op, string(r.Outcome)).Inc()
	if r.Outcome == refresher.OutcomeSkipped {
		return
	}
	RefreshDuration.WithLabelValues(op).Observe(r.Duration.Seconds())
	if r.Outcome == refresher.OutcomeOK {
		LastSuccess.WithLabelValues(op).SetToCurrentTime()
	}
}
