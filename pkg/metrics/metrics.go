package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Remote booking API metrics
	RemoteCalls   *prometheus.CounterVec
	RemoteLatency *prometheus.HistogramVec
	RemoteErrors  *prometheus.CounterVec

	// Wizard metrics
	WizardSubmissions *prometheus.CounterVec
	ActiveDrafts      prometheus.Gauge

	// Session metrics
	SessionOperations *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		RemoteCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "remote_calls_total",
			Help:      "Total number of calls issued to the booking API",
		}, []string{"operation", "status"}),
		RemoteLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "remote_call_duration_seconds",
			Help:      "Duration of booking API calls",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		RemoteErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "remote_call_errors_total",
			Help:      "Total number of failed booking API calls",
		}, []string{"operation"}),

		WizardSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wizard_submissions_total",
			Help:      "Reservation wizard submissions by outcome",
		}, []string{"outcome"}),
		ActiveDrafts: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wizard_active_drafts",
			Help:      "Current number of in-progress reservation drafts",
		}),

		SessionOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "session_operations_total",
			Help:      "Session store operations",
		}, []string{"operation", "status"}),
	}
}
