package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profitdesk_evaluations_total",
		Help: "Profitability evaluations by resulting decision",
	}, []string{"decision"})

	EvaluationErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profitdesk_evaluation_errors_total",
		Help: "Evaluations rejected with invalid input or rate",
	})

	DecisionFlips = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "profitdesk_decision_flips_total",
		Help: "Decision flips observed by the monitor",
	})

	MonitorSweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "profitdesk_monitor_sweep_duration_seconds",
		Help:    "Time to re-evaluate all tracked items",
		Buckets: prometheus.DefBuckets,
	})

	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "profitdesk_notifications_total",
		Help: "Decision change notifications by delivery status",
	}, []string{"status"})
)

func init() { //nolint:gochecknoinits // skip
	prometheus.MustRegister(
		EvaluationsTotal,
		EvaluationErrors,
		DecisionFlips,
		MonitorSweepDuration,
		NotificationsTotal,
	)
}
