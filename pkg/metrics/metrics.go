package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Global collectors, registered on the default registry by promauto.

var (
	// EvaluationsTotal counts leave-one-out runs by metric, k and outcome.
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorknn_evaluations_total",
			Help: "Total number of leave-one-out evaluations",
		},
		[]string{"metric", "k", "status"},
	)

	// EvaluationDuration measures how long one leave-one-out pass takes.
	EvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorknn_evaluation_duration_seconds",
			Help:    "Duration of leave-one-out evaluations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"metric"},
	)

	// Accuracy holds the latest accuracy percentage per metric and k.
	Accuracy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kektorknn_accuracy_percent",
			Help: "Accuracy of the latest leave-one-out evaluation",
		},
		[]string{"metric", "k"},
	)

	// HTTPRequestsTotal counts requests to the metrics endpoint by path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorknn_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"path", "status"},
	)

	// LoadedSamples tracks the size of the dataset currently being evaluated.
	LoadedSamples = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kektorknn_loaded_samples",
			Help: "Number of samples in the loaded dataset",
		},
	)
)

// ObserveEvaluation records one evaluation. err is the error returned by the
// evaluation, if any; on failure only the counter moves.
func ObserveEvaluation(metric string, k int, elapsed time.Duration, report types.Report, err error) {
	kLabel := strconv.Itoa(k)
	if err != nil {
		EvaluationsTotal.WithLabelValues(metric, kLabel, "error").Inc()
		return
	}
	EvaluationsTotal.WithLabelValues(metric, kLabel, "ok").Inc()
	EvaluationDuration.WithLabelValues(metric).Observe(elapsed.Seconds())
	Accuracy.WithLabelValues(metric, kLabel).Set(report.Accuracy)
}
