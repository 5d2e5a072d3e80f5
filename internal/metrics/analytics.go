package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyticsReportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analytics",
		Name:      "reports_total",
		Help:      "Count of transaction reports computed.",
	}, []string{"status"})
	analyticsReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analytics",
		Name:      "report_duration_seconds",
		Help:      "Duration of computing one transaction report.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"status"})
	analyticsChangeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analytics",
		Name:      "change_outputs_total",
		Help:      "Count of change heuristic outcomes.",
	}, []string{"outcome"})
	analyticsResolutionFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "analytics",
		Name:      "resolution_failures_total",
		Help:      "Count of inputs whose spent output could not be resolved.",
	})
)

// Analytics tracks transaction analytics computations.
type Analytics struct{}

func NewAnalytics() *Analytics {
	return &Analytics{}
}

// ObserveReport records the outcome and duration of one report.
func (Analytics) ObserveReport(err error, started time.Time) {
	analyticsReportsTotal.WithLabelValues(status(err)).Inc()
	analyticsReportDuration.WithLabelValues(status(err)).Observe(time.Since(started).Seconds())
}

// ObserveChange records whether the change heuristic picked an output.
func (Analytics) ObserveChange(detected bool) {
	outcome := "undetermined"
	if detected {
		outcome = "detected"
	}
	analyticsChangeTotal.WithLabelValues(outcome).Inc()
}

func (Analytics) ObserveResolutionFailure() {
	analyticsResolutionFailuresTotal.Inc()
}
