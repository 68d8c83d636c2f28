// metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChecksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "violationwatch",
		Name:      "checks_total",
		Help:      "Completed check cycles",
	})
	NewViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "violationwatch",
		Name:      "new_violations_total",
		Help:      "Novel records detected, by source",
	}, []string{"source"})
	SourceErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "violationwatch",
		Name:      "source_errors_total",
		Help:      "Source fetch failures, by source",
	}, []string{"source"})
	ReportsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "violationwatch",
		Name:      "reports_sent_total",
		Help:      "Reports successfully delivered",
	})
	ReportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "violationwatch",
		Name:      "report_errors_total",
		Help:      "Report delivery failures",
	})
	LastCheckTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "violationwatch",
		Name:      "last_check_timestamp_seconds",
		Help:      "Unix time of the last completed check cycle",
	})
)

// Handler exposes the default registry for the schedule-mode listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
