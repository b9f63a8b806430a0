// Package metrics exposes Prometheus instruments for summary runs.
package metrics

import (
	"net/http"

	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "signstats"

// Outcome labels for SummariesTotal.
const (
	OutcomeOK             = "ok"
	OutcomeMissingColumns = "missing_columns"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeError          = "error"
)

var (
	SummariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_total",
		Help:      "Summary runs by outcome.",
	}, []string{"outcome"})

	RowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_total",
		Help:      "Input rows seen per pipeline stage.",
	}, []string{"stage"})

	SummaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_duration_seconds",
		Help:      "Time spent parsing and summarizing one file.",
		Buckets:   prometheus.DefBuckets,
	})
)

// ObserveRun records the row counters of a finished run.
func ObserveRun(st models.RunStats) {
	RowsTotal.WithLabelValues("read").Add(float64(st.RowsRead))
	RowsTotal.WithLabelValues("buy").Add(float64(st.BuyRows))
	RowsTotal.WithLabelValues("no_date").Add(float64(st.RowsNoDate))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
