// Package metrics provides Prometheus metrics for the clover service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsTotal tracks form actions by form type and outcome
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "actions",
			Name:      "total",
			Help:      "Total number of form actions by form type and outcome",
		},
		[]string{"form", "outcome"},
	)

	// StoreFailuresTotal tracks store call failures surfaced to users
	StoreFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "store",
			Name:      "failures_total",
			Help:      "Total number of record store failures by table",
		},
		[]string{"table"},
	)

	// UnitsSoldTotal tracks inventory units sold through the shop flow
	UnitsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "shop",
			Name:      "units_sold_total",
			Help:      "Total number of inventory units sold",
		},
	)

	// AnalyticsDuration tracks analytics snapshot build duration in seconds
	AnalyticsDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clover",
			Subsystem: "analytics",
			Name:      "snapshot_duration_seconds",
			Help:      "Duration of analytics snapshot builds in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

// Outcome labels for ActionsTotal.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)
