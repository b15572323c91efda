// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus by:
//
//   - Using client_golang CounterVec and SummaryVec collectors.
//   - Mapping the common loader labels (job, step, status) onto Prometheus
//     labels.
//   - Pushing collected metrics to a Prometheus Pushgateway instance instead
//     of exposing an HTTP scrape endpoint (a batch loader has no long-lived
//     process to scrape).
//
// The package intentionally contains all Prometheus-specific dependencies so
// the rest of the project remains decoupled from Prometheus and can swap to
// alternative backends (e.g. Datadog) without changes to the loader itself.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"salesdw/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	// Stage-level metrics
	stepCounter  *prometheus.CounterVec // "dwload_step_total"
	stepDuration *prometheus.SummaryVec // "dwload_step_duration_seconds"

	// Row-level metrics
	rowCounter   *prometheus.CounterVec // "dwload_rows_total"
	tableCounter *prometheus.CounterVec // "dwload_table_rows_total"
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (often same as the configured job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "dwload"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dwload_step_total",
			Help: "Total number of loader stage executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "dwload_step_duration_seconds",
			Help:       "Duration of loader stages in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	rowCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dwload_rows_total",
			Help: "Row-level counts per kind (read, skipped, facts, dropped_dates, synthesized, inserted).",
		},
		[]string{"kind"},
	)
	tableCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dwload_table_rows_total",
			Help: "Committed row counts per warehouse table.",
		},
		[]string{"table"},
	)

	for _, c := range []prometheus.Collector{stepCounter, stepDuration, rowCounter, tableCounter} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register collector: %w", err)
		}
	}

	return &Backend{
		gatewayURL:   gatewayURL,
		jobName:      jobName,
		reg:          reg,
		stepCounter:  stepCounter,
		stepDuration: stepDuration,
		rowCounter:   rowCounter,
		tableCounter: tableCounter,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "dwload_step_total":
		if b.stepCounter == nil {
			return
		}
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)

	case "dwload_rows_total":
		if b.rowCounter == nil {
			return
		}
		b.rowCounter.WithLabelValues(labels["kind"]).Add(delta)

	case "dwload_table_rows_total":
		if b.tableCounter == nil {
			return
		}
		b.tableCounter.WithLabelValues(labels["table"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "dwload_step_duration_seconds" || b.stepDuration == nil {
		return
	}
	b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
