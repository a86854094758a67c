// Package metrics defines the Prometheus collectors recorded by an analysis
// run and exports them in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for one run. Each run owns its own
// registry so repeated runs in one process never collide.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsTotal  *prometheus.CounterVec
	NGramsTotal   *prometheus.CounterVec
	FilteredTotal *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	GraphNodes    *prometheus.GaugeVec
	GraphEdges    *prometheus.GaugeVec
}

// New creates and registers all Prometheus metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profiles_records_total",
				Help: "Input records by outcome (loaded, kept, dropped_incomplete).",
			},
			[]string{"outcome"},
		),
		NGramsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profiles_ngrams_total",
				Help: "N-grams produced or surviving per pipeline stage.",
			},
			[]string{"stage"},
		),
		FilteredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "profiles_filtered_total",
				Help: "Rows removed by silent filters, by reason.",
			},
			[]string{"reason"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "profiles_stage_duration_seconds",
				Help:    "Wall time spent in each pipeline stage.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"stage"},
		),
		GraphNodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "profiles_graph_nodes",
				Help: "Number of nodes in the word graph per group.",
			},
			[]string{"group"},
		),
		GraphEdges: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "profiles_graph_edges",
				Help: "Number of edges in the word graph per group.",
			},
			[]string{"group"},
		),
	}

	m.Registry.MustRegister(
		m.RecordsTotal,
		m.NGramsTotal,
		m.FilteredTotal,
		m.StageDuration,
		m.GraphNodes,
		m.GraphEdges,
	)

	return m
}

// WriteTextfile writes the current values of every collector to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
