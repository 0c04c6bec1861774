package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	nodes     *prometheus.CounterVec
	completed *prometheus.CounterVec
	offered   *prometheus.CounterVec
	accepted  *prometheus.CounterVec
	solved    *prometheus.GaugeVec
	duration  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	labels := []string{"catalog", "strategy"}
	return &metrics{
		nodes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fourfours_nodes_explored_total",
			Help: "Search nodes entered",
		}, labels),
		completed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fourfours_derivations_completed_total",
			Help: "Derivations that used all four fours and left one value",
		}, labels),
		offered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fourfours_candidates_offered_total",
			Help: "Candidates offered to the registry",
		}, labels),
		accepted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fourfours_candidates_accepted_total",
			Help: "Candidates that filled or improved a registry slot",
		}, labels),
		solved: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fourfours_targets_solved",
			Help: "Targets with at least one derivation",
		}, labels),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fourfours_run_duration_seconds",
			Help:    "Wall time of a full search run",
			Buckets: []float64{0.01, 0.1, 1, 10, 60, 300, 1800},
		}, labels),
	}
}
