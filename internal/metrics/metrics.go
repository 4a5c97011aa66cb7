package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CompilesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aria_compiles_total",
		Help: "Total rule document compilations, labelled by outcome.",
	}, []string{"status"})

	CompileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aria_compile_duration_ms",
		Help:    "Rule document compilation latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	SelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aria_selections_total",
		Help: "Total rule selections, labelled by decision reason.",
	}, []string{"reason"})

	RuleMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aria_rule_matches_total",
		Help: "Total winning matches, labelled by rule name.",
	}, []string{"rule"})
)
