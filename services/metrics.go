package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var QuoteOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "api",
		Subsystem: "quotes",
		Name:      "operations_total",
		Help:      "Quote operations by kind and outcome",
	},
	[]string{"operation", "outcome"},
)

func recordQuoteOp(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	QuoteOperations.WithLabelValues(operation, outcome).Inc()
}
