package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger call instrumentation, labelled by call kind (submit or evaluate),
// chaincode function and outcome (ok, rejected, unavailable).
var (
	ledgerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "landchain_ledger_calls_total",
		Help: "Ledger submissions and evaluations by function and outcome.",
	}, []string{"call", "function", "outcome"})

	ledgerCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "landchain_ledger_call_duration_seconds",
		Help:    "Wall time of ledger submissions and evaluations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"call", "function"})
)

func ObserveLedgerCall(call, function, outcome string, duration time.Duration) {
	ledgerCalls.WithLabelValues(call, function, outcome).Inc()
	ledgerCallDuration.WithLabelValues(call, function).Observe(duration.Seconds())
}
