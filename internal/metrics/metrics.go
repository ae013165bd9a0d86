// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters at the orchestrator's decision points. These replace the
// original console's ad-hoc debug instrumentation with something scrapeable.
var (
	GateBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campaign_console",
		Subsystem: "send",
		Name:      "gate_blocked_total",
		Help:      "Send triggers rejected by the billing gate.",
	})

	GuardBlocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campaign_console",
		Subsystem: "send",
		Name:      "guard_blocked_total",
		Help:      "Send triggers rejected because an attempt was already in flight.",
	})

	RequestsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campaign_console",
		Subsystem: "send",
		Name:      "requests_issued_total",
		Help:      "Enqueue requests issued to the backend.",
	})

	Results = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campaign_console",
		Subsystem: "send",
		Name:      "results_total",
		Help:      "Enqueue results received, by outcome.",
	}, []string{"outcome"})
)
