package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SessionsTotal counts discovery sessions created, labeled by which
	// filters were active at fetch time.
	SessionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vuzz",
			Name:      "discovery_sessions_total",
			Help:      "Discovery sessions created",
		},
		[]string{"location_filter", "tag_filter"},
	)

	// DecisionsTotal counts recorded swipe decisions by kind.
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vuzz",
			Name:      "discovery_decisions_total",
			Help:      "Swipe decisions recorded",
		},
		[]string{"decision"},
	)

	// DecisionWriteFailures counts decision persistence failures. The
	// cursor has already advanced when these occur; the counter makes
	// the resulting history desync observable.
	DecisionWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vuzz",
			Name:      "discovery_decision_write_failures_total",
			Help:      "Decision writes that failed after the cursor advanced",
		},
	)

	// FetchFailures counts candidate fetches degraded to an empty session.
	FetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vuzz",
			Name:      "discovery_fetch_failures_total",
			Help:      "Candidate fetches that failed and returned an empty session",
		},
	)
)

// RegisterDiscoveryMetrics registers the discovery collectors. Called
// explicitly from main (no init()).
func RegisterDiscoveryMetrics() {
	prometheus.MustRegister(SessionsTotal)
	prometheus.MustRegister(DecisionsTotal)
	prometheus.MustRegister(DecisionWriteFailures)
	prometheus.MustRegister(FetchFailures)
}
