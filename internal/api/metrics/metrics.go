// Package metrics defines the custom Prometheus metrics of the dashboard
// service. Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// LoginsTotal counts login attempts.
// Labels:
//   - result: "success", "invalid_credentials", or "error"
//   - role: the role logged into, empty unless result is "success"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result and role.",
	},
	[]string{"result", "role"},
)

// LogoutsTotal counts explicit logouts.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of explicit logouts.",
	},
)

// SessionReadsTotal counts session loads performed for incoming requests.
// Label:
//   - result: "identity" (a session was found) or "anonymous"
var SessionReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_reads_total",
		Help:      "Total number of session reads, by whether an identity was found.",
	},
	[]string{"result"},
)

// GateDecisionsTotal counts role gate outcomes.
// Labels:
//   - state: pending, unauthenticated, forbidden, authorized
//   - policy: redirect or notice
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of role gate decisions, by state and policy.",
	},
	[]string{"state", "policy"},
)
