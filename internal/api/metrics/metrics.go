// Package metrics defines all custom Prometheus metrics for the auth
// service. It is the single source of truth for metric names, labels, and
// help strings; metrics register themselves with the default registry on
// import via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok" or the failure kind (e.g. "email_taken", "invalid_role")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// EventsPublishedTotal counts profile-created publish attempts.
// Label:
//   - result: "ok" (inline), "retried" (delivered by a retry worker), or "error"
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of profile created event publish attempts, labelled by result.",
	},
	[]string{"result"},
)

// EventsDroppedTotal counts events that exhausted the retry budget or found
// the retry queue full.
var EventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of profile created events dropped without delivery.",
	},
)

// TokensDeniedTotal counts requests rejected because the token id was on the
// denylist.
var TokensDeniedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_denied_total",
		Help:      "Total number of requests rejected due to a revoked token id.",
	},
)
