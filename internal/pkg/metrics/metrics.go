// Package metrics defines and registers all custom Prometheus metrics for the
// movie portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movieportal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - provider: "local" or "google"
//   - result: "success", "rejected", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by provider and result.",
	},
	[]string{"provider", "result"},
)

// TokensRejectedTotal counts session tokens refused by the access guard.
// Label:
//   - reason: "missing", "expired", "signature", "malformed", "invalid" or "role"
var TokensRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_rejected_total",
		Help:      "Total number of rejected session tokens, by reason.",
	},
	[]string{"reason"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsSubmittedTotal counts review submissions.
// Label:
//   - result: "created", "duplicate" or "out_of_range"
var ReviewsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_submitted_total",
		Help:      "Total number of review submissions, by result.",
	},
	[]string{"result"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests sent to the catalog provider.
// Labels:
//   - resource: "film" or "actor"
//   - operation: "popular", "details" or "search"
//   - result: "ok", "not_found" or "error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of catalog provider requests.",
	},
	[]string{"resource", "operation", "result"},
)

// UpstreamRequestDuration measures catalog provider round trips.
// Label:
//   - operation: "popular", "details" or "search"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of catalog provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// CircuitBreakerState reports the breaker state: 0 closed, 1 half-open, 2 open.
// Label:
//   - name: breaker name
var CircuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "Current circuit breaker state (0 closed, 1 half-open, 2 open).",
	},
	[]string{"name"},
)

// ── Submission metrics ────────────────────────────────────────────────────────

// SubmissionsTotal counts accepted feedback and suggestions.
// Label:
//   - kind: "feedback" or "suggestion"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of accepted submissions, by kind.",
	},
	[]string{"kind"},
)

// SubmissionsDroppedTotal counts submissions discarded because their worker
// channel was full.
// Label:
//   - kind: "feedback" or "suggestion"
var SubmissionsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_dropped_total",
		Help:      "Total number of submissions dropped on a full dispatcher queue, by kind.",
	},
	[]string{"kind"},
)

// DispatcherQueueDepth tracks submissions waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DispatcherQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dispatcher_queue_depth",
		Help:      "Current number of submissions pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
