// Package metrics defines and registers all custom Prometheus metrics for the
// Pathagar bookshop API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pathagar"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthDenialsTotal counts requests rejected by an authorization guard.
// Label:
//   - reason: "missing_credentials", "invalid_credentials", "not_owner",
//     "not_admin", or "unknown_principal"
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests rejected by an authorization guard.",
	},
	[]string{"reason"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCapturedTotal counts orders whose payment capture completed, meaning
// the payment record was inserted and the paid flag flipped.
var OrdersCapturedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_captured_total",
		Help:      "Total number of orders captured (payment insert plus paid flag).",
	},
)

// PaymentIntentsTotal counts payment-intent requests against the provider.
// Label:
//   - outcome: "ok" or "error"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment-intent creations, by outcome.",
	},
	[]string{"outcome"},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityErrorsTotal counts audit entries that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity audit entries that failed to persist.",
	},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatMessagesTotal counts messages fanned out to chat rooms.
var ChatMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages broadcast to rooms.",
	},
)

// ChatConnectionsActive tracks currently connected chat clients.
var ChatConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "chat_connections_active",
		Help:      "Number of websocket chat connections currently open.",
	},
)
