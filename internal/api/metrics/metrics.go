// Package metrics defines and registers all custom Prometheus metrics for the
// TaskHive platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhive"

// ── Signup metrics ────────────────────────────────────────────────────────────

// SignupsTotal counts committed signups.
// Labels:
//   - role: requested role (CLIENT, DEVELOPER, ADMIN)
//   - outcome: "approved" (token issued) or "pending" (awaiting admin)
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of committed signups, by role and outcome.",
	},
	[]string{"role", "outcome"},
)

// InviteVerificationsTotal counts invite-code verification calls.
// Label:
//   - result: "valid" or "invalid"
var InviteVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invite_verifications_total",
		Help:      "Total number of invite code verification checks, by result.",
	},
	[]string{"result"},
)

// ── Approval metrics ──────────────────────────────────────────────────────────

// ApprovalActionsTotal counts admin decisions on pending accounts.
// Label:
//   - action: "approve" or "reject"
var ApprovalActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_actions_total",
		Help:      "Total number of admin approval decisions, by action.",
	},
	[]string{"action"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts notifications delivered successfully.
// Label:
//   - kind: notification template (e.g. "account_approved")
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notification emails delivered.",
	},
	[]string{"kind"},
)

// NotificationErrorsTotal counts notifications that failed delivery.
// Label:
//   - kind: notification template
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of notification emails that failed to send.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
