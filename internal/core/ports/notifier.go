package ports

import "context"

// NotificationKind selects the email template for a notification.
type NotificationKind string

const (
	NotifySignupReceived  NotificationKind = "signup_received"
	NotifyAccountApproved NotificationKind = "account_approved"
	NotifyAccountRejected NotificationKind = "account_rejected"
	NotifyPasswordReset   NotificationKind = "password_reset"
	NotifyContactReceived NotificationKind = "contact_received"
)

// Notification is a single outbound email, queued for async delivery.
type Notification struct {
	Kind      NotificationKind
	Recipient string
	Name      string
	// Token carries the reset token for password_reset notifications.
	Token string
	// Reason carries the optional admin note for account_rejected.
	Reason string
	// Subject and Body carry the original message for contact_received.
	Subject string
	Body    string
}

// Notifier enqueues a notification for delivery. Enqueueing never blocks the
// calling request beyond channel buffering; delivery failures are logged,
// not surfaced.
type Notifier interface {
	Notify(n Notification)
}

// Mailer performs the actual delivery of a single notification.
type Mailer interface {
	Send(ctx context.Context, n Notification) error
}
