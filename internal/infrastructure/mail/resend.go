package mail

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/core/ports"
)

// ResendMailer delivers notification emails through the Resend API.
type ResendMailer struct {
	client  *resend.Client
	from    string
	baseURL string
	log     zerolog.Logger
}

// NewResendMailer creates a mailer sending from the given address. baseURL is
// the public web origin used to build links in email bodies.
func NewResendMailer(apiKey, from, baseURL string, log zerolog.Logger) *ResendMailer {
	return &ResendMailer{
		client:  resend.NewClient(apiKey),
		from:    from,
		baseURL: baseURL,
		log:     log,
	}
}

func (m *ResendMailer) Send(ctx context.Context, n ports.Notification) error {
	subject, body := m.render(n)
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{n.Recipient},
		Subject: subject,
		Html:    body,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}

	m.log.Debug().Str("kind", string(n.Kind)).Str("recipient", n.Recipient).Msg("email sent")
	return nil
}

func (m *ResendMailer) render(n ports.Notification) (subject, body string) {
	name := html.EscapeString(n.Name)
	switch n.Kind {
	case ports.NotifySignupReceived:
		return "Your TaskHive application was received",
			fmt.Sprintf(`<h1>Hi %s,</h1><p>Thanks for applying. Your account is awaiting review; we will email you once an administrator has made a decision.</p>`, name)
	case ports.NotifyAccountApproved:
		return "Your TaskHive account was approved",
			fmt.Sprintf(`<h1>Hi %s,</h1><p>Your account has been approved. You can now <a href="%s/login">log in</a>.</p>`, name, m.baseURL)
	case ports.NotifyAccountRejected:
		reason := html.EscapeString(n.Reason)
		if reason == "" {
			reason = "no reason was provided"
		}
		return "Your TaskHive application was declined",
			fmt.Sprintf(`<h1>Hi %s,</h1><p>Your application was declined: %s.</p>`, name, reason)
	case ports.NotifyPasswordReset:
		return "Reset your TaskHive password",
			fmt.Sprintf(`<h1>Hi %s,</h1><p><a href="%s/reset-password?token=%s">Reset your password</a>. The link expires in 30 minutes.</p>`, name, m.baseURL, html.EscapeString(n.Token))
	case ports.NotifyContactReceived:
		return "New contact message: " + html.EscapeString(n.Subject),
			fmt.Sprintf(`<p>From: %s</p><p>%s</p>`, name, html.EscapeString(n.Body))
	}
	return "TaskHive notification", fmt.Sprintf(`<p>Hi %s,</p>`, name)
}

// LogMailer is a development stand-in that logs instead of sending.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, n ports.Notification) error {
	m.log.Info().
		Str("kind", string(n.Kind)).
		Str("recipient", n.Recipient).
		Str("name", n.Name).
		Msg("mail (log only)")
	return nil
}
