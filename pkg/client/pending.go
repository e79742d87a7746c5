package client

import "context"

// DashboardPath maps a role to its dashboard root. SUPER_ADMIN shares the
// admin surface; unknown roles land on login.
func DashboardPath(role string) string {
	switch role {
	case RoleAdmin, RoleSuperAdmin:
		return "/admin"
	case RoleDeveloper:
		return "/developer"
	case RoleClient:
		return "/client"
	default:
		return "/login"
	}
}

// PendingCheck is the applicant-facing "waiting for approval" screen. The
// re-check is user-triggered, not polled.
type PendingCheck struct {
	client *Client
}

func NewPendingCheck(c *Client) *PendingCheck {
	return &PendingCheck{client: c}
}

// CheckResult tells the caller where to go next. Approved is false and
// NextPath empty while the decision is still outstanding.
type CheckResult struct {
	Approved bool
	NextPath string
}

// Check re-reads approval state. CLIENT sessions redirect immediately since
// that role is auto-approved. For pending roles it asks the server for a
// fresh snapshot; once approved, the live session replaces the cached
// pending record and the caller is routed to the role's dashboard.
func (p *PendingCheck) Check(ctx context.Context) (CheckResult, error) {
	sess, err := p.client.store.Load()
	if err != nil {
		return CheckResult{}, err
	}

	if sess.User != nil && sess.User.Role == RoleClient {
		return CheckResult{Approved: true, NextPath: DashboardPath(RoleClient)}, nil
	}

	// Without a token there is nothing to ask the server; the applicant
	// must log in once approved.
	if sess.Token == "" {
		if sess.PendingUser != nil {
			return CheckResult{}, nil
		}
		return CheckResult{NextPath: "/login"}, nil
	}

	user, err := p.client.Me(ctx)
	if err != nil {
		return CheckResult{}, err
	}

	if user.Approved() {
		sess.User = user
		sess.PendingUser = nil
		if err := p.client.store.Save(sess); err != nil {
			return CheckResult{}, err
		}
		return CheckResult{Approved: true, NextPath: DashboardPath(user.Role)}, nil
	}

	return CheckResult{}, nil
}
