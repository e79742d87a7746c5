package client

import (
	"context"
	"fmt"
)

// ApprovalQueue is the admin-side view over users awaiting a decision. The
// in-memory list is mutated optimistically only after a server call
// succeeds, so a failed call leaves the list exactly as loaded and no
// rollback is ever needed.
type ApprovalQueue struct {
	client  *Client
	pending []*User
}

func NewApprovalQueue(c *Client) *ApprovalQueue {
	return &ApprovalQueue{client: c}
}

// Guard checks the cached session role before the queue loads anything.
// Non-admin roles get ErrForbidden without a network call, matching the
// view-level redirect in the web app.
func (q *ApprovalQueue) Guard() error {
	sess, err := q.client.store.Load()
	if err != nil {
		return err
	}
	if sess.User == nil {
		return ErrUnauthorized
	}
	if sess.User.Role != RoleAdmin && sess.User.Role != RoleSuperAdmin {
		return ErrForbidden
	}
	return nil
}

type pendingUsersResponse struct {
	Data  []*User `json:"data"`
	Total int     `json:"total"`
}

// Load fetches the pending list from the server, replacing local state.
func (q *ApprovalQueue) Load(ctx context.Context) error {
	var resp pendingUsersResponse
	if err := q.client.get(ctx, "/admin/users/pending", &resp); err != nil {
		return err
	}
	q.pending = resp.Data
	return nil
}

// Pending returns the current in-memory list.
func (q *ApprovalQueue) Pending() []*User {
	return q.pending
}

// Count returns the number of users still awaiting a decision.
func (q *ApprovalQueue) Count() int {
	return len(q.pending)
}

// Approve grants login capability to a pending user, then removes exactly
// that entry from the local list.
func (q *ApprovalQueue) Approve(ctx context.Context, id string) error {
	if err := q.client.patch(ctx, "/admin/users/"+id+"/approve", nil, nil); err != nil {
		return err
	}
	q.remove(id)
	return nil
}

// Reject deletes a pending user permanently. The reason, when given, is
// included in the notification email the applicant receives.
func (q *ApprovalQueue) Reject(ctx context.Context, id, reason string) error {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	if err := q.client.delete(ctx, "/admin/users/"+id, body, nil); err != nil {
		return err
	}
	q.remove(id)
	return nil
}

func (q *ApprovalQueue) remove(id string) {
	for i, u := range q.pending {
		if u.ID == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// String summarizes the queue for logs and prompts.
func (q *ApprovalQueue) String() string {
	return fmt.Sprintf("approval queue: %d pending", len(q.pending))
}
