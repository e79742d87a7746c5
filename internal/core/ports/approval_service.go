package ports

import (
	"context"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// ApprovalService handles the admin queue of accounts awaiting a decision.
// Approve and Reject are deliberately not idempotent: deciding an account
// twice is an error, and rejection deletes the record for good.
type ApprovalService interface {
	ListPending(ctx context.Context) ([]*domain.User, error)
	Approve(ctx context.Context, userID string) error
	Reject(ctx context.Context, userID, reason string) error
}
