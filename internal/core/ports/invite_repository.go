package ports

import (
	"context"
	"time"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// InviteRepository defines persistence operations for invite codes.
type InviteRepository interface {
	Create(ctx context.Context, invite *domain.InviteCode) (*domain.InviteCode, error)
	FindByCode(ctx context.Context, code string) (*domain.InviteCode, error)
	// UpdateExpiry rewrites the expiry of an unused code. A nil expiresAt
	// makes the code never expire. Used codes yield domain.ErrInviteCodeUsed.
	UpdateExpiry(ctx context.Context, id string, expiresAt *time.Time) (*domain.InviteCode, error)
	// Consume atomically marks the code used by usedBy, but only when it is
	// currently unused, unexpired and targets role. Any other state yields
	// domain.ErrInvalidInviteCode, so of two racing signups exactly one wins.
	Consume(ctx context.Context, code, role, usedBy string) (*domain.InviteCode, error)
	List(ctx context.Context) ([]*domain.InviteCode, error)
	// Delete removes an invite by id. Used codes are kept for audit and
	// yield domain.ErrInviteCodeUsed.
	Delete(ctx context.Context, id string) error
}
