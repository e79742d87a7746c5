package ports

import (
	"context"
	"time"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// CreateInviteInput carries the admin parameters for minting an invite code.
type CreateInviteInput struct {
	Role string
	// ExpiresInDays of 0 means the code never expires.
	ExpiresInDays int
	CreatedBy     string
}

// InviteView is the admin list item, carrying the derived display status so
// the transport layer never re-implements the used/expired rules.
type InviteView struct {
	ID        string
	Code      string
	Role      string
	Status    domain.InviteStatus
	UsedBy    string
	UsedAt    *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// UpdateInviteInput carries the editable fields of an unused invite code.
type UpdateInviteInput struct {
	// ExpiresInDays of 0 clears the expiry, making the code never expire.
	ExpiresInDays int
}

// InviteService covers invite verification and the admin invite CRUD.
type InviteService interface {
	// Verify reports whether code can authorize a signup for role. It never
	// mutates the code; consumption happens only at signup submission.
	Verify(ctx context.Context, code, role string) error
	Create(ctx context.Context, input CreateInviteInput) (*domain.InviteCode, error)
	List(ctx context.Context) ([]InviteView, error)
	Update(ctx context.Context, id string, input UpdateInviteInput) (*domain.InviteCode, error)
	Delete(ctx context.Context, id string) error
}
