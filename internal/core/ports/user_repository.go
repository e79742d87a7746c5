package ports

import (
	"context"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListPending returns users whose approval state is still undecided
	// (is_approved unset), oldest first.
	ListPending(ctx context.Context) ([]*domain.User, error)
	// SetApproved marks an undecided user as approved. It returns
	// domain.ErrAlreadyDecided when the user's approval state was already
	// set, and domain.ErrUserNotFound when no such user exists.
	SetApproved(ctx context.Context, id string) error
	// Delete removes the user record entirely. Rejection is destructive.
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
