package ports

import (
	"context"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// SubmitContactInput is the public contact form payload.
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// ContactService handles the public contact form and its admin triage.
type ContactService interface {
	Submit(ctx context.Context, input SubmitContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
