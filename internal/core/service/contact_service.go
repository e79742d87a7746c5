package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// ContactService handles the public contact form and its admin triage.
type ContactService struct {
	repo     ports.ContactRepository
	notifier ports.Notifier
	// inbox is the internal address that receives a copy of each submission.
	inbox string
	log   zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, notifier ports.Notifier, inbox string, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, notifier: notifier, inbox: inbox, log: log}
}

func (s *ContactService) Submit(ctx context.Context, input ports.SubmitContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Body:      input.Body,
		Status:    domain.ContactNew,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	if s.inbox != "" {
		s.notifier.Notify(ports.Notification{
			Kind:      ports.NotifyContactReceived,
			Recipient: s.inbox,
			Name:      created.Name,
			Subject:   created.Subject,
			Body:      created.Body,
		})
	}

	s.log.Info().Str("message_id", created.ID).Msg("contact message received")
	return created, nil
}

func (s *ContactService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, domain.ContactRead)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
