package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/api/metrics"
	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// ApprovalService implements the admin queue of accounts awaiting a decision.
type ApprovalService struct {
	users    ports.UserRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewApprovalService(users ports.UserRepository, notifier ports.Notifier, log zerolog.Logger) *ApprovalService {
	return &ApprovalService{users: users, notifier: notifier, log: log}
}

func (s *ApprovalService) ListPending(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListPending(ctx)
}

// Approve grants login capability to a pending account. Approving an account
// whose state is already decided is an error, not a no-op.
func (s *ApprovalService) Approve(ctx context.Context, userID string) error {
	if err := s.users.SetApproved(ctx, userID); err != nil {
		return err
	}

	metrics.ApprovalActionsTotal.WithLabelValues("approve").Inc()
	s.log.Info().Str("user_id", userID).Msg("account approved")

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("approved user not readable for notification")
		return nil
	}
	s.notifier.Notify(ports.Notification{
		Kind:      ports.NotifyAccountApproved,
		Recipient: user.Email,
		Name:      user.FullName(),
	})
	return nil
}

// Reject is destructive: it deletes the user record entirely. A rejected id
// never reappears in ListPending.
func (s *ApprovalService) Reject(ctx context.Context, userID, reason string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	metrics.ApprovalActionsTotal.WithLabelValues("reject").Inc()
	s.log.Info().Str("user_id", userID).Str("reason", reason).Msg("account rejected and deleted")

	s.notifier.Notify(ports.Notification{
		Kind:      ports.NotifyAccountRejected,
		Recipient: user.Email,
		Name:      user.FullName(),
		Reason:    reason,
	})
	return nil
}
