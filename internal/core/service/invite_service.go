package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/platform-api/internal/api/metrics"
	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// InviteService implements invite verification and the admin invite CRUD.
type InviteService struct {
	repo ports.InviteRepository
	log  zerolog.Logger
}

func NewInviteService(repo ports.InviteRepository, log zerolog.Logger) *InviteService {
	return &InviteService{repo: repo, log: log}
}

// Verify reports whether code can authorize a signup for role. Verification
// is read-only: it does not reserve the code, so a verified code can still be
// consumed by a concurrent signup before this caller submits.
func (s *InviteService) Verify(ctx context.Context, code, role string) error {
	normalized := domain.NormalizeInviteCode(code)
	if normalized == "" || !domain.RequiresInvite(role) {
		metrics.InviteVerificationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidInviteCode
	}

	invite, err := s.repo.FindByCode(ctx, normalized)
	if errors.Is(err, domain.ErrInviteNotFound) {
		metrics.InviteVerificationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidInviteCode
	}
	if err != nil {
		// Infrastructure failure, not a bad code. Let the error handler
		// report a 5xx instead of telling the applicant the code is invalid.
		return err
	}
	if !invite.UsableFor(role, time.Now().UTC()) {
		metrics.InviteVerificationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidInviteCode
	}

	metrics.InviteVerificationsTotal.WithLabelValues("valid").Inc()
	return nil
}

func (s *InviteService) Create(ctx context.Context, input ports.CreateInviteInput) (*domain.InviteCode, error) {
	if !domain.RequiresInvite(input.Role) {
		return nil, fmt.Errorf("%w: role %s does not use invite codes", domain.ErrInvalidInput, input.Role)
	}

	now := time.Now().UTC()
	invite := &domain.InviteCode{
		Code:      generateInviteCode(),
		Role:      input.Role,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
	}
	if input.ExpiresInDays > 0 {
		exp := now.AddDate(0, 0, input.ExpiresInDays)
		invite.ExpiresAt = &exp
	}

	created, err := s.repo.Create(ctx, invite)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("code", created.Code).Str("role", created.Role).Msg("invite code created")
	return created, nil
}

func (s *InviteService) List(ctx context.Context) ([]ports.InviteView, error) {
	invites, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	views := make([]ports.InviteView, len(invites))
	for i, inv := range invites {
		views[i] = ports.InviteView{
			ID:        inv.ID,
			Code:      inv.Code,
			Role:      inv.Role,
			Status:    inv.Status(now),
			UsedBy:    inv.UsedBy,
			UsedAt:    inv.UsedAt,
			ExpiresAt: inv.ExpiresAt,
			CreatedAt: inv.CreatedAt,
		}
	}
	return views, nil
}

// Update rewrites the expiry of an unused code. ExpiresInDays of 0 clears
// the expiry. Used codes are immutable and yield ErrInviteCodeUsed.
func (s *InviteService) Update(ctx context.Context, id string, input ports.UpdateInviteInput) (*domain.InviteCode, error) {
	var expiresAt *time.Time
	if input.ExpiresInDays > 0 {
		exp := time.Now().UTC().AddDate(0, 0, input.ExpiresInDays)
		expiresAt = &exp
	}

	updated, err := s.repo.UpdateExpiry(ctx, id, expiresAt)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("code", updated.Code).Str("invite_id", id).Msg("invite code updated")
	return updated, nil
}

func (s *InviteService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// generateInviteCode returns a short opaque code in the format HV-XXXXXXXX.
func generateInviteCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("HV-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("HV-%08X", binary.BigEndian.Uint32(b))
}
