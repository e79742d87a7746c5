package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/platform-api/internal/api/metrics"
	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// AuthService implements signup, login and password recovery.
type AuthService struct {
	users     ports.UserRepository
	invites   ports.InviteRepository
	resets    ports.ResetTokenStore
	notifier  ports.Notifier
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	invites ports.InviteRepository,
	resets ports.ResetTokenStore,
	notifier ports.Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		invites:   invites,
		resets:    resets,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Signup commits a signup submission. DEVELOPER and ADMIN submissions consume
// their invite code atomically: of two racing signups holding the same
// verified code, exactly one reaches this point successfully. CLIENT accounts
// are auto-approved and receive a token; the rest are created pending with no
// token and cannot log in until an admin approves them.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SignupResult, error) {
	if err := validateSignup(input); err != nil {
		return nil, err
	}

	// Duplicate check before invite consumption, so a taken email does not
	// burn a single-use code.
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	var consumedCode string
	if domain.RequiresInvite(input.Role) {
		code := domain.NormalizeInviteCode(input.InviteCode)
		invite, err := s.invites.Consume(ctx, code, input.Role, input.Email)
		if err != nil {
			return nil, err
		}
		consumedCode = invite.Code
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch input.Role {
	case domain.RoleClient:
		approved := true
		user.IsApproved = &approved
		user.Client = &domain.ClientProfile{
			CompanyName: input.CompanyName,
			Industry:    input.Industry,
			Position:    input.Position,
		}
	case domain.RoleDeveloper:
		user.Developer = &domain.DeveloperProfile{
			Skills:         input.Skills,
			Experience:     input.Experience,
			GithubUsername: input.GithubUsername,
			Portfolio:      input.Portfolio,
		}
	case domain.RoleAdmin:
		user.Admin = &domain.AdminProfile{Position: input.Position}
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if created.PendingApproval() {
		metrics.SignupsTotal.WithLabelValues(created.Role, "pending").Inc()
		s.log.Info().
			Str("user_id", created.ID).
			Str("role", created.Role).
			Str("invite_code", consumedCode).
			Msg("signup pending approval")
		s.notifier.Notify(ports.Notification{
			Kind:      ports.NotifySignupReceived,
			Recipient: created.Email,
			Name:      created.FullName(),
		})
		return &ports.SignupResult{User: created, PendingApproval: true}, nil
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.WithLabelValues(created.Role, "approved").Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("signup auto-approved")

	return &ports.SignupResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.PendingApproval() {
		return "", nil, domain.ErrAccountNotApproved
	}
	if !user.IsActive {
		return "", nil, domain.ErrAccountDisabled
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// CurrentUser re-reads the account backing a session so the pending-approval
// page gets a fresh approval check rather than the cached snapshot.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ForgotPassword issues a single-use reset token and mails it. Unknown emails
// report success to the caller so the endpoint cannot be used to enumerate
// accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Msg("password reset for unknown email")
			return nil
		}
		return err
	}

	token, err := s.resets.Issue(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	s.notifier.Notify(ports.Notification{
		Kind:      ports.NotifyPasswordReset,
		Recipient: user.Email,
		Name:      user.FullName(),
		Token:     token,
	})
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !domain.ValidPassword(newPassword) {
		return domain.ErrWeakPassword
	}

	userID, err := s.resets.Redeem(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// validateSignup enforces the role-conditional field requirements the signup
// wizard collects across its steps.
func validateSignup(in ports.SignupInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" {
		return fmt.Errorf("%w: name, email and phone are required", domain.ErrInvalidSignup)
	}
	if !domain.ValidSignupRole(in.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidSignup, in.Role)
	}
	if !domain.ValidPassword(in.Password) {
		return domain.ErrWeakPassword
	}
	if domain.RequiresInvite(in.Role) && in.InviteCode == "" {
		return fmt.Errorf("%w: invite code is required for role %s", domain.ErrInvalidSignup, in.Role)
	}

	switch in.Role {
	case domain.RoleClient:
		if in.CompanyName == "" || in.Industry == "" {
			return fmt.Errorf("%w: company name and industry are required", domain.ErrInvalidSignup)
		}
	case domain.RoleDeveloper:
		if len(in.Skills) == 0 || in.Experience == "" || in.GithubUsername == "" {
			return fmt.Errorf("%w: skills, experience and github username are required", domain.ErrInvalidSignup)
		}
	case domain.RoleAdmin:
		if in.Position == "" {
			return fmt.Errorf("%w: position is required", domain.ErrInvalidSignup)
		}
	}
	return nil
}
