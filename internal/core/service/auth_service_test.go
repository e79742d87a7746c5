package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.IsApproved != nil {
		approved := *u.IsApproved
		clone.IsApproved = &approved
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.seq++
	copy.ID = "user_" + strconv.Itoa(r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListPending(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*domain.User
	for _, u := range r.users {
		if u.PendingApproval() {
			pending = append(pending, cloneUser(u))
		}
	}
	return pending, nil
}

func (r *stubUserRepo) SetApproved(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.IsApproved != nil {
		return domain.ErrAlreadyDecided
	}
	approved := true
	u.IsApproved = &approved
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type stubInviteRepo struct {
	mu      sync.Mutex
	seq     int
	invites map[string]*domain.InviteCode // keyed by code
}

func newStubInviteRepo() *stubInviteRepo {
	return &stubInviteRepo{invites: make(map[string]*domain.InviteCode)}
}

func cloneInvite(ic *domain.InviteCode) *domain.InviteCode {
	if ic == nil {
		return nil
	}
	clone := *ic
	return &clone
}

func (r *stubInviteRepo) Create(_ context.Context, invite *domain.InviteCode) (*domain.InviteCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := cloneInvite(invite)
	r.seq++
	copy.ID = "invite_" + strconv.Itoa(r.seq)
	r.invites[copy.Code] = cloneInvite(copy)
	return cloneInvite(copy), nil
}

func (r *stubInviteRepo) FindByCode(_ context.Context, code string) (*domain.InviteCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ic, ok := r.invites[code]; ok {
		return cloneInvite(ic), nil
	}
	return nil, domain.ErrInviteNotFound
}

func (r *stubInviteRepo) Consume(_ context.Context, code, role, usedBy string) (*domain.InviteCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ic, ok := r.invites[code]
	if !ok || ic.Used || ic.Role != role || ic.ExpiredAt(time.Now().UTC()) {
		return nil, domain.ErrInvalidInviteCode
	}
	now := time.Now().UTC()
	ic.Used = true
	ic.UsedBy = usedBy
	ic.UsedAt = &now
	return cloneInvite(ic), nil
}

func (r *stubInviteRepo) List(_ context.Context) ([]*domain.InviteCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.InviteCode
	for _, ic := range r.invites {
		out = append(out, cloneInvite(ic))
	}
	return out, nil
}

func (r *stubInviteRepo) UpdateExpiry(_ context.Context, id string, expiresAt *time.Time) (*domain.InviteCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ic := range r.invites {
		if ic.ID == id {
			if ic.Used {
				return nil, domain.ErrInviteCodeUsed
			}
			ic.ExpiresAt = expiresAt
			return cloneInvite(ic), nil
		}
	}
	return nil, domain.ErrInviteNotFound
}

func (r *stubInviteRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, ic := range r.invites {
		if ic.ID == id {
			if ic.Used {
				return domain.ErrInviteCodeUsed
			}
			delete(r.invites, code)
			return nil
		}
	}
	return domain.ErrInviteNotFound
}

type stubResetStore struct {
	mu     sync.Mutex
	seq    int
	tokens map[string]string // token -> userID
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{tokens: make(map[string]string)}
}

func (s *stubResetStore) Issue(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	token := fmt.Sprintf("reset_%d", s.seq)
	s.tokens[token] = userID
	return token, nil
}

func (s *stubResetStore) Redeem(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", domain.ErrResetTokenInvalid
	}
	delete(s.tokens, token)
	return userID, nil
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (n *stubNotifier) Notify(notification ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

func (n *stubNotifier) sentKinds() []ports.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]ports.NotificationKind, len(n.sent))
	for i, notif := range n.sent {
		kinds[i] = notif.Kind
	}
	return kinds
}

func newAuthService(users *stubUserRepo, invites *stubInviteRepo, resets *stubResetStore, notifier *stubNotifier) *AuthService {
	return NewAuthService(users, invites, resets, notifier, "secret", time.Hour, zerolog.Nop())
}

func clientSignup(email string) ports.SignupInput {
	return ports.SignupInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       email,
		Phone:       "555-0100",
		Password:    "Abcdefg1",
		Role:        domain.RoleClient,
		CompanyName: "Analytical Engines",
		Industry:    "computing",
	}
}

func developerSignup(email, code string) ports.SignupInput {
	return ports.SignupInput{
		FirstName:      "Grace",
		LastName:       "Hopper",
		Email:          email,
		Phone:          "555-0101",
		Password:       "Abcdefg1",
		Role:           domain.RoleDeveloper,
		InviteCode:     code,
		Skills:         []string{"go"},
		Experience:     "senior",
		GithubUsername: "ghopper",
	}
}

func TestAuthService_Signup_ClientAutoApproved(t *testing.T) {
	users := newStubUserRepo()
	notifier := &stubNotifier{}
	svc := newAuthService(users, newStubInviteRepo(), newStubResetStore(), notifier)

	result, err := svc.Signup(context.Background(), clientSignup("ada@example.com"))
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token for auto-approved client signup")
	}
	if result.PendingApproval {
		t.Fatalf("client signup must not be pending")
	}
	if !result.User.Approved() {
		t.Fatalf("client must be approved at creation")
	}
	if result.User.PasswordHash == "Abcdefg1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("Abcdefg1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleClient {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}

	if len(notifier.sentKinds()) != 0 {
		t.Fatalf("client signup must not queue a pending notification")
	}
}

func TestAuthService_Signup_DeveloperPending(t *testing.T) {
	users := newStubUserRepo()
	invites := newStubInviteRepo()
	notifier := &stubNotifier{}
	svc := newAuthService(users, invites, newStubResetStore(), notifier)

	_, _ = invites.Create(context.Background(), &domain.InviteCode{Code: "HV-00000001", Role: domain.RoleDeveloper})

	result, err := svc.Signup(context.Background(), developerSignup("grace@example.com", "hv-00000001"))
	if err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if result.Token != "" {
		t.Fatalf("pending signup must not get a token")
	}
	if !result.PendingApproval {
		t.Fatalf("developer signup must be pending")
	}
	if result.User.IsApproved != nil {
		t.Fatalf("pending user must have unset approval, got %v", *result.User.IsApproved)
	}

	invite, err := invites.FindByCode(context.Background(), "HV-00000001")
	if err != nil {
		t.Fatalf("invite lookup failed: %v", err)
	}
	if !invite.Used || invite.UsedBy != "grace@example.com" {
		t.Fatalf("invite must be consumed by the signup: %+v", invite)
	}

	kinds := notifier.sentKinds()
	if len(kinds) != 1 || kinds[0] != ports.NotifySignupReceived {
		t.Fatalf("expected signup_received notification, got %v", kinds)
	}
}

func TestAuthService_Signup_InviteConsumedOnce(t *testing.T) {
	users := newStubUserRepo()
	invites := newStubInviteRepo()
	svc := newAuthService(users, invites, newStubResetStore(), &stubNotifier{})

	_, _ = invites.Create(context.Background(), &domain.InviteCode{Code: "HV-00000002", Role: domain.RoleDeveloper})

	if _, err := svc.Signup(context.Background(), developerSignup("first@example.com", "HV-00000002")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), developerSignup("second@example.com", "HV-00000002")); !errors.Is(err, domain.ErrInvalidInviteCode) {
		t.Fatalf("expected ErrInvalidInviteCode for consumed code, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateEmailKeepsInvite(t *testing.T) {
	users := newStubUserRepo()
	invites := newStubInviteRepo()
	svc := newAuthService(users, invites, newStubResetStore(), &stubNotifier{})

	if _, err := svc.Signup(context.Background(), clientSignup("taken@example.com")); err != nil {
		t.Fatalf("client signup failed: %v", err)
	}

	_, _ = invites.Create(context.Background(), &domain.InviteCode{Code: "HV-00000003", Role: domain.RoleDeveloper})

	if _, err := svc.Signup(context.Background(), developerSignup("taken@example.com", "HV-00000003")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// The duplicate must be detected before consumption, leaving the
	// single-use code intact for its real owner.
	invite, err := invites.FindByCode(context.Background(), "HV-00000003")
	if err != nil {
		t.Fatalf("invite lookup failed: %v", err)
	}
	if invite.Used {
		t.Fatalf("failed signup must not burn the invite code")
	}
}

func TestAuthService_Signup_WeakPassword(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubInviteRepo(), newStubResetStore(), &stubNotifier{})

	for _, password := range []string{"abcd1234", "Abcdefgh", "Ab1"} {
		input := clientSignup("weak@example.com")
		input.Password = password
		if _, err := svc.Signup(context.Background(), input); !errors.Is(err, domain.ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", password, err)
		}
	}
}

func TestAuthService_Signup_MissingInvite(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubInviteRepo(), newStubResetStore(), &stubNotifier{})

	input := developerSignup("dev@example.com", "")
	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, domain.ErrInvalidSignup) {
		t.Fatalf("expected ErrInvalidSignup for missing invite code, got %v", err)
	}
}

func TestAuthService_Login_PendingRejected(t *testing.T) {
	users := newStubUserRepo()
	invites := newStubInviteRepo()
	svc := newAuthService(users, invites, newStubResetStore(), &stubNotifier{})

	_, _ = invites.Create(context.Background(), &domain.InviteCode{Code: "HV-00000004", Role: domain.RoleDeveloper})
	if _, err := svc.Signup(context.Background(), developerSignup("pending@example.com", "HV-00000004")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "pending@example.com", "Abcdefg1"); !errors.Is(err, domain.ErrAccountNotApproved) {
		t.Fatalf("expected ErrAccountNotApproved, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubInviteRepo(), newStubResetStore(), &stubNotifier{})

	if _, err := svc.Signup(context.Background(), clientSignup("ada@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "ada@example.com", "Wrong1234"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	users := newStubUserRepo()
	resets := newStubResetStore()
	notifier := &stubNotifier{}
	svc := newAuthService(users, newStubInviteRepo(), resets, notifier)

	if _, err := svc.Signup(context.Background(), clientSignup("ada@example.com")); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Unknown emails succeed silently so the endpoint cannot enumerate accounts.
	if err := svc.ForgotPassword(context.Background(), "unknown@example.com"); err != nil {
		t.Fatalf("forgot password for unknown email must not error, got %v", err)
	}

	if err := svc.ForgotPassword(context.Background(), "ada@example.com"); err != nil {
		t.Fatalf("forgot password failed: %v", err)
	}

	var token string
	for _, n := range notifier.sent {
		if n.Kind == ports.NotifyPasswordReset {
			token = n.Token
		}
	}
	if token == "" {
		t.Fatalf("expected a password_reset notification carrying the token")
	}

	if err := svc.ResetPassword(context.Background(), token, "Newpass1"); err != nil {
		t.Fatalf("reset password failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ada@example.com", "Newpass1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}

	// Tokens are single use.
	if err := svc.ResetPassword(context.Background(), token, "Another1"); !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid on reuse, got %v", err)
	}
}
