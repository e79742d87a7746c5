package ports

import (
	"context"

	"github.com/taskhive/platform-api/internal/core/domain"
)

// SignupInput carries the merged payload of the signup wizard: universal
// contact fields plus the role-conditional profile block.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      string
	// InviteCode is required for DEVELOPER and ADMIN signups and must still
	// be unconsumed at submission time.
	InviteCode string

	// CLIENT profile
	CompanyName string
	Industry    string
	Position    string

	// DEVELOPER profile
	Skills         []string
	Experience     string
	GithubUsername string
	Portfolio      string
}

// SignupResult is returned after a committed signup. Token is set only for
// auto-approved roles; pending accounts get a user record and nothing else.
type SignupResult struct {
	Token           string
	User            *domain.User
	PendingApproval bool
}

// AuthService implements signup, login and password recovery.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser re-reads the account backing the session, giving the
	// pending-approval page a fresh approval check.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ResetTokenStore issues and redeems single-use password reset tokens.
type ResetTokenStore interface {
	// Issue creates a token bound to userID with a bounded lifetime.
	Issue(ctx context.Context, userID string) (string, error)
	// Redeem consumes the token and returns the bound userID. A token can
	// be redeemed at most once; unknown or expired tokens yield
	// domain.ErrResetTokenInvalid.
	Redeem(ctx context.Context, token string) (string, error)
}
