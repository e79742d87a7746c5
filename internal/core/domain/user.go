package domain

import (
	"errors"
	"time"
)

const (
	RoleClient     = "CLIENT"
	RoleDeveloper  = "DEVELOPER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

var ErrInvalidSignup = errors.New("invalid signup payload")
var ErrWeakPassword = errors.New("password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountNotApproved = errors.New("account pending approval")
var ErrAccountDisabled = errors.New("account disabled")
var ErrAlreadyDecided = errors.New("approval already decided")
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")
var ErrForbidden = errors.New("access forbidden")

// ValidSignupRole reports whether role is one a signup may request.
// SUPER_ADMIN accounts are provisioned out of band, never via signup.
func ValidSignupRole(role string) bool {
	switch role {
	case RoleClient, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

// RequiresInvite reports whether signing up with role requires an invite code.
func RequiresInvite(role string) bool {
	return role == RoleDeveloper || role == RoleAdmin
}

// RequiresApproval reports whether an account with role starts life pending
// an admin decision. CLIENT accounts are auto-approved.
func RequiresApproval(role string) bool {
	return RequiresInvite(role)
}

// IsAdminRole reports whether role grants access to the admin surface.
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// ValidPassword enforces the password policy: minimum 8 characters with at
// least one lowercase letter, one uppercase letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// ClientProfile carries the fields collected only for CLIENT accounts.
type ClientProfile struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Position    string `json:"position,omitempty"`
}

// DeveloperProfile carries the fields collected only for DEVELOPER accounts.
type DeveloperProfile struct {
	Skills         []string `json:"skills"`
	Experience     string   `json:"experience"`
	GithubUsername string   `json:"github_username"`
	Portfolio      string   `json:"portfolio,omitempty"`
}

// AdminProfile carries the fields collected only for ADMIN accounts.
type AdminProfile struct {
	Position string `json:"position"`
}

// User models an account on the platform. IsApproved is tri-state: nil means
// the account is awaiting an admin decision, which only arises for roles that
// require approval. Rejection deletes the record outright, so a stored false
// is never produced by this codebase.
type User struct {
	ID           string            `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	Phone        string            `json:"phone"`
	PasswordHash string            `json:"-"`
	Role         string            `json:"role"`
	IsApproved   *bool             `json:"is_approved"`
	IsActive     bool              `json:"is_active"`
	Client       *ClientProfile    `json:"client_profile,omitempty"`
	Developer    *DeveloperProfile `json:"developer_profile,omitempty"`
	Admin        *AdminProfile     `json:"admin_profile,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Approved reports whether the account has been explicitly approved.
func (u *User) Approved() bool {
	return u.IsApproved != nil && *u.IsApproved
}

// PendingApproval reports whether the account is still awaiting a decision.
func (u *User) PendingApproval() bool {
	return RequiresApproval(u.Role) && u.IsApproved == nil
}

// FullName joins first and last name for display and notifications.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
