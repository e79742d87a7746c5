package handler

import "github.com/taskhive/platform-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type verifyInviteRequest struct {
	Code string `json:"code" validate:"required"`
	Role string `json:"role" validate:"required,oneof=DEVELOPER ADMIN"`
}

// verifyInviteResponse mirrors the contract the web client expects: a success
// flag plus an inline error message rather than a bare HTTP status.
type verifyInviteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type signupRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Phone     string `json:"phone"      validate:"required"`
	Password  string `json:"password"   validate:"required,min=8"`
	Role      string `json:"role"       validate:"required,oneof=CLIENT DEVELOPER ADMIN"`

	InviteCode string `json:"invite_code,omitempty"`

	// CLIENT profile
	CompanyName string `json:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Position    string `json:"position,omitempty"`

	// DEVELOPER profile
	Skills         []string `json:"skills,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	GithubUsername string   `json:"github_username,omitempty"`
	Portfolio      string   `json:"portfolio,omitempty" validate:"omitempty,url"`
}

// signupResponse carries a token only for auto-approved roles. Pending
// signups get the user record and pending_approval=true.
type signupResponse struct {
	Success         bool         `json:"success"`
	Token           string       `json:"token,omitempty"`
	User            *domain.User `json:"user"`
	PendingApproval bool         `json:"pending_approval,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
