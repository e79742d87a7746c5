package client

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Wizard steps, in order. Transitions are forward-only via Next (gated by
// step-local validation) or backward via Back.
type SignupStep int

const (
	StepRoleSelection SignupStep = iota + 1
	StepProfileDetails
	StepSecureAccount
	StepSubmitted
)

// Roles a signup may request.
const (
	RoleClient     = "CLIENT"
	RoleDeveloper  = "DEVELOPER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// MsgVerifyInvite is the exact message shown when an invite code was typed
// but never confirmed against the server.
const MsgVerifyInvite = "Please verify your invite code"

// ValidationError blocks a step transition. Field names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SignupForm accumulates input across the three wizard steps.
type SignupForm struct {
	// Step 1: role selection and contact info.
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Role       string
	InviteCode string

	// Step 2: role-specific profile.
	CompanyName    string // CLIENT
	Industry       string // CLIENT
	Position       string // CLIENT (optional), ADMIN (required)
	Skills         []string
	Experience     string
	GithubUsername string
	Portfolio      string

	// Step 3: credentials.
	Password        string
	ConfirmPassword string
	AgreeToTerms    bool
}

// SignupOutcome is the result of a committed submission. Token is empty for
// roles that await approval; NextPath is where the caller should navigate.
type SignupOutcome struct {
	User            *User
	Token           string
	PendingApproval bool
	NextPath        string
}

// SignupWizard drives the three-step signup flow. Restricted roles must call
// VerifyInvite before Step 1 will advance; editing the code via SetInviteCode
// drops the verified flag, forcing a fresh verification.
type SignupWizard struct {
	Form SignupForm

	client         *Client
	step           SignupStep
	inviteVerified bool
}

func NewSignupWizard(c *Client) *SignupWizard {
	return &SignupWizard{client: c, step: StepRoleSelection}
}

// Step returns the wizard's current step.
func (w *SignupWizard) Step() SignupStep {
	return w.step
}

// InviteVerified reports whether the entered code passed verification.
func (w *SignupWizard) InviteVerified() bool {
	return w.inviteVerified
}

// SetInviteCode records a code and invalidates any earlier verification.
func (w *SignupWizard) SetInviteCode(code string) {
	w.Form.InviteCode = strings.ToUpper(strings.TrimSpace(code))
	w.inviteVerified = false
}

type verifyInviteResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// VerifyInvite checks the entered code against the server for the selected
// role. Verification never reserves the code: consumption happens only at
// submission, and a concurrent signup may still win the code in between.
func (w *SignupWizard) VerifyInvite(ctx context.Context) error {
	if w.Form.InviteCode == "" {
		return &ValidationError{Field: "invite_code", Message: "invite code is required"}
	}

	var resp verifyInviteResponse
	err := w.client.post(ctx, "/auth/verify-invite", map[string]string{
		"code": w.Form.InviteCode,
		"role": w.Form.Role,
	}, &resp, false)
	if err != nil {
		return err
	}
	if !resp.Success {
		w.inviteVerified = false
		msg := resp.Error
		if msg == "" {
			msg = "invalid invite code"
		}
		return &ValidationError{Field: "invite_code", Message: msg}
	}

	w.inviteVerified = true
	return nil
}

// Next advances to the following step if the current one validates.
func (w *SignupWizard) Next() error {
	switch w.step {
	case StepRoleSelection:
		if err := w.validateStep1(); err != nil {
			return err
		}
	case StepProfileDetails:
		if err := w.validateStep2(); err != nil {
			return err
		}
	case StepSecureAccount:
		return fmt.Errorf("final step: call Submit")
	default:
		return fmt.Errorf("wizard already submitted")
	}
	w.step++
	return nil
}

// Back returns to the previous step. Entered data is kept.
func (w *SignupWizard) Back() {
	if w.step > StepRoleSelection && w.step < StepSubmitted {
		w.step--
	}
}

func (w *SignupWizard) validateStep1() error {
	if strings.TrimSpace(w.Form.FirstName) == "" || strings.TrimSpace(w.Form.LastName) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if !emailShape.MatchString(w.Form.Email) {
		return &ValidationError{Field: "email", Message: "a valid email is required"}
	}
	if strings.TrimSpace(w.Form.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "phone is required"}
	}

	switch w.Form.Role {
	case RoleClient:
		// No invite code needed.
	case RoleDeveloper, RoleAdmin:
		if w.Form.InviteCode == "" {
			return &ValidationError{Field: "invite_code", Message: "invite code is required"}
		}
		if !w.inviteVerified {
			return &ValidationError{Field: "invite_code", Message: MsgVerifyInvite}
		}
	default:
		return &ValidationError{Field: "role", Message: "select a role"}
	}
	return nil
}

func (w *SignupWizard) validateStep2() error {
	switch w.Form.Role {
	case RoleClient:
		if strings.TrimSpace(w.Form.CompanyName) == "" {
			return &ValidationError{Field: "company_name", Message: "company name is required"}
		}
		if strings.TrimSpace(w.Form.Industry) == "" {
			return &ValidationError{Field: "industry", Message: "industry is required"}
		}
	case RoleDeveloper:
		if len(w.Form.Skills) == 0 {
			return &ValidationError{Field: "skills", Message: "select at least one skill"}
		}
		if w.Form.Experience == "" {
			return &ValidationError{Field: "experience", Message: "experience level is required"}
		}
		if strings.TrimSpace(w.Form.GithubUsername) == "" {
			return &ValidationError{Field: "github_username", Message: "github username is required"}
		}
	case RoleAdmin:
		if strings.TrimSpace(w.Form.Position) == "" {
			return &ValidationError{Field: "position", Message: "position is required"}
		}
	}
	return nil
}

func (w *SignupWizard) validateStep3() error {
	if !passwordValid(w.Form.Password) {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit"}
	}
	if w.Form.ConfirmPassword != w.Form.Password {
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	if !w.Form.AgreeToTerms {
		return &ValidationError{Field: "agree_to_terms", Message: "you must accept the terms"}
	}
	return nil
}

// passwordValid requires length >= 8 plus one lowercase letter, one uppercase
// letter and one digit.
func passwordValid(p string) bool {
	if len(p) < 8 {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
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

type signupRequest struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	Password       string   `json:"password"`
	Role           string   `json:"role"`
	InviteCode     string   `json:"invite_code,omitempty"`
	CompanyName    string   `json:"company_name,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Position       string   `json:"position,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	GithubUsername string   `json:"github_username,omitempty"`
	Portfolio      string   `json:"portfolio,omitempty"`
}

type signupResponse struct {
	Success         bool   `json:"success"`
	Token           string `json:"token,omitempty"`
	User            *User  `json:"user"`
	PendingApproval bool   `json:"pending_approval,omitempty"`
}

// Submit validates the final step and commits the signup. On success the
// wizard enters StepSubmitted. Auto-approved roles get a token and a live
// session; restricted roles get a cached pending record and no token.
// Nothing is persisted client-side before the server responds, so a failed
// submission leaves the wizard re-enterable with no rollback.
func (w *SignupWizard) Submit(ctx context.Context) (*SignupOutcome, error) {
	if w.step != StepSecureAccount {
		return nil, fmt.Errorf("submit called on step %d", w.step)
	}
	if err := w.validateStep3(); err != nil {
		return nil, err
	}

	req := signupRequest{
		FirstName:      w.Form.FirstName,
		LastName:       w.Form.LastName,
		Email:          w.Form.Email,
		Phone:          w.Form.Phone,
		Password:       w.Form.Password,
		Role:           w.Form.Role,
		CompanyName:    w.Form.CompanyName,
		Industry:       w.Form.Industry,
		Position:       w.Form.Position,
		Skills:         w.Form.Skills,
		Experience:     w.Form.Experience,
		GithubUsername: w.Form.GithubUsername,
		Portfolio:      w.Form.Portfolio,
	}
	if w.Form.Role == RoleDeveloper || w.Form.Role == RoleAdmin {
		req.InviteCode = w.Form.InviteCode
	}

	var resp signupResponse
	if err := w.client.post(ctx, "/auth/signup", req, &resp, false); err != nil {
		return nil, err
	}

	outcome := &SignupOutcome{
		User:            resp.User,
		Token:           resp.Token,
		PendingApproval: resp.PendingApproval,
	}

	if resp.Token != "" {
		if err := w.client.store.Save(Session{Token: resp.Token, User: resp.User}); err != nil {
			return nil, fmt.Errorf("persist session: %w", err)
		}
		role := ""
		if resp.User != nil {
			role = resp.User.Role
		}
		outcome.NextPath = DashboardPath(role)
	} else {
		if err := w.client.store.Save(Session{PendingUser: resp.User}); err != nil {
			return nil, fmt.Errorf("persist pending user: %w", err)
		}
		outcome.NextPath = "/pending-approval"
	}

	w.step = StepSubmitted
	return outcome, nil
}
