package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// AuthHandler handles signup, login, invite verification and password recovery.
type AuthHandler struct {
	auth    ports.AuthService
	invites ports.InviteService
}

func NewAuthHandler(auth ports.AuthService, invites ports.InviteService) *AuthHandler {
	return &AuthHandler{auth: auth, invites: invites}
}

// VerifyInvite checks an invite code without consuming it.
//
// @Summary      Verify an invite code for a restricted role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyInviteRequest  true  "Code and target role"
// @Success      200   {object}  verifyInviteResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/verify-invite [post]
func (h *AuthHandler) VerifyInvite(c echo.Context) error {
	var req verifyInviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.invites.Verify(c.Request().Context(), req.Code, req.Role); err != nil {
		if errors.Is(err, domain.ErrInvalidInviteCode) {
			// Reported in-band: the client shows this inline on the code
			// field, not as a request failure.
			return c.JSON(http.StatusOK, verifyInviteResponse{Success: false, Error: "invalid invite code"})
		}
		return err
	}

	return c.JSON(http.StatusOK, verifyInviteResponse{Success: true})
}

// Signup commits a signup submission.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup payload"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		Role:           req.Role,
		InviteCode:     req.InviteCode,
		CompanyName:    req.CompanyName,
		Industry:       req.Industry,
		Position:       req.Position,
		Skills:         req.Skills,
		Experience:     req.Experience,
		GithubUsername: req.GithubUsername,
		Portfolio:      req.Portfolio,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Success:         true,
		Token:           result.Token,
		User:            result.User,
		PendingApproval: result.PendingApproval,
	})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Me returns a fresh snapshot of the authenticated user. The pending-approval
// page calls this to re-check approval state.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{User: user})
}

// ForgotPassword requests a password reset email.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	// Always the same answer, known or unknown email.
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "if the account exists, a reset email was sent"})
}

// ResetPassword consumes a reset token and sets a new password.
//
// @Summary      Reset password with a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Token and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "password updated"})
}
