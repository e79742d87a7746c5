package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// InviteHandler handles the admin invite-code CRUD. Mounted behind
// Auth + RBAC(ADMIN).
type InviteHandler struct {
	invites ports.InviteService
}

func NewInviteHandler(invites ports.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type createInviteRequest struct {
	Role string `json:"role" validate:"required,oneof=DEVELOPER ADMIN"`
	// ExpiresInDays of 0 means the code never expires.
	ExpiresInDays int `json:"expires_in_days" validate:"omitempty,gt=0"`
}

type inviteResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	UsedBy    string     `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type listInvitesResponse struct {
	Data []inviteResponse `json:"data"`
}

// List returns all invite codes with their derived status labels.
//
// @Summary      List invite codes
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listInvitesResponse
// @Router       /admin/invite-codes [get]
func (h *InviteHandler) List(c echo.Context) error {
	views, err := h.invites.List(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]inviteResponse, len(views))
	for i, v := range views {
		items[i] = inviteResponse{
			ID:        v.ID,
			Code:      v.Code,
			Role:      v.Role,
			Status:    string(v.Status),
			UsedBy:    v.UsedBy,
			UsedAt:    v.UsedAt,
			ExpiresAt: v.ExpiresAt,
			CreatedAt: v.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, listInvitesResponse{Data: items})
}

// Create mints a new invite code for a restricted role.
//
// @Summary      Create an invite code
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInviteRequest  true  "Target role and optional expiry"
// @Success      201   {object}  inviteResponse
// @Failure      400   {object}  errorResponse
// @Router       /admin/invite-codes [post]
func (h *InviteHandler) Create(c echo.Context) error {
	var req createInviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	invite, err := h.invites.Create(c.Request().Context(), ports.CreateInviteInput{
		Role:          req.Role,
		ExpiresInDays: req.ExpiresInDays,
		CreatedBy:     actor.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, inviteResponse{
		ID:        invite.ID,
		Code:      invite.Code,
		Role:      invite.Role,
		Status:    string(domain.InviteActive),
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	})
}

type updateInviteRequest struct {
	// ExpiresInDays of 0 clears the expiry, making the code never expire.
	ExpiresInDays int `json:"expires_in_days" validate:"gte=0"`
}

// Update rewrites the expiry of an unused invite code.
//
// @Summary      Update an unused invite code's expiry
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Invite id"
// @Param        body  body      updateInviteRequest  true  "New expiry in days, 0 for never"
// @Success      200   {object}  inviteResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/invite-codes/{id} [patch]
func (h *InviteHandler) Update(c echo.Context) error {
	var req updateInviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invite, err := h.invites.Update(c.Request().Context(), c.Param("id"), ports.UpdateInviteInput{
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, inviteResponse{
		ID:        invite.ID,
		Code:      invite.Code,
		Role:      invite.Role,
		Status:    string(invite.Status(time.Now().UTC())),
		ExpiresAt: invite.ExpiresAt,
		CreatedAt: invite.CreatedAt,
	})
}

// Delete removes an unused invite code.
//
// @Summary      Delete an unused invite code
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invite id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/invite-codes/{id} [delete]
func (h *InviteHandler) Delete(c echo.Context) error {
	if err := h.invites.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "invite code deleted"})
}
