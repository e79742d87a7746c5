package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// AdminHandler handles the approval queue. Routes are mounted behind
// Auth + RBAC(ADMIN), so handlers can assume an admin caller.
type AdminHandler struct {
	approvals ports.ApprovalService
}

func NewAdminHandler(approvals ports.ApprovalService) *AdminHandler {
	return &AdminHandler{approvals: approvals}
}

type pendingUsersResponse struct {
	Data  []*domain.User `json:"data"`
	Total int            `json:"total"`
}

type rejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PendingUsers lists accounts awaiting an approval decision.
//
// @Summary      List users pending approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users/pending [get]
func (h *AdminHandler) PendingUsers(c echo.Context) error {
	users, err := h.approvals.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, pendingUsersResponse{Data: users, Total: len(users)})
}

// Approve grants login capability to a pending account.
//
// @Summary      Approve a pending user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /admin/users/{id}/approve [patch]
func (h *AdminHandler) Approve(c echo.Context) error {
	if err := h.approvals.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "user approved"})
}

// Reject deletes a pending account. Destructive and permanent.
//
// @Summary      Reject and delete a pending user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "User id"
// @Param        body  body      rejectRequest  false  "Optional reason"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) Reject(c echo.Context) error {
	var req rejectRequest
	// The body is optional on DELETE; a bind failure just means no reason.
	_ = c.Bind(&req)

	if err := h.approvals.Reject(c.Request().Context(), c.Param("id"), req.Reason); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "user rejected"})
}
