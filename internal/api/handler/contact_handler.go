package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/platform-api/internal/core/domain"
	"github.com/taskhive/platform-api/internal/core/ports"
)

// ContactHandler handles the public contact form and its admin inbox.
type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type submitContactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body"    validate:"required"`
}

type listContactsResponse struct {
	Data []*domain.ContactMessage `json:"data"`
}

// Submit accepts a message from the public contact form.
//
// @Summary      Submit a contact message
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      submitContactRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.contacts.Submit(c.Request().Context(), ports.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: "message received"})
}

// List returns all contact messages for admin triage.
//
// @Summary      List contact messages
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listContactsResponse
// @Router       /admin/contact-messages [get]
func (h *ContactHandler) List(c echo.Context) error {
	messages, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return err
	}

	if messages == nil {
		messages = []*domain.ContactMessage{}
	}
	return c.JSON(http.StatusOK, listContactsResponse{Data: messages})
}

// MarkRead flags a message as read.
//
// @Summary      Mark a contact message as read
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/contact-messages/{id}/read [patch]
func (h *ContactHandler) MarkRead(c echo.Context) error {
	if err := h.contacts.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "message marked as read"})
}

// Delete removes a message permanently.
//
// @Summary      Delete a contact message
// @Tags         contact
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/contact-messages/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.contacts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "message deleted"})
}
