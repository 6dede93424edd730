package handlers

import (
	"errors"
	"strconv"
	"strings"

	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/pkg/pagination"
	"anpere-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles contact message endpoints
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents the public contact form
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// Submit handles a public contact form submission
// @Summary Submit contact message
// @Description Submit a message through the public contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param body body ContactRequest true "Contact message"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.ContactInput{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	message, err := h.contactService.Submit(c.Context(), input)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.ValidationFailed(c, "Validation failed", vErr.Fields)
		default:
			return response.InternalServerError(c, "Failed to submit message")
		}
	}

	return response.Created(c, "Message submitted successfully", fiber.Map{
		"contact": message,
	})
}

// List handles contact message listing
// @Summary List contact messages
// @Description List contact messages, newest first
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /contacts [get]
func (h *ContactHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	messages, total, err := h.contactService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve messages")
	}

	return response.Success(c, "Messages retrieved successfully", fiber.Map{
		"contacts": messages,
		"meta":     pagination.GetMeta(params, total),
	})
}

// Get handles single contact message retrieval
// @Summary Get contact message
// @Description Get a contact message by ID
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	message, err := h.contactService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to retrieve message")
	}

	return response.Success(c, "Message retrieved successfully", fiber.Map{
		"contact": message,
	})
}

// Delete handles contact message removal
// @Summary Delete contact message
// @Description Delete a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	if err := h.contactService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to delete message")
	}

	return response.Success(c, "Message deleted successfully", nil)
}
