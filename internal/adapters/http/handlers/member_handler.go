package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"anpere-portal/internal/adapters/persistence/models"
	"anpere-portal/internal/adapters/persistence/repositories"
	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/pkg/pagination"
	"anpere-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles the admin member console endpoints
type MemberHandler struct {
	memberService   *services.MemberService
	documentService *services.DocumentService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, documentService *services.DocumentService) *MemberHandler {
	return &MemberHandler{
		memberService:   memberService,
		documentService: documentService,
	}
}

func memberFilter(c *fiber.Ctx) repositories.MemberFilter {
	return repositories.MemberFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
	}
}

func memberResponses(members []*models.Member) []*models.MemberResponse {
	out := make([]*models.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, m.ToResponse())
	}
	return out
}

// List handles member listing with search and status filters
// @Summary List members
// @Description List members with optional free-text search and status filter
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search on name, email or member number"
// @Param status query string false "Filter by status (pending, active, inactive)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := memberFilter(c)
	if filter.Status != "" && !domain.MemberStatus(filter.Status).Valid() {
		return response.BadRequest(c, "Invalid status filter")
	}

	members, total, err := h.memberService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to retrieve members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": memberResponses(members),
		"meta":    pagination.GetMeta(params, total),
	})
}

// Get handles single member retrieval
// @Summary Get member
// @Description Get a member by ID
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to retrieve member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Create handles admin member creation
// @Summary Create member
// @Description Create a member directly from the admin console
// @Tags Members
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req MemberFormRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	photo, err := c.FormFile("photo")
	if err != nil {
		photo = nil
	}

	member, err := h.memberService.Create(c.Context(), req.toInput(), photo)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.ValidationFailed(c, "Validation failed", vErr.Fields)
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Update handles member update
// @Summary Update member
// @Description Update a member's details. The member number never changes.
// @Tags Members
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req MemberFormRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	photo, err := c.FormFile("photo")
	if err != nil {
		photo = nil
	}

	member, err := h.memberService.Update(c.Context(), uint(id), req.toInput(), photo)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.ValidationFailed(c, "Validation failed", vErr.Fields)
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Delete handles member removal
// @Summary Delete member
// @Description Permanently delete a member record
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	if err := h.memberService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to delete member")
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// ApproveRequest represents the optional approve body
type ApproveRequest struct {
	SendEmail *bool `json:"send_email"`
}

// Approve handles member approval
// @Summary Approve member
// @Description Approve a member, setting the status to active. Optionally notifies the member by email.
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body ApproveRequest false "Approval options"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/approve [post]
func (h *MemberHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	// Email notice defaults to on, the body is optional
	sendEmail := true
	var req ApproveRequest
	if err := c.BodyParser(&req); err == nil && req.SendEmail != nil {
		sendEmail = *req.SendEmail
	}

	member, err := h.memberService.Approve(c.Context(), uint(id), sendEmail)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to approve member")
	}

	return response.Success(c, "Member approved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Reject handles member rejection
// @Summary Reject member
// @Description Reject a member, setting the status to inactive
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/reject [post]
func (h *MemberHandler) Reject(c *fiber.Ctx) error {
	return h.workflow(c, h.memberService.Reject, "Member rejected successfully")
}

// Deactivate handles member deactivation
// @Summary Deactivate member
// @Description Deactivate a member, setting the status to inactive
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/deactivate [post]
func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	return h.workflow(c, h.memberService.Deactivate, "Member deactivated successfully")
}

// Reactivate handles member reactivation
// @Summary Reactivate member
// @Description Reactivate a member, setting the status back to active
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id}/reactivate [post]
func (h *MemberHandler) Reactivate(c *fiber.Ctx) error {
	return h.workflow(c, h.memberService.Reactivate, "Member reactivated successfully")
}

func (h *MemberHandler) workflow(c *fiber.Ctx, fn func(ctx context.Context, id uint) (*models.Member, error), message string) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := fn(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to update member status")
	}

	return response.Success(c, message, fiber.Map{
		"member": member.ToResponse(),
	})
}

// Document handles the member confirmation sheet download
// @Summary Download member confirmation sheet
// @Description Generate and download the member's enrollment confirmation as PDF
// @Tags Members
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Response
// @Router /members/{id}/document [get]
func (h *MemberHandler) Document(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	doc, err := h.documentService.MemberConfirmation(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to generate document")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Content)
}

// DocumentList handles the member list report download
// @Summary Download member list report
// @Description Generate and download the member list as PDF, honouring the same filters as the listing
// @Tags Members
// @Produce application/pdf
// @Security BearerAuth
// @Param q query string false "Search on name, email or member number"
// @Param status query string false "Filter by status"
// @Success 200 {file} file
// @Router /members/document [get]
func (h *MemberHandler) DocumentList(c *fiber.Ctx) error {
	filter := memberFilter(c)
	if filter.Status != "" && !domain.MemberStatus(filter.Status).Valid() {
		return response.BadRequest(c, "Invalid status filter")
	}

	doc, err := h.documentService.MemberList(c.Context(), filter)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate document")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Send(doc.Content)
}
