package handlers

import (
	"errors"
	"strings"

	"anpere-portal/internal/core/domain"
	"anpere-portal/internal/core/services"
	"anpere-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RegistrationHandler handles the public member registration form
type RegistrationHandler struct {
	memberService *services.MemberService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(memberService *services.MemberService) *RegistrationHandler {
	return &RegistrationHandler{memberService: memberService}
}

// MemberFormRequest represents the member enrollment form. It is sent as
// multipart/form-data so the photo can ride along with the fields.
type MemberFormRequest struct {
	FullName      string `json:"full_name" form:"full_name"`
	BirthDate     string `json:"birth_date" form:"birth_date"`
	BirthPlace    string `json:"birth_place" form:"birth_place"`
	Nationality   string `json:"nationality" form:"nationality"`
	Gender        string `json:"gender" form:"gender"`
	MaritalStatus string `json:"marital_status" form:"marital_status"`

	DocumentNumber     string `json:"document_number" form:"document_number"`
	DocumentIssueDate  string `json:"document_issue_date" form:"document_issue_date"`
	DocumentIssuePlace string `json:"document_issue_place" form:"document_issue_place"`

	FatherName   string `json:"father_name" form:"father_name"`
	MotherName   string `json:"mother_name" form:"mother_name"`
	Occupation   string `json:"occupation" form:"occupation"`
	WorkProvince string `json:"work_province" form:"work_province"`

	Phone        string `json:"phone" form:"phone"`
	Email        string `json:"email" form:"email"`
	Address      string `json:"address" form:"address"`
	Municipality string `json:"municipality" form:"municipality"`

	PhotoURL  string `json:"photo_url" form:"photo_url"`
	OtherInfo string `json:"other_info" form:"other_info"`
	Status    string `json:"status" form:"status"`
}

func (r *MemberFormRequest) toInput() *services.MemberInput {
	return &services.MemberInput{
		FullName:           strings.TrimSpace(r.FullName),
		BirthDate:          strings.TrimSpace(r.BirthDate),
		BirthPlace:         strings.TrimSpace(r.BirthPlace),
		Nationality:        strings.TrimSpace(r.Nationality),
		Gender:             strings.TrimSpace(r.Gender),
		MaritalStatus:      strings.TrimSpace(r.MaritalStatus),
		DocumentNumber:     strings.TrimSpace(r.DocumentNumber),
		DocumentIssueDate:  strings.TrimSpace(r.DocumentIssueDate),
		DocumentIssuePlace: strings.TrimSpace(r.DocumentIssuePlace),
		FatherName:         strings.TrimSpace(r.FatherName),
		MotherName:         strings.TrimSpace(r.MotherName),
		Occupation:         strings.TrimSpace(r.Occupation),
		WorkProvince:       strings.TrimSpace(r.WorkProvince),
		Phone:              strings.TrimSpace(r.Phone),
		Email:              strings.TrimSpace(r.Email),
		Address:            strings.TrimSpace(r.Address),
		Municipality:       strings.TrimSpace(r.Municipality),
		PhotoURL:           strings.TrimSpace(r.PhotoURL),
		OtherInfo:          strings.TrimSpace(r.OtherInfo),
		Status:             strings.TrimSpace(r.Status),
	}
}

// Register handles a public enrollment submission
// @Summary Submit member registration
// @Description Submit a new member enrollment form. The member enters the system as pending.
// @Tags Registration
// @Accept multipart/form-data
// @Produce json
// @Param full_name formData string true "Full name"
// @Param birth_date formData string true "Birth date"
// @Param gender formData string true "Gender"
// @Param photo formData file false "Member photo"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /registration [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var req MemberFormRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Photo is optional
	photo, err := c.FormFile("photo")
	if err != nil {
		photo = nil
	}

	member, err := h.memberService.Register(c.Context(), req.toInput(), photo)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			return response.ValidationFailed(c, "Validation failed", vErr.Fields)
		default:
			return response.InternalServerError(c, "Failed to submit registration")
		}
	}

	return response.Created(c, "Registration submitted successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}
