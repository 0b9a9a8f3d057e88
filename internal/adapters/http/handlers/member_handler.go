package handlers

import (
	"errors"
	"strconv"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"
	"pustakahub/internal/core/services"
	"pustakahub/internal/pkg/pagination"
	"pustakahub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// MemberRequest represents create/update member request
type MemberRequest struct {
	IdentityNumber string `json:"identity_number"`
	IdentityType   string `json:"identity_type"`
	FullName       string `json:"full_name"`
	BirthDate      string `json:"birth_date,omitempty"` // YYYY-MM-DD
	Class          string `json:"class,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

func (req *MemberRequest) toInput() (*services.MemberInput, error) {
	input := &services.MemberInput{
		IdentityNumber: req.IdentityNumber,
		IdentityType:   req.IdentityType,
		FullName:       req.FullName,
		Class:          req.Class,
		Address:        req.Address,
		Phone:          req.Phone,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, err
		}
		input.BirthDate = &birthDate
	}
	return input, nil
}

func memberResponses(members []*models.Member) []*models.MemberResponse {
	out := make([]*models.MemberResponse, len(members))
	for i, m := range members {
		out[i] = m.ToResponse()
	}
	return out
}

// Create registers a new member
// @Summary Create member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Invalid birth date, use YYYY-MM-DD")
	}

	member, err := h.memberService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Identity number, identity type and full name are required")
		}
		return response.InternalServerError(c, "Failed to create member")
	}

	return response.Created(c, "Member created successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// List lists members
// @Summary List members
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name, identity number or member number"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	members, total, err := h.memberService.List(c.Context(), c.Query("search"), params.Limit, params.Offset)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}
	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(memberResponses(members), params, total))
}

// GetByID gets a member by ID
// @Summary Get member by ID
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *MemberHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	member, err := h.memberService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Update updates a member
// @Summary Update member
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param body body MemberRequest true "Member data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req MemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return response.BadRequest(c, "Invalid birth date, use YYYY-MM-DD")
	}

	member, err := h.memberService.Update(c.Context(), uint(id), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Identity number, identity type and full name are required")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated successfully", fiber.Map{
		"member": member.ToResponse(),
	})
}

// Delete deletes a member
// @Summary Delete member
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 204
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

	return c.SendStatus(fiber.StatusNoContent)
}
