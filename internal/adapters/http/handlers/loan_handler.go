package handlers

import (
	"errors"
	"strconv"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"
	"pustakahub/internal/core/services"
	"pustakahub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoanRequest represents create loan request
type CreateLoanRequest struct {
	MemberID uint `json:"member_id"`
	BookID   uint `json:"book_id"`
}

func loanResponses(loans []*models.Loan) []*models.LoanResponse {
	now := time.Now()
	out := make([]*models.LoanResponse, len(loans))
	for i, loan := range loans {
		out[i] = loan.ToResponse(now)
	}
	return out
}

// Create creates a new loan
// @Summary Create loan
// @Description Lend one copy of a book to a member
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLoanRequest true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.MemberID == 0 {
		return response.BadRequest(c, "Member is required")
	}
	if req.BookID == 0 {
		return response.BadRequest(c, "Book is required")
	}

	loan, err := h.loanService.Create(c.Context(), &services.CreateLoanInput{
		MemberID: req.MemberID,
		BookID:   req.BookID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrBookNotFound), errors.Is(err, domain.ErrBookNotAvailable):
			return response.BadRequest(c, "Book is not available for loan")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan data")
		default:
			return response.InternalServerError(c, "Failed to create loan")
		}
	}

	return response.Created(c, "Loan created successfully", fiber.Map{
		"loan": loan.ToResponse(time.Now()),
	})
}

// Return processes a book return
// @Summary Return loan
// @Description Return a borrowed book, computing any overdue fine
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/return [put]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Return(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanAlreadyReturned):
			return response.Conflict(c, "Loan has already been returned")
		default:
			return response.InternalServerError(c, "Failed to return book")
		}
	}

	return response.Success(c, "Book returned successfully", fiber.Map{
		"loan": loan.ToResponse(time.Now()),
	})
}

// Delete deletes a loan record
// @Summary Delete loan
// @Description Delete a loan record, restoring inventory if it was active
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 204
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete loan")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// List lists all loans
// @Summary List loans
// @Description List all loans with member and book joined, newest first
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans, err := h.loanService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}
	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// ListActive lists active loans
// @Summary List active loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/active [get]
func (h *LoanHandler) ListActive(c *fiber.Ctx) error {
	loans, err := h.loanService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list active loans")
	}
	return response.Success(c, "Active loans retrieved successfully", loanResponses(loans))
}

// ListOverdue lists overdue loans
// @Summary List overdue loans
// @Description Active loans past their due date
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans/overdue [get]
func (h *LoanHandler) ListOverdue(c *fiber.Ctx) error {
	loans, err := h.loanService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue loans")
	}
	return response.Success(c, "Overdue loans retrieved successfully", loanResponses(loans))
}

// GetByID gets a loan by ID
// @Summary Get loan by ID
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan.ToResponse(time.Now()),
	})
}
