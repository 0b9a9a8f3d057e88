package handlers

import (
	"errors"
	"strconv"

	"pustakahub/internal/core/domain"
	"pustakahub/internal/core/services"
	"pustakahub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles report bookkeeping endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportRequest represents create report request
type ReportRequest struct {
	ReportType string `json:"report_type"` // monthly_loans, monthly_fines, books, new_members
	Title      string `json:"title"`
}

// Create records a report request
// @Summary Create report
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ReportRequest true "Report data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Create(c.Context(), &services.ReportInput{
		ReportType: req.ReportType,
		Title:      req.Title,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Valid report type and title are required")
		}
		return response.InternalServerError(c, "Failed to create report")
	}

	return response.Created(c, "Report created successfully", fiber.Map{
		"report": report,
	})
}

// List lists reports
// @Summary List reports
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reportService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list reports")
	}
	return response.Success(c, "Reports retrieved successfully", reports)
}

// Delete deletes a report record
// @Summary Delete report
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid report ID")
	}

	if err := h.reportService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			return response.NotFound(c, "Report not found")
		}
		return response.InternalServerError(c, "Failed to delete report")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
