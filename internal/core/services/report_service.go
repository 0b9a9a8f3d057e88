package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var validReportTypes = map[string]bool{
	domain.ReportTypeMonthlyLoans: true,
	domain.ReportTypeMonthlyFines: true,
	domain.ReportTypeBooks:        true,
	domain.ReportTypeNewMembers:   true,
}

// ReportService records report-generation requests and their status.
// Generation itself is a stub: the record goes pending -> completed with a
// file path; no document is rendered.
type ReportService struct {
	reportRepo repositories.ReportRepository
	log        zerolog.Logger
}

// NewReportService creates a new report service
func NewReportService(reportRepo repositories.ReportRepository, log zerolog.Logger) *ReportService {
	return &ReportService{reportRepo: reportRepo, log: log}
}

// ReportInput represents create report input
type ReportInput struct {
	ReportType string `json:"report_type"`
	Title      string `json:"title"`
}

// Create records a report request and immediately completes it
func (s *ReportService) Create(ctx context.Context, input *ReportInput) (*models.Report, error) {
	if !validReportTypes[input.ReportType] || strings.TrimSpace(input.Title) == "" {
		return nil, domain.ErrInvalidInput
	}

	report := &models.Report{
		ReportType: input.ReportType,
		Title:      strings.TrimSpace(input.Title),
		Status:     domain.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	now := time.Now()
	report.Status = domain.ReportStatusCompleted
	report.FilePath = fmt.Sprintf("reports/%s-%s.pdf", report.ReportType, uuid.NewString())
	report.GeneratedAt = &now
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("report_id", report.ID).
		Str("report_type", report.ReportType).
		Msg("report recorded")

	return report, nil
}

// List lists all report records, newest first
func (s *ReportService) List(ctx context.Context) ([]*models.Report, error) {
	return s.reportRepo.List(ctx)
}

// Delete removes a report record
func (s *ReportService) Delete(ctx context.Context, id uint) error {
	if _, err := s.reportRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReportNotFound
		}
		return err
	}
	return s.reportRepo.Delete(ctx, id)
}
