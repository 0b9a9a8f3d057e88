package services

import (
	"context"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates summary counts for the landing page. Pure
// read aggregation; no state owned.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats represents dashboard statistics
type Stats struct {
	ActiveLoans    int64 `json:"active_loans"`
	CompletedLoans int64 `json:"completed_loans"`
	TotalBooks     int64 `json:"total_books"` // distinct titles, not copies
	TotalMembers   int64 `json:"total_members"`
}

// GetStats returns the four dashboard counts
func (s *DashboardService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", domain.LoanStatusActive).
		Count(&stats.ActiveLoans).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", domain.LoanStatusReturned).
		Count(&stats.CompletedLoans).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Book{}).
		Count(&stats.TotalBooks).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Member{}).
		Count(&stats.TotalMembers).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
