package repositories

import (
	"context"

	"pustakahub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// reportRepository implements ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create creates a new report record
func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return dbFromContext(ctx, r.db).Create(report).Error
}

// GetByID gets a report by ID
func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := dbFromContext(ctx, r.db).First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// List lists all reports, newest first
func (r *reportRepository) List(ctx context.Context) ([]*models.Report, error) {
	var reports []*models.Report
	err := dbFromContext(ctx, r.db).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// Update updates a report record
func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	return dbFromContext(ctx, r.db).Save(report).Error
}

// Delete hard deletes a report record
func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	return dbFromContext(ctx, r.db).Delete(&models.Report{}, id).Error
}
