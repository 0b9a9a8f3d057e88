package repositories

import (
	"context"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return dbFromContext(ctx, r.db).Create(loan).Error
}

// GetByID gets a loan by ID with member and book joined
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := dbFromContext(ctx, r.db).
		Preload("Member").
		Preload("Book").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// List lists all loans with relations, newest first
func (r *loanRepository) List(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := dbFromContext(ctx, r.db).
		Preload("Member").
		Preload("Book").
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListActive lists loans that have not been returned
func (r *loanRepository) ListActive(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := dbFromContext(ctx, r.db).
		Preload("Member").
		Preload("Book").
		Where("status = ?", domain.LoanStatusActive).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListOverdue lists active loans past their due date. This is a filtered
// view; the stored status stays "active".
func (r *loanRepository) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := dbFromContext(ctx, r.db).
		Preload("Member").
		Preload("Book").
		Where("status = ? AND due_date <= ?", domain.LoanStatusActive, now).
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

// MarkReturned flips an active loan to returned in a single conditional
// update and reports how many rows changed. Zero on an existing loan means
// it was already returned.
func (r *loanRepository) MarkReturned(ctx context.Context, id uint, returnDate time.Time, fine string) (int64, error) {
	result := dbFromContext(ctx, r.db).Model(&models.Loan{}).
		Where("id = ? AND status = ?", id, domain.LoanStatusActive).
		Updates(map[string]interface{}{
			"return_date": returnDate,
			"fine":        fine,
			"status":      domain.LoanStatusReturned,
		})
	return result.RowsAffected, result.Error
}

// DeleteActive hard deletes a loan only while it is still active, in a
// single conditional statement, and reports how many rows went. Zero means
// a concurrent return or delete won the row first.
func (r *loanRepository) DeleteActive(ctx context.Context, id uint) (int64, error) {
	result := dbFromContext(ctx, r.db).
		Where("id = ? AND status = ?", id, domain.LoanStatusActive).
		Delete(&models.Loan{})
	return result.RowsAffected, result.Error
}

// Delete hard deletes a loan
func (r *loanRepository) Delete(ctx context.Context, id uint) error {
	return dbFromContext(ctx, r.db).Delete(&models.Loan{}, id).Error
}

// CountByStatus counts loans with the given status
func (r *loanRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&models.Loan{}).
		Where("status = ?", status).
		Count(&total).Error
	return total, err
}
