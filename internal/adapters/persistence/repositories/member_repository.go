package repositories

import (
	"context"

	"pustakahub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return dbFromContext(ctx, r.db).Create(member).Error
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := dbFromContext(ctx, r.db).First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists members, newest first
func (r *memberRepository) List(ctx context.Context, limit, offset int) ([]*models.Member, error) {
	var members []*models.Member
	err := dbFromContext(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	return members, err
}

// Search finds members by name, identity number or display number
func (r *memberRepository) Search(ctx context.Context, query string) ([]*models.Member, error) {
	var members []*models.Member
	pattern := "%" + query + "%"
	err := dbFromContext(ctx, r.db).
		Where("full_name LIKE ? OR identity_number LIKE ? OR CAST(id AS CHAR) LIKE ?",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&members).Error
	return members, err
}

// Update updates a member
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	return dbFromContext(ctx, r.db).Save(member).Error
}

// Delete hard deletes a member
func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return dbFromContext(ctx, r.db).Delete(&models.Member{}, id).Error
}

// Count counts all members
func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&models.Member{}).Count(&total).Error
	return total, err
}
