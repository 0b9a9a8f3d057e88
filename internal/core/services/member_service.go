package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/core/domain"

	"gorm.io/gorm"
)

// MemberService handles member registry business logic
type MemberService struct {
	memberRepo repositories.MemberRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// MemberInput represents create/update member input
type MemberInput struct {
	IdentityNumber string     `json:"identity_number"`
	IdentityType   string     `json:"identity_type"` // NIM, KTP, SIM
	FullName       string     `json:"full_name"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	Class          string     `json:"class,omitempty"`
	Address        string     `json:"address,omitempty"`
	Phone          string     `json:"phone,omitempty"`
}

func (in *MemberInput) validate() error {
	if strings.TrimSpace(in.IdentityNumber) == "" ||
		strings.TrimSpace(in.IdentityType) == "" ||
		strings.TrimSpace(in.FullName) == "" {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create registers a new member. The display member number is assigned by
// the store and never reused.
func (s *MemberService) Create(ctx context.Context, input *MemberInput) (*models.Member, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	member := &models.Member{
		IdentityNumber: strings.TrimSpace(input.IdentityNumber),
		IdentityType:   strings.TrimSpace(input.IdentityType),
		FullName:       strings.TrimSpace(input.FullName),
		BirthDate:      input.BirthDate,
		Class:          input.Class,
		Address:        input.Address,
		Phone:          input.Phone,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List lists a page of members, or all matches when a search query is given.
// Returns the page and the total row count.
func (s *MemberService) List(ctx context.Context, search string, limit, offset int) ([]*models.Member, int64, error) {
	if search != "" {
		members, err := s.memberRepo.Search(ctx, search)
		if err != nil {
			return nil, 0, err
		}
		return members, int64(len(members)), nil
	}

	members, err := s.memberRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// Update updates a member's record. The member number is identity and is
// never reassigned.
func (s *MemberService) Update(ctx context.Context, id uint, input *MemberInput) (*models.Member, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.IdentityNumber = strings.TrimSpace(input.IdentityNumber)
	member.IdentityType = strings.TrimSpace(input.IdentityType)
	member.FullName = strings.TrimSpace(input.FullName)
	member.BirthDate = input.BirthDate
	member.Class = input.Class
	member.Address = input.Address
	member.Phone = input.Phone

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member record
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, id)
}
