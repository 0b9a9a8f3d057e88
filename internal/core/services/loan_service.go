package services

import (
	"context"
	"errors"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/adapters/persistence/repositories"
	"pustakahub/internal/core/domain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// LoanService owns the loan lifecycle and keeps book availability counters
// consistent with active loans. Every mutating operation runs in a single
// transaction: a failed call leaves all rows in their pre-call state.
type LoanService struct {
	loanRepo   repositories.LoanRepository
	bookRepo   repositories.BookRepository
	memberRepo repositories.MemberRepository
	tx         repositories.TransactionManager
	log        zerolog.Logger
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	bookRepo repositories.BookRepository,
	memberRepo repositories.MemberRepository,
	tx repositories.TransactionManager,
	log zerolog.Logger,
) *LoanService {
	return &LoanService{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		tx:         tx,
		log:        log,
	}
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	MemberID uint `json:"member_id"`
	BookID   uint `json:"book_id"`
}

// Create lends one copy of a book to a member. The availability check and
// the counter decrement are one conditional update inside the same
// transaction as the loan insert, so two concurrent requests for the last
// copy cannot both succeed.
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*models.Loan, error) {
	if input.MemberID == 0 || input.BookID == 0 {
		return nil, domain.ErrInvalidInput
	}

	var loan *models.Loan
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		if _, err := s.memberRepo.GetByID(txCtx, input.MemberID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrMemberNotFound
			}
			return err
		}

		// Take the copy off the shelf first; this is the contended step.
		if err := s.bookRepo.DecrementAvailable(txCtx, input.BookID); err != nil {
			return err
		}

		now := time.Now()
		loan = &models.Loan{
			MemberID: input.MemberID,
			BookID:   input.BookID,
			LoanDate: now,
			DueDate:  domain.DueDateFor(now),
			Fine:     domain.FormatFine(0),
			Status:   domain.LoanStatusActive,
		}
		return s.loanRepo.Create(txCtx, loan)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("loan_id", loan.ID).
		Uint("member_id", loan.MemberID).
		Uint("book_id", loan.BookID).
		Time("due_date", loan.DueDate).
		Msg("loan created")

	return s.loanRepo.GetByID(ctx, loan.ID)
}

// Return processes a book return: computes the fine from the elapsed time,
// flips the loan to returned exactly once and puts the copy back on the
// shelf. A second return on the same loan is rejected, not silently
// double-counted.
func (s *LoanService) Return(ctx context.Context, id uint) (*models.Loan, error) {
	var fine int64
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		loan, err := s.loanRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		if loan.Status != domain.LoanStatusActive {
			return domain.ErrLoanAlreadyReturned
		}

		returnDate := time.Now()
		fine = domain.CalculateFine(loan.DueDate, returnDate)

		// Conditional on status=active: a concurrent return or delete of the
		// same loan loses this race and affects zero rows.
		affected, err := s.loanRepo.MarkReturned(txCtx, id, returnDate, domain.FormatFine(fine))
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrLoanAlreadyReturned
		}

		return s.bookRepo.IncrementAvailable(txCtx, loan.BookID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("loan_id", id).
		Int64("fine", fine).
		Msg("loan returned")

	return s.loanRepo.GetByID(ctx, id)
}

// Delete removes a loan record. Deleting a still-active loan restores the
// copy consumed at creation; deleting a returned loan leaves inventory
// alone (the return already restored it). Deleting an absent loan succeeds.
func (s *LoanService) Delete(ctx context.Context, id uint) error {
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		loan, err := s.loanRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // idempotent delete
			}
			return err
		}

		// Conditional on status=active, like MarkReturned: the read above
		// only supplies the book ID, the compensation decision rides on the
		// delete's row count. A return or another delete committing between
		// the read and this statement affects zero rows here, so the
		// compensating increment can never be applied twice.
		affected, err := s.loanRepo.DeleteActive(txCtx, id)
		if err != nil {
			return err
		}
		if affected == 1 {
			return s.bookRepo.IncrementAvailable(txCtx, loan.BookID)
		}

		// Lost the race or the loan was already returned; remove the row
		// without touching inventory.
		return s.loanRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info().Uint("loan_id", id).Msg("loan deleted")
	return nil
}

// GetByID gets a loan with its member and book
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// List lists all loans, newest first
func (s *LoanService) List(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.List(ctx)
}

// ListActive lists loans that are still out
func (s *LoanService) ListActive(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListActive(ctx)
}

// ListOverdue lists active loans past their due date. The stored status is
// not rewritten; overdue is a query predicate only.
func (s *LoanService) ListOverdue(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListOverdue(ctx, time.Now())
}
