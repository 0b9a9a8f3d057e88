package repositories

import (
	"context"
	"time"

	"pustakahub/internal/adapters/persistence/models"
)

// TransactionManager wraps repository calls in a single transaction
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uint) (*models.Member, error)
	List(ctx context.Context, limit, offset int) ([]*models.Member, error)
	Search(ctx context.Context, query string) ([]*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// BookRepository defines book repository interface.
// DecrementAvailable must be a single conditional update so that the
// availability check and the decrement cannot be split by a concurrent call.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	List(ctx context.Context, limit, offset int) ([]*models.Book, error)
	Search(ctx context.Context, query string) ([]*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	DecrementAvailable(ctx context.Context, id uint) error
	IncrementAvailable(ctx context.Context, id uint) error
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	List(ctx context.Context) ([]*models.Loan, error)
	ListActive(ctx context.Context) ([]*models.Loan, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error)
	MarkReturned(ctx context.Context, id uint, returnDate time.Time, fine string) (int64, error)
	DeleteActive(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// ReportRepository defines report repository interface
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uint) (*models.Report, error)
	List(ctx context.Context) ([]*models.Report, error)
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uint) error
}

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByRole(ctx context.Context, role string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
