package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeTx runs the callback directly. The in-memory repositories below do
// their mutations atomically under a mutex, which is what the loan engine
// relies on the database for.
type fakeTx struct{}

func (fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memMemberRepo struct {
	mu      sync.Mutex
	seq     uint
	members map[uint]*models.Member
}

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{members: make(map[uint]*models.Member)}
}

func (r *memMemberRepo) Create(_ context.Context, m *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = r.seq
	r.members[m.ID] = m
	return nil
}

func (r *memMemberRepo) GetByID(_ context.Context, id uint) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *memMemberRepo) List(_ context.Context, _, _ int) ([]*models.Member, error) {
	return nil, nil
}

func (r *memMemberRepo) Search(_ context.Context, _ string) ([]*models.Member, error) {
	return nil, nil
}

func (r *memMemberRepo) Update(_ context.Context, _ *models.Member) error { return nil }
func (r *memMemberRepo) Delete(_ context.Context, _ uint) error           { return nil }
func (r *memMemberRepo) Count(_ context.Context) (int64, error)           { return 0, nil }

type memBookRepo struct {
	mu    sync.Mutex
	seq   uint
	books map[uint]*models.Book
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: make(map[uint]*models.Book)}
}

func (r *memBookRepo) Create(_ context.Context, b *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	b.ID = r.seq
	r.books[b.ID] = b
	return nil
}

func (r *memBookRepo) GetByID(_ context.Context, id uint) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *memBookRepo) List(_ context.Context, _, _ int) ([]*models.Book, error) {
	return nil, nil
}

func (r *memBookRepo) Search(_ context.Context, _ string) ([]*models.Book, error) {
	return nil, nil
}

func (r *memBookRepo) Update(_ context.Context, _ *models.Book) error { return nil }
func (r *memBookRepo) Delete(_ context.Context, _ uint) error         { return nil }
func (r *memBookRepo) Count(_ context.Context) (int64, error)         { return 0, nil }

// DecrementAvailable mirrors the conditional update: check and decrement are
// one atomic step, never two.
func (r *memBookRepo) DecrementAvailable(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	if b.AvailableQuantity <= 0 {
		return domain.ErrBookNotAvailable
	}
	b.AvailableQuantity--
	return nil
}

func (r *memBookRepo) IncrementAvailable(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return domain.ErrBookNotFound
	}
	b.AvailableQuantity++
	return nil
}

func (r *memBookRepo) available(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books[id].AvailableQuantity
}

type memLoanRepo struct {
	mu    sync.Mutex
	seq   uint
	loans map[uint]*models.Loan

	// afterGet, when set, runs exactly once after the next GetByID read,
	// outside the lock. Tests use it to slot a competing operation into the
	// window between a service's read and its conditional write.
	afterGet func()
}

func newMemLoanRepo() *memLoanRepo {
	return &memLoanRepo{loans: make(map[uint]*models.Loan)}
}

func (r *memLoanRepo) Create(_ context.Context, l *models.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = r.seq
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *memLoanRepo) GetByID(_ context.Context, id uint) (*models.Loan, error) {
	r.mu.Lock()
	l, ok := r.loans[id]
	var cp models.Loan
	if ok {
		cp = *l
	}
	r.mu.Unlock()

	if hook := r.afterGet; hook != nil {
		r.afterGet = nil
		hook()
	}

	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &cp, nil
}

func (r *memLoanRepo) List(_ context.Context) ([]*models.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Loan, 0, len(r.loans))
	for _, l := range r.loans {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memLoanRepo) ListActive(ctx context.Context) ([]*models.Loan, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, l := range all {
		if l.Status == domain.LoanStatusActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLoanRepo) ListOverdue(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, l := range all {
		if l.Status == domain.LoanStatusActive && !l.DueDate.After(now) {
			out = append(out, l)
		}
	}
	return out, nil
}

// MarkReturned flips an active loan to returned and reports how many rows
// changed, matching the conditional update in the real repository.
func (r *memLoanRepo) MarkReturned(_ context.Context, id uint, returnDate time.Time, fine string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.Status != domain.LoanStatusActive {
		return 0, nil
	}
	rd := returnDate
	l.ReturnDate = &rd
	l.Fine = fine
	l.Status = domain.LoanStatusReturned
	return 1, nil
}

// DeleteActive removes the loan only while it is still active, matching the
// conditional statement in the real repository.
func (r *memLoanRepo) DeleteActive(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.Status != domain.LoanStatusActive {
		return 0, nil
	}
	delete(r.loans, id)
	return 1, nil
}

func (r *memLoanRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loans, id)
	return nil
}

func (r *memLoanRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	all, _ := r.List(ctx)
	var n int64
	for _, l := range all {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

// setDueDate rewinds a loan's due date so return-time fines can be exercised
// without a clock abstraction.
func (r *memLoanRepo) setDueDate(id uint, due time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans[id].DueDate = due
}

type loanFixture struct {
	svc     *LoanService
	loans   *memLoanRepo
	books   *memBookRepo
	members *memMemberRepo
}

func newLoanFixture(t *testing.T, available int) (*loanFixture, *models.Member, *models.Book) {
	t.Helper()

	loans := newMemLoanRepo()
	books := newMemBookRepo()
	members := newMemMemberRepo()
	svc := NewLoanService(loans, books, members, fakeTx{}, zerolog.Nop())

	member := &models.Member{FullName: "Budi Santoso", IdentityNumber: "2110511001", IdentityType: "NIM"}
	require.NoError(t, members.Create(context.Background(), member))

	book := &models.Book{Title: "Laskar Pelangi", Author: "Andrea Hirata", Quantity: available, AvailableQuantity: available}
	require.NoError(t, books.Create(context.Background(), book))

	return &loanFixture{svc: svc, loans: loans, books: books, members: members}, member, book
}

func TestLoanCreate(t *testing.T) {
	fx, member, book := newLoanFixture(t, 3)
	ctx := context.Background()

	before := time.Now()
	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.Equal(t, "0.00", loan.Fine)
	assert.Nil(t, loan.ReturnDate)
	assert.False(t, loan.LoanDate.Before(before))
	assert.Equal(t, loan.LoanDate.AddDate(0, 0, domain.LoanPeriodDays), loan.DueDate)
	assert.Equal(t, 2, fx.books.available(book.ID))
}

func TestLoanCreateValidation(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	t.Run("missing ids", func(t *testing.T) {
		_, err := fx.svc.Create(ctx, &CreateLoanInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: 999, BookID: book.ID})
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
		assert.Equal(t, 1, fx.books.available(book.ID))
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: 999})
		assert.ErrorIs(t, err, domain.ErrBookNotFound)
	})
}

func TestLoanCreateNoCopiesLeft(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	_, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	_, err = fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	assert.ErrorIs(t, err, domain.ErrBookNotAvailable)
	assert.Equal(t, 0, fx.books.available(book.ID))
}

func TestLoanCreateLastCopyRace(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	const contenders = 50
	errs := make(chan error, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, domain.ErrBookNotAvailable)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one contender may take the last copy")
	assert.Equal(t, contenders-1, rejected)
	assert.Equal(t, 0, fx.books.available(book.ID))

	active, err := fx.loans.CountByStatus(ctx, domain.LoanStatusActive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)
}

func TestLoanReturnOnTime(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	returned, err := fx.svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.LoanStatusReturned, returned.Status)
	assert.Equal(t, "0.00", returned.Fine)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, 1, fx.books.available(book.ID))
}

func TestLoanReturnLate(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	// Ten days late, with a minute of slack so the elapsed time stays under
	// ten full days and the ceiling lands on exactly ten.
	fx.loans.setDueDate(loan.ID, time.Now().AddDate(0, 0, -10).Add(time.Minute))

	returned, err := fx.svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	assert.Equal(t, "10000.00", returned.Fine)
	assert.Equal(t, domain.LoanStatusReturned, returned.Status)
	assert.Equal(t, 1, fx.books.available(book.ID))
}

func TestLoanReturnTwice(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	first, err := fx.svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	_, err = fx.svc.Return(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanAlreadyReturned)

	// Second attempt must not double-increment or rewrite the fine.
	assert.Equal(t, 1, fx.books.available(book.ID))
	current, err := fx.svc.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Fine, current.Fine)
}

func TestLoanReturnMissing(t *testing.T) {
	fx, _, _ := newLoanFixture(t, 1)

	_, err := fx.svc.Return(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanDelete(t *testing.T) {
	t.Run("active loan restores the copy", func(t *testing.T) {
		fx, member, book := newLoanFixture(t, 1)
		ctx := context.Background()

		loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
		require.NoError(t, err)
		require.Equal(t, 0, fx.books.available(book.ID))

		require.NoError(t, fx.svc.Delete(ctx, loan.ID))
		assert.Equal(t, 1, fx.books.available(book.ID))

		_, err = fx.svc.GetByID(ctx, loan.ID)
		assert.ErrorIs(t, err, domain.ErrLoanNotFound)
	})

	t.Run("returned loan leaves inventory alone", func(t *testing.T) {
		fx, member, book := newLoanFixture(t, 1)
		ctx := context.Background()

		loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
		require.NoError(t, err)
		_, err = fx.svc.Return(ctx, loan.ID)
		require.NoError(t, err)

		require.NoError(t, fx.svc.Delete(ctx, loan.ID))
		assert.Equal(t, 1, fx.books.available(book.ID))
	})

	t.Run("missing loan is a no-op", func(t *testing.T) {
		fx, _, book := newLoanFixture(t, 1)

		assert.NoError(t, fx.svc.Delete(context.Background(), 42))
		assert.Equal(t, 1, fx.books.available(book.ID))
	})
}

func TestLoanDeleteVsReturnSingleCompensation(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)
	require.Equal(t, 0, fx.books.available(book.ID))

	// A full return commits in the window between delete's read of the
	// still-active loan and its conditional delete.
	fx.loans.afterGet = func() {
		_, err := fx.svc.Return(ctx, loan.ID)
		require.NoError(t, err)
	}

	require.NoError(t, fx.svc.Delete(ctx, loan.ID))

	// Only the return may restore the copy; the delete saw zero affected
	// rows and must skip its compensation.
	assert.Equal(t, 1, fx.books.available(book.ID))
	assert.LessOrEqual(t, fx.books.available(book.ID), book.Quantity)

	_, err = fx.svc.GetByID(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanDeleteVsDeleteSingleCompensation(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	// A second delete of the same active loan commits inside the first
	// delete's read-to-write window.
	fx.loans.afterGet = func() {
		require.NoError(t, fx.svc.Delete(ctx, loan.ID))
	}

	require.NoError(t, fx.svc.Delete(ctx, loan.ID))

	// Exactly one of the two deletes performs the compensating increment.
	assert.Equal(t, 1, fx.books.available(book.ID))
	_, err = fx.svc.GetByID(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestLoanListOverdue(t *testing.T) {
	fx, member, book := newLoanFixture(t, 2)
	ctx := context.Background()

	overdueLoan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)
	fx.loans.setDueDate(overdueLoan.ID, time.Now().AddDate(0, 0, -3))

	_, err = fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)

	overdue, err := fx.svc.ListOverdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, overdueLoan.ID, overdue[0].ID)

	// Showing up in the overdue view must not rewrite the stored status.
	current, err := fx.svc.GetByID(ctx, overdueLoan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusActive, current.Status)
}

func TestLoanLifecycle(t *testing.T) {
	fx, member, book := newLoanFixture(t, 1)
	ctx := context.Background()

	loan, err := fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, fx.books.available(book.ID))
	assert.Equal(t, domain.LoanStatusActive, loan.Status)

	_, err = fx.svc.Create(ctx, &CreateLoanInput{MemberID: member.ID, BookID: book.ID})
	require.ErrorIs(t, err, domain.ErrBookNotAvailable)

	fx.loans.setDueDate(loan.ID, time.Now().AddDate(0, 0, -10).Add(time.Minute))
	returned, err := fx.svc.Return(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", returned.Fine)
	assert.Equal(t, domain.LoanStatusReturned, returned.Status)
	assert.Equal(t, 1, fx.books.available(book.ID))
}
