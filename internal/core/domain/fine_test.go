package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateFine(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("on time", func(t *testing.T) {
		assert.Equal(t, int64(0), CalculateFine(due, due))
	})

	t.Run("early return", func(t *testing.T) {
		ret := due.Add(-48 * time.Hour)
		assert.Equal(t, int64(0), CalculateFine(due, ret))
	})

	t.Run("one second late counts as a full day", func(t *testing.T) {
		ret := due.Add(time.Second)
		assert.Equal(t, int64(FinePerDay), CalculateFine(due, ret))
	})

	t.Run("exactly seven days late", func(t *testing.T) {
		ret := due.AddDate(0, 0, 7)
		assert.Equal(t, int64(7*FinePerDay), CalculateFine(due, ret))
	})

	t.Run("fractional eighth day rounds up", func(t *testing.T) {
		ret := due.AddDate(0, 0, 7).Add(time.Hour)
		assert.Equal(t, int64(8*FinePerDay), CalculateFine(due, ret))
	})
}

func TestCalculateFineMonotonic(t *testing.T) {
	due := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	prev := CalculateFine(due, due)
	for days := 1; days <= 30; days++ {
		fine := CalculateFine(due, due.AddDate(0, 0, days))
		assert.Equal(t, prev+FinePerDay, fine, "day %d", days)
		prev = fine
	}
}

func TestDueDateFor(t *testing.T) {
	loanDate := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 8, 9, 30, 0, 0, time.UTC), DueDateFor(loanDate))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

	t.Run("active past due", func(t *testing.T) {
		assert.True(t, IsOverdue(LoanStatusActive, now.AddDate(0, 0, -1), now))
	})

	t.Run("active before due", func(t *testing.T) {
		assert.False(t, IsOverdue(LoanStatusActive, now.AddDate(0, 0, 1), now))
	})

	t.Run("returned loans are never overdue", func(t *testing.T) {
		assert.False(t, IsOverdue(LoanStatusReturned, now.AddDate(0, 0, -10), now))
	})
}

func TestFormatFine(t *testing.T) {
	assert.Equal(t, "0.00", FormatFine(0))
	assert.Equal(t, "1000.00", FormatFine(1000))
	assert.Equal(t, "10000.00", FormatFine(10000))
}
