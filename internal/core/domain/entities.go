package domain

import (
	"math"
	"strconv"
	"time"
)

// Loan status values persisted in the loans table.
// "overdue" is never stored; it is a query-time predicate over
// (status, due_date, now). See IsOverdue.
const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

// Loan policy for the whole institution
const (
	// LoanPeriodDays is the fixed borrowing period
	LoanPeriodDays = 7

	// FinePerDay is the fine in Rupiah per full day late
	FinePerDay = 1000
)

// Report status values
const (
	ReportStatusPending   = "pending"
	ReportStatusCompleted = "completed"
	ReportStatusFailed    = "failed"
)

// Report types
const (
	ReportTypeMonthlyLoans = "monthly_loans"
	ReportTypeMonthlyFines = "monthly_fines"
	ReportTypeBooks        = "books"
	ReportTypeNewMembers   = "new_members"
)

// CalculateFine returns the fine in Rupiah for a loan due at dueDate and
// returned at returnDate. Any positive fraction of a day late counts as a
// full day; returning at or before the due date costs nothing.
func CalculateFine(dueDate, returnDate time.Time) int64 {
	diffDays := int64(math.Ceil(returnDate.Sub(dueDate).Hours() / 24))
	if diffDays > 0 {
		return diffDays * FinePerDay
	}
	return 0
}

// DueDateFor returns the due date for a loan taken out at loanDate
func DueDateFor(loanDate time.Time) time.Time {
	return loanDate.AddDate(0, 0, LoanPeriodDays)
}

// IsOverdue reports whether an active loan is past its due date at now.
// The stored status stays "active"; overdue is display state only.
func IsOverdue(status string, dueDate, now time.Time) bool {
	return status == LoanStatusActive && dueDate.Before(now)
}

// FormatFine renders a fine amount as the decimal string persisted in the
// loans table, e.g. 10000 -> "10000.00".
func FormatFine(amount int64) string {
	return strconv.FormatInt(amount, 10) + ".00"
}
