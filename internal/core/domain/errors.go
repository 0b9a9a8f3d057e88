package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Entity lookup errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrLoanNotFound   = errors.New("loan not found")
	ErrReportNotFound = errors.New("report not found")
	ErrUserNotFound   = errors.New("user not found")
)

// Loan engine business-rule rejections. Both are expected, recoverable
// conditions surfaced to the librarian, never retried automatically.
var (
	ErrBookNotAvailable    = errors.New("book has no available copies")
	ErrLoanAlreadyReturned = errors.New("loan has already been returned")
)
