package services

import (
	"context"
	"testing"
	"time"

	"pustakahub/internal/adapters/persistence/models"
	"pustakahub/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueSweepDoesNotMutate(t *testing.T) {
	loans := newMemLoanRepo()
	ctx := context.Background()

	overdue := &models.Loan{
		MemberID: 1,
		BookID:   1,
		LoanDate: time.Now().AddDate(0, 0, -10),
		DueDate:  time.Now().AddDate(0, 0, -3),
		Fine:     "0.00",
		Status:   domain.LoanStatusActive,
	}
	require.NoError(t, loans.Create(ctx, overdue))

	svc := NewOverdueService(loans, newMemTokenRepo(), zerolog.Nop())
	svc.sweepOnce(ctx)

	after, err := loans.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusActive, after.Status)
	assert.Equal(t, "0.00", after.Fine)
	assert.Nil(t, after.ReturnDate)
}

func TestOverdueSweepPurgesExpiredTokens(t *testing.T) {
	tokens := newMemTokenRepo()
	ctx := context.Background()

	expired := &models.RefreshToken{UserID: 1, TokenHash: "stale", ExpiresAt: time.Now().Add(-time.Hour)}
	live := &models.RefreshToken{UserID: 1, TokenHash: "fresh", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, tokens.Create(ctx, expired))
	require.NoError(t, tokens.Create(ctx, live))

	svc := NewOverdueService(newMemLoanRepo(), tokens, zerolog.Nop())
	svc.purgeExpiredTokens(ctx)

	_, err := tokens.GetByTokenHash(ctx, "stale")
	assert.Error(t, err)

	_, err = tokens.GetByTokenHash(ctx, "fresh")
	assert.NoError(t, err)
}
