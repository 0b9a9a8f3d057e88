package services

import (
	"context"
	"testing"

	"pustakahub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookInput() *BookInput {
	return &BookInput{
		Category:    "Fiksi",
		Title:       "Bumi Manusia",
		Type:        "Novel",
		Author:      "Pramoedya Ananta Toer",
		Publisher:   "Hasta Mitra",
		PublishYear: 1980,
		Quantity:    3,
	}
}

func TestBookCreate(t *testing.T) {
	repo := newMemBookRepo()
	svc := NewBookService(repo)
	ctx := context.Background()

	book, err := svc.Create(ctx, validBookInput())
	require.NoError(t, err)

	assert.Equal(t, 3, book.Quantity)
	assert.Equal(t, 3, book.AvailableQuantity, "all copies start on the shelf")
}

func TestBookCreateDefaultsToOneCopy(t *testing.T) {
	repo := newMemBookRepo()
	svc := NewBookService(repo)

	input := validBookInput()
	input.Quantity = 0

	book, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 1, book.Quantity)
	assert.Equal(t, 1, book.AvailableQuantity)
}

func TestBookCreateValidation(t *testing.T) {
	svc := NewBookService(newMemBookRepo())

	input := validBookInput()
	input.Title = "   "

	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBookUpdateLeavesAvailabilityAlone(t *testing.T) {
	repo := newMemBookRepo()
	svc := NewBookService(repo)
	ctx := context.Background()

	book, err := svc.Create(ctx, validBookInput())
	require.NoError(t, err)

	// Simulate two copies out on loan.
	require.NoError(t, repo.DecrementAvailable(ctx, book.ID))
	require.NoError(t, repo.DecrementAvailable(ctx, book.ID))

	input := validBookInput()
	input.Quantity = 10

	updated, err := svc.Update(ctx, book.ID, input)
	require.NoError(t, err)

	assert.Equal(t, 10, updated.Quantity)
	assert.Equal(t, 1, updated.AvailableQuantity, "availability is owned by the loan engine")
}

func TestBookNotFound(t *testing.T) {
	svc := NewBookService(newMemBookRepo())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	_, err = svc.Update(ctx, 42, validBookInput())
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	err = svc.Delete(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}
