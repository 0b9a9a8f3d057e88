package repositories

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key carrying an in-flight transaction DB handle
type txKey struct{}

// TxManager runs multi-statement repository operations in a single database
// transaction. The transactional *gorm.DB travels in the context so that
// repositories participate transparently; fn returning an error rolls the
// whole transaction back.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction executes fn inside one transaction
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transactional DB if ctx carries one, otherwise
// the fallback handle bound to ctx.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
