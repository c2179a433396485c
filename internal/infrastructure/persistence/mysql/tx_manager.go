package mysql

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager wraps gorm's Transaction and carries the transactional handle
// through the context, so repositories join the surrounding transaction
// without every method signature taking a *gorm.DB.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction runs fn in one transaction. Every repository call made with
// the context fn receives participates in it; returning an error rolls the
// whole unit back, returning nil commits. Nested calls become savepoints
// (gorm default).
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transactional handle if the context carries
// one, else the fallback connection.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
