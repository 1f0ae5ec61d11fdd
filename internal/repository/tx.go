package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Tx runs a unit of work against catalog reads and booking writes in
// one database transaction. The callback receives the deadline-bounded
// context; every query inside the unit of work must use it.
type Tx interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context, cat Catalog, bookings Bookings) error) error
}

type TxManager struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTxManager bounds every transaction with timeout so a stuck lock
// surfaces as a context deadline instead of hanging.
func NewTxManager(db *gorm.DB, timeout time.Duration) *TxManager {
	return &TxManager{db: db, timeout: timeout}
}

func (m *TxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, cat Catalog, bookings Bookings) error) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewCatalogRepository(tx), NewBookingRepository(tx))
	})
}
