package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Serializable runs fn inside a SERIALIZABLE transaction, per spec.md §5: the
// sales confirmation path, payment paths and stock-verification paths set
// SERIALIZABLE isolation explicitly so concurrent deductions against the same
// (store, globalProductId) are totally ordered. GORM has no native isolation
// option, so the level is set with a raw statement issued as the first
// statement inside the transaction, following the raw-SQL-alongside-GORM pattern
// services/order_service/src/database/connection.go uses for its own
// extension/index statements.
func Serializable(ctx context.Context, gdb *gorm.DB, fn func(tx *gorm.DB) error) error {
	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
			return err
		}
		return fn(tx)
	})
}

// Default runs fn inside a transaction at the connection's default isolation
// level (READ COMMITTED), for paths that rely on unique constraints +
// ON CONFLICT DO NOTHING for their races instead (catalog upserts, device
// heartbeats, enrollment) per spec.md §5.
func Default(ctx context.Context, gdb *gorm.DB, fn func(tx *gorm.DB) error) error {
	return gdb.WithContext(ctx).Transaction(fn)
}

// LockForUpdate applies SELECT ... FOR UPDATE to query, the row-lock clause
// every StoreInventory/BulkInventory read-before-write uses.
func LockForUpdate(q *gorm.DB) *gorm.DB {
	return q.Clauses(clause.Locking{Strength: "UPDATE"})
}
