package db

import (
	"fmt"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/models"
)

// AutoMigrate creates/updates tables, the same convention
// services/order_service/src/database/connection.go:AutoMigrate uses.
// Versioned schema evolution beyond the initial shape runs through
// golang-migrate (see internal/db/migrations/, cmd/server/main.go) — that is
// the "schema evolution" external collaborator named in spec.md §2; this
// function only establishes the baseline shape for fresh environments and
// local development.
func (d *DB) AutoMigrate() error {
	if err := d.Gorm.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		// Non-fatal: ids are generated in application code, not via DEFAULT.
	}

	err := d.Gorm.AutoMigrate(
		&models.Store{},
		&models.PosDevice{},
		&models.DeviceEnrollmentCode{},
		&models.GlobalProduct{},
		&models.GlobalProductIdentifier{},
		&models.Product{},
		&models.Variant{},
		&models.Barcode{},
		&models.StoreProduct{},
		&models.RetailerVariant{},
		&models.StoreInventory{},
		&models.BulkInventory{},
		&models.InventoryLedger{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Payment{},
		&models.Collection{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.ProcessedEvent{},
		&models.ScanEvent{},
	)
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	return d.createIndexes()
}

// createIndexes adds the partial/composite indexes spec.md §6 requires beyond
// what GORM struct tags express, following
// services/order_service/src/database/connection.go:createIndexes.
func (d *DB) createIndexes() error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_sale_store_offline_receipt
			ON sales (store_id, offline_receipt_ref) WHERE offline_receipt_ref IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_scan_events_dedup
			ON scan_events (store_id, mode, scan_value, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_collections_created_at ON collections (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_created_at ON inventory_ledger (created_at DESC)`,
	}
	for _, stmt := range stmts {
		if err := d.Gorm.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// WithGorm returns a *gorm.DB bound to this pool, used by repositories that
// need the raw handle (e.g. for clause.Locking row locks).
func (d *DB) WithGorm() *gorm.DB {
	return d.Gorm
}
