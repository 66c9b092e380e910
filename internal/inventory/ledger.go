// Package inventory implements the append-only stock ledger (C4): per-store
// availability checks, signed movements, and the bulk (divisible-unit)
// sub-engine, grounded on services/order_service's transactional
// repository style (lock-then-read-then-write inside a caller-supplied tx).
package inventory

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
)

// signedDelta normalizes a movement's (type, quantity) into a signed delta
// applied to StoreInventory.availableQty, per spec.md §4.4.
func signedDelta(movementType models.MovementType, quantity int64) (int64, error) {
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	switch movementType {
	case models.MovementReceive:
		if abs == 0 {
			return 0, fmt.Errorf("receive quantity must be non-zero")
		}
		return abs, nil
	case models.MovementSell:
		if abs == 0 {
			return 0, fmt.Errorf("sell quantity must be non-zero")
		}
		return -abs, nil
	case models.MovementAdjustment:
		if quantity == 0 {
			return 0, fmt.Errorf("adjustment quantity must be non-zero")
		}
		return quantity, nil
	default:
		return 0, fmt.Errorf("unknown movement type %q", movementType)
	}
}

// ApplyMovement locks the (storeId, globalProductId) inventory row (creating
// it at zero if missing), applies the signed delta, and appends a ledger
// row. Returns insufficient_stock if the resulting balance would go
// negative. Must run inside a SERIALIZABLE transaction (see internal/db.Serializable).
func ApplyMovement(
	tx *gorm.DB,
	storeID, globalProductID string,
	movementType models.MovementType,
	quantity int64,
	unitCostMinor, unitSellMinor *int64,
	refType *models.ReferenceType,
	refID *string,
	skuName string,
) (int64, error) {
	delta, err := signedDelta(movementType, quantity)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindValidation, "invalid_quantity", err.Error(), err)
	}

	var inv models.StoreInventory
	err = db.LockForUpdate(tx).
		Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).
		First(&inv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		inv = models.StoreInventory{StoreID: storeID, GlobalProductID: globalProductID, AvailableQty: 0}
		if err := tx.Create(&inv).Error; err != nil {
			return 0, fmt.Errorf("create store inventory row: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("lock store inventory row: %w", err)
	}

	next := inv.AvailableQty + delta
	if next < 0 {
		return 0, apperror.Insufficient([]apperror.StockDetail{{
			SKUID:     globalProductID,
			Available: inv.AvailableQty,
			Required:  -delta,
			Name:      skuName,
		}})
	}

	if err := tx.Model(&models.StoreInventory{}).
		Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).
		Update("available_qty", next).Error; err != nil {
		return 0, fmt.Errorf("update store inventory: %w", err)
	}

	entry := models.InventoryLedger{
		StoreID:         storeID,
		GlobalProductID: globalProductID,
		MovementType:    movementType,
		Quantity:        delta,
		UnitCostMinor:   unitCostMinor,
		UnitSellMinor:   unitSellMinor,
		ReferenceType:   refType,
		ReferenceID:     refID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, fmt.Errorf("append ledger row: %w", err)
	}

	return next, nil
}

// FetchLedgerStock returns SUM(quantity) over the ledger for reconciliation,
// per spec.md §4.4 and the invariant in §8 that it must equal
// StoreInventory.availableQty.
func FetchLedgerStock(tx *gorm.DB, storeID, globalProductID string) (int64, error) {
	var sum int64
	err := tx.Model(&models.InventoryLedger{}).
		Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return sum, nil
}
