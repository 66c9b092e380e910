package inventory

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
)

// Multiplier converts a purchase unit to its BulkInventory base unit
// (grams for g/kg, millilitres for ml/l), per spec.md §4.4/§4.6.
var Multiplier = map[string]int64{
	"g":  1,
	"kg": 1000,
	"ml": 1,
	"l":  1000,
}

// BaseUnitForPurchaseUnit maps a purchase unit to the BulkInventory base
// unit it accrues into.
func BaseUnitForPurchaseUnit(unit string) (models.BaseUnit, bool) {
	switch unit {
	case "g", "kg":
		return models.BaseUnitGram, true
	case "ml", "l":
		return models.BaseUnitMilli, true
	default:
		return "", false
	}
}

// ToBaseQuantity converts a (quantity, unit) pair to base units, e.g.
// (10, "kg") -> 10000 grams. The second return is false when unit isn't
// one of g/kg/ml/l, meaning the item should be treated as unit-sized
// (not bulk), per spec.md §4.6.
func ToBaseQuantity(quantity int64, unit string) (int64, bool) {
	m, ok := Multiplier[unit]
	if !ok {
		return 0, false
	}
	return quantity * m, true
}

// ApplyBulkMovement locks (or creates) the BulkInventory row for
// (storeId, productId), fixing baseUnit on first creation and rejecting a
// movement whose baseUnit disagrees with the established one
// (bulk_unit_mismatch per spec.md §4.4). delta may be positive (RECEIVE) or
// negative (SELL, validated by the caller not to exceed availability).
func ApplyBulkMovement(tx *gorm.DB, storeID, productID string, baseUnit models.BaseUnit, delta int64) (int64, error) {
	var inv models.BulkInventory
	err := db.LockForUpdate(tx).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&inv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		inv = models.BulkInventory{StoreID: storeID, ProductID: productID, BaseUnit: baseUnit, QuantityBase: 0}
		if err := tx.Create(&inv).Error; err != nil {
			return 0, fmt.Errorf("create bulk inventory row: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("lock bulk inventory row: %w", err)
	default:
		if inv.BaseUnit != baseUnit {
			return 0, apperror.New(apperror.KindConflict, "bulk_unit_mismatch",
				fmt.Sprintf("product %s is tracked in %s, not %s", productID, inv.BaseUnit, baseUnit))
		}
	}

	next := inv.QuantityBase + delta
	if next < 0 {
		return 0, apperror.Insufficient([]apperror.StockDetail{{
			SKUID:     productID,
			Available: inv.QuantityBase,
			Required:  -delta,
		}})
	}

	if err := tx.Model(&models.BulkInventory{}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Update("quantity_base", next).Error; err != nil {
		return 0, fmt.Errorf("update bulk inventory: %w", err)
	}

	return next, nil
}

// BulkRequirement is one product's aggregate required base-unit quantity
// across all sale lines that share it, per spec.md §4.4's aggregation rule.
type BulkRequirement struct {
	ProductID   string
	RequiredQty int64
}

// EnsureBulkAvailability locks the BulkInventory rows for the given
// products in sorted order and returns insufficient_stock for any whose
// aggregate requirement exceeds the locked quantity.
func EnsureBulkAvailability(tx *gorm.DB, storeID string, requirements []BulkRequirement) error {
	merged := map[string]int64{}
	for _, r := range requirements {
		merged[r.ProductID] += r.RequiredQty
	}

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var shortfalls []apperror.StockDetail
	for _, productID := range ids {
		required := merged[productID]

		var inv models.BulkInventory
		err := db.LockForUpdate(tx).
			Where("store_id = ? AND product_id = ?", storeID, productID).
			First(&inv).Error
		available := int64(0)
		if err == nil {
			available = inv.QuantityBase
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if available < required {
			shortfalls = append(shortfalls, apperror.StockDetail{
				SKUID:     productID,
				Available: available,
				Required:  required,
			})
		}
	}

	if len(shortfalls) > 0 {
		return apperror.Insufficient(shortfalls)
	}
	return nil
}
