package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supermandi/pos-core/internal/models"
)

// EnsureStoreProduct lazily materializes the per-store view of a global
// product. The bool return is is_first_time_in_store, detected via the
// insert's RowsAffected, per spec.md §4.3.
func EnsureStoreProduct(tx *gorm.DB, storeID, globalProductID string) (*models.StoreProduct, bool, error) {
	var existing models.StoreProduct
	err := tx.Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("lookup store product: %w", err)
	}

	sp := models.StoreProduct{StoreID: storeID, GlobalProductID: globalProductID, Currency: "INR"}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sp)
	if result.Error != nil {
		return nil, false, fmt.Errorf("create store product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost a concurrent race to materialize the same store product.
		if err := tx.Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).First(&sp).Error; err != nil {
			return nil, false, fmt.Errorf("reload store product after conflict: %w", err)
		}
		return &sp, false, nil
	}

	return &sp, true, nil
}

// DisplayName resolves the response-facing name: storeDisplayName if set,
// else the global product's name, per spec.md §4.3's response payload.
func DisplayName(sp *models.StoreProduct, globalName string) string {
	if sp.StoreDisplayName != "" {
		return sp.StoreDisplayName
	}
	return globalName
}
