package inventory

import (
	"sort"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
)

// RequiredItem is one line of a stock-availability check.
type RequiredItem struct {
	GlobalProductID string
	RequiredQty     int64
	Name            string
}

// EnsureAvailability locks every affected StoreInventory row in sorted
// globalProductId order (spec.md §4.4's deadlock-avoidance rule) and returns
// an insufficient_stock error carrying one StockDetail per short SKU. A nil
// error means every item has enough stock under lock.
func EnsureAvailability(tx *gorm.DB, storeID string, items []RequiredItem) error {
	merged := mergeByProduct(items)

	ids := make([]string, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var shortfalls []apperror.StockDetail
	for _, productID := range ids {
		required := merged[productID]

		var inv models.StoreInventory
		err := db.LockForUpdate(tx).
			Where("store_id = ? AND global_product_id = ?", storeID, productID).
			First(&inv).Error
		available := int64(0)
		if err == nil {
			available = inv.AvailableQty
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if available < required.qty {
			shortfalls = append(shortfalls, apperror.StockDetail{
				SKUID:     productID,
				Available: available,
				Required:  required.qty,
				Name:      required.name,
			})
		}
	}

	if len(shortfalls) > 0 {
		return apperror.Insufficient(shortfalls)
	}
	return nil
}

type mergedRequirement struct {
	qty  int64
	name string
}

func mergeByProduct(items []RequiredItem) map[string]mergedRequirement {
	merged := make(map[string]mergedRequirement, len(items))
	for _, item := range items {
		entry := merged[item.GlobalProductID]
		entry.qty += item.RequiredQty
		if entry.name == "" {
			entry.name = item.Name
		}
		merged[item.GlobalProductID] = entry
	}
	return merged
}
