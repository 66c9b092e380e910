package purchase

import "supermandi/pos-core/internal/apperror"

const (
	minQuantity = 1
	maxQuantity = 1_000_000
	maxUnitCost = 100_000_000
)

// ValidateItems enforces the bounds spec.md §4.6 implies for purchase
// quantities and unit costs, mirroring the sale-item bounds in shape.
func ValidateItems(items []ItemInput) error {
	if len(items) == 0 {
		return apperror.New(apperror.KindValidation, "no_items", "purchase must contain at least one item")
	}
	for _, item := range items {
		if item.Quantity < minQuantity || item.Quantity > maxQuantity {
			return apperror.New(apperror.KindValidation, "invalid_quantity", "quantity out of bounds")
		}
		if item.UnitCostMinor < 1 || item.UnitCostMinor > maxUnitCost {
			return apperror.New(apperror.KindValidation, "invalid_unit_cost", "unitCostMinor out of bounds")
		}
		if item.SellingPriceMinor != nil && *item.SellingPriceMinor < 0 {
			return apperror.New(apperror.KindValidation, "invalid_selling_price", "sellingPriceMinor must be non-negative")
		}
	}
	return nil
}
