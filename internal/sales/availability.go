package sales

import (
	"gorm.io/gorm"

	"supermandi/pos-core/internal/inventory"
	"supermandi/pos-core/internal/models"
)

// checkAvailability validates stock for a resolved sale: unit-sized lines
// are checked against StoreInventory by globalProductId; bulk-tracked lines
// (variant has unitBase+sizeBase) are aggregated per product and checked
// against BulkInventory, per spec.md §4.4's bulk-aggregation rule.
func checkAvailability(tx *gorm.DB, storeID string, lines []*resolvedLine) error {
	var unitRequirements []inventory.RequiredItem
	var bulkRequirements []inventory.BulkRequirement

	for _, line := range lines {
		if base, isBulk := line.bulkRequiredBase(); isBulk {
			bulkRequirements = append(bulkRequirements, inventory.BulkRequirement{
				ProductID:   line.productID,
				RequiredQty: base,
			})
			continue
		}
		unitRequirements = append(unitRequirements, inventory.RequiredItem{
			GlobalProductID: line.globalProductID,
			RequiredQty:     line.input.Quantity,
			Name:            line.variantName,
		})
	}

	if len(unitRequirements) > 0 {
		if err := inventory.EnsureAvailability(tx, storeID, unitRequirements); err != nil {
			return err
		}
	}
	if len(bulkRequirements) > 0 {
		if err := inventory.EnsureBulkAvailability(tx, storeID, bulkRequirements); err != nil {
			return err
		}
	}
	return nil
}

// applyDeductions performs the authoritative stock decrement at confirm
// time: SELL ledger movements for unit-sized lines, bulk deductions for
// bulk-tracked ones.
func applyDeductions(tx *gorm.DB, storeID, saleID string, lines []*resolvedLine) error {
	refType := models.ReferenceSale
	refID := saleID

	for _, line := range lines {
		if base, isBulk := line.bulkRequiredBase(); isBulk {
			if _, err := inventory.ApplyBulkMovement(tx, storeID, line.productID, *line.unitBase, -base); err != nil {
				return err
			}
			continue
		}
		priceMinor := line.input.PriceMinor
		if _, err := inventory.ApplyMovement(
			tx, storeID, line.globalProductID,
			models.MovementSell, line.input.Quantity,
			nil, &priceMinor,
			&refType, &refID,
			line.variantName,
		); err != nil {
			return err
		}
	}
	return nil
}
