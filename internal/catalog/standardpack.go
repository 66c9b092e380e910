package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/models"
)

// StandardPackSizes are the sizeBase values (grams/ml) every divisible
// product gets a standard variant for, per spec.md §4.3.
var StandardPackSizes = []int64{100, 250, 500, 1000}

// EnsureStandardPacks idempotently ensures a Variant + SM barcode +
// RetailerVariant exist for every size in StandardPackSizes under the given
// product and base unit, linked to storeID.
func EnsureStandardPacks(tx *gorm.DB, storeID, productID string, baseUnit models.BaseUnit) error {
	for _, size := range StandardPackSizes {
		size := size
		variant, err := ensureStandardVariant(tx, productID, baseUnit, size)
		if err != nil {
			return fmt.Errorf("ensure %d%s variant: %w", size, baseUnit, err)
		}
		if err := ensureVariantBarcode(tx, variant.ID); err != nil {
			return fmt.Errorf("ensure barcode for variant %s: %w", variant.ID, err)
		}
		if err := ensureRetailerVariant(tx, storeID, variant.ID); err != nil {
			return fmt.Errorf("ensure retailer variant %s/%s: %w", storeID, variant.ID, err)
		}
	}
	return nil
}

func ensureStandardVariant(tx *gorm.DB, productID string, baseUnit models.BaseUnit, size int64) (*models.Variant, error) {
	var variant models.Variant
	err := tx.Where("product_id = ? AND unit_base = ? AND size_base = ?", productID, baseUnit, size).
		First(&variant).Error
	if err == nil {
		return &variant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	unit := baseUnit
	sizeCopy := size
	variant = models.Variant{
		ProductID: productID,
		Name:      fmt.Sprintf("%d%s", size, baseUnit),
		Currency:  "INR",
		UnitBase:  &unit,
		SizeBase:  &sizeCopy,
	}
	if err := tx.Create(&variant).Error; err != nil {
		// Lost a concurrent race to create this exact pack size.
		var existing models.Variant
		reloadErr := tx.Where("product_id = ? AND unit_base = ? AND size_base = ?", productID, baseUnit, size).
			First(&existing).Error
		if reloadErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &variant, nil
}

func ensureVariantBarcode(tx *gorm.DB, variantID string) error {
	var existing models.Barcode
	err := tx.Where("variant_id = ? AND barcode_type = ?", variantID, models.BarcodeTypeSupermandi).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	_, err = AssignSMBarcode(tx, variantID)
	return err
}

func ensureRetailerVariant(tx *gorm.DB, storeID, variantID string) error {
	var existing models.RetailerVariant
	err := tx.Where("store_id = ? AND variant_id = ?", storeID, variantID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	rv := models.RetailerVariant{StoreID: storeID, VariantID: variantID}
	return tx.Create(&rv).Error
}
