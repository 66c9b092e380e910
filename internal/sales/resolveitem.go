package sales

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/catalog"
	"supermandi/pos-core/internal/models"
)

// resolvedLine is a sale line after its variant/global-product identity has
// been settled, per spec.md §4.5 step 1.
type resolvedLine struct {
	input           ItemInput
	variantID       string
	globalProductID string
	variantName     string
	productID       string // legacy Product.ID the variant belongs to (bulk inventory key)
	unitBase        *models.BaseUnit
	sizeBase        *int64
}

// bulkRequiredBase returns the base-unit quantity this line contributes to
// the bulk sub-engine, and whether the variant is bulk-tracked at all.
func (l *resolvedLine) bulkRequiredBase() (int64, bool) {
	if l.unitBase == nil || l.sizeBase == nil {
		return 0, false
	}
	return l.input.Quantity * (*l.sizeBase), true
}

// resolveLine implements spec.md §4.5 step 1: an explicit variantId is
// checked for existence; a globalProductId looks up (or creates) a
// store-linked variant; a bare productId is treated as a globalProductId
// alias on miss.
func resolveLine(tx *gorm.DB, storeID string, item ItemInput) (*resolvedLine, error) {
	switch {
	case item.VariantID != "":
		var variant models.Variant
		if err := tx.Where("id = ?", item.VariantID).First(&variant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("invalid_item: variant %s not found", item.VariantID)
			}
			return nil, err
		}
		gpID, err := catalog.GlobalProductIDForVariant(tx, variant.ID)
		if err != nil {
			return nil, err
		}
		return &resolvedLine{
			input: item, variantID: variant.ID, globalProductID: gpID, variantName: variant.Name,
			productID: variant.ProductID, unitBase: variant.UnitBase, sizeBase: variant.SizeBase,
		}, nil

	case item.GlobalProductID != "":
		return resolveOrCreateVariantForGlobalProduct(tx, storeID, item, item.GlobalProductID)

	case item.ProductID != "":
		// Treated as a globalProductId alias: if it doesn't resolve as a
		// Product, fall through to global-product resolution keyed on the
		// same id.
		var product models.Product
		err := tx.Where("id = ?", item.ProductID).First(&product).Error
		if err == nil {
			if product.GlobalProductID == nil {
				return nil, fmt.Errorf("invalid_item: product %s has no linked global product", product.ID)
			}
			return resolveOrCreateVariantForGlobalProduct(tx, storeID, item, *product.GlobalProductID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return resolveOrCreateVariantForGlobalProduct(tx, storeID, item, item.ProductID)

	default:
		return nil, fmt.Errorf("invalid_item: no variant/product/globalProduct reference")
	}
}

func resolveOrCreateVariantForGlobalProduct(tx *gorm.DB, storeID string, item ItemInput, globalProductID string) (*resolvedLine, error) {
	var gp models.GlobalProduct
	err := tx.Where("id = ?", globalProductID).First(&gp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		gp = models.GlobalProduct{ID: globalProductID, GlobalName: nameOrFallback(item.Name, globalProductID)}
		if err := tx.Create(&gp).Error; err != nil {
			return nil, fmt.Errorf("create global product for item: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	product, err := catalog.EnsureProduct(tx, gp.ID, gp.GlobalName)
	if err != nil {
		return nil, err
	}

	var variant models.Variant
	err = tx.Where("product_id = ?", product.ID).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		variant = models.Variant{ProductID: product.ID, Name: nameOrFallback(item.Name, gp.GlobalName), Currency: "INR"}
		if err := tx.Create(&variant).Error; err != nil {
			return nil, fmt.Errorf("create variant for global product %s: %w", gp.ID, err)
		}
		if item.Barcode != "" {
			_ = tx.Create(&models.Barcode{Barcode: item.Barcode, VariantID: variant.ID, BarcodeType: models.BarcodeTypeManufacturer}).Error
		}
	} else if err != nil {
		return nil, err
	}

	if _, _, err := catalog.EnsureStoreProduct(tx, storeID, gp.ID); err != nil {
		return nil, err
	}

	return &resolvedLine{
		input: item, variantID: variant.ID, globalProductID: gp.ID, variantName: variant.Name,
		productID: product.ID, unitBase: variant.UnitBase, sizeBase: variant.SizeBase,
	}, nil
}

func nameOrFallback(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
