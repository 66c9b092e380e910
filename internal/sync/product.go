package sync

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/catalog"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/purchase"
	"supermandi/pos-core/internal/scan"
)

var smBarcodePattern = regexp.MustCompile(`^SM[0-9A-F]{12}$`)

// applyProductUpsert resolves (or mints) the global product/variant a
// digitised barcode identifies and materializes it into this store, the
// offline analogue of a DIGITISE-mode scan resolution (spec.md §4.1/§4.3).
func applyProductUpsert(tx *gorm.DB, storeID string, event Event) error {
	variant, err := resolveVariantForBarcode(tx, storeID, event.Barcode, event.ProductName)
	if err != nil {
		return err
	}
	globalProductID, err := catalog.GlobalProductIDForVariant(tx, variant.ID)
	if err != nil {
		return err
	}
	if _, _, err := catalog.EnsureStoreProduct(tx, storeID, globalProductID); err != nil {
		return err
	}
	if event.SellingPriceMinor != nil {
		return purchase.UpsertSellingPrice(tx, storeID, variant.ID, *event.SellingPriceMinor)
	}
	return nil
}

// applyProductPriceSet resolves the same way as PRODUCT_UPSERT but requires
// a price to actually set, per spec.md §4.7.
func applyProductPriceSet(tx *gorm.DB, storeID string, event Event) error {
	if event.SellingPriceMinor == nil {
		return apperror.New(apperror.KindValidation, "invalid_item", "sellingPriceMinor is required")
	}
	variant, err := resolveVariantForBarcode(tx, storeID, event.Barcode, event.ProductName)
	if err != nil {
		return err
	}
	return purchase.UpsertSellingPrice(tx, storeID, variant.ID, *event.SellingPriceMinor)
}

// resolveVariantForBarcode normalizes the scanned barcode the same way an
// online scan does, resolves it to a global product (minting one if
// unseen), and ensures a sellable variant exists under it — reusing C1's
// normalizer and C3's resolver rather than re-deriving either.
func resolveVariantForBarcode(tx *gorm.DB, storeID, barcode, productName string) (*models.Variant, error) {
	if barcode == "" {
		return nil, apperror.New(apperror.KindValidation, "invalid_scan", "barcode is required")
	}

	normalized := scan.Normalize("", barcode)
	if normalized == nil {
		return nil, apperror.New(apperror.KindValidation, "invalid_scan", "barcode could not be normalized")
	}

	globalProduct, _, err := catalog.ResolveGlobalProduct(tx, normalized.CodeType, barcode, normalized.NormalizedValue, productName)
	if err != nil {
		return nil, err
	}

	name := productName
	if name == "" {
		name = globalProduct.GlobalName
	}
	product, err := catalog.EnsureProduct(tx, globalProduct.ID, name)
	if err != nil {
		return nil, err
	}

	var variant models.Variant
	err = tx.Where("product_id = ?", product.ID).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		variant = models.Variant{ProductID: product.ID, Name: name, Currency: "INR"}
		if err := tx.Create(&variant).Error; err != nil {
			return nil, fmt.Errorf("create variant: %w", err)
		}
		if err := ensureBarcodeLink(tx, variant.ID, barcode); err != nil {
			return nil, err
		}
		return &variant, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup variant: %w", err)
	}
	return &variant, nil
}

// ensureBarcodeLink attaches barcode to variantID if no Barcode row for it
// exists yet, using the same SM-code-aware uppercasing purchase resolution
// applies so an offline-digitised code looks up identically online.
func ensureBarcodeLink(tx *gorm.DB, variantID, barcode string) error {
	lookup := purchase.NormalizeBarcode(barcode)

	var existing models.Barcode
	err := tx.Where("barcode = ?", lookup).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup barcode: %w", err)
	}

	barcodeType := models.BarcodeTypeManufacturer
	if smBarcodePattern.MatchString(lookup) {
		barcodeType = models.BarcodeTypeSupermandi
	}
	return tx.Create(&models.Barcode{Barcode: lookup, VariantID: variantID, BarcodeType: barcodeType}).Error
}
