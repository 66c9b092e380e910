package purchase

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/catalog"
	"supermandi/pos-core/internal/inventory"
	"supermandi/pos-core/internal/models"
)

var smBarcodePattern = regexp.MustCompile(`^SM[0-9A-F]{12}$`)

// manualCodeType tags GlobalProductIdentifiers minted for purchase items that
// carry no scannable code at all.
const manualCodeType = "MANUAL"

// resolvedItem is one purchase line resolved down to the product/variant it
// receives stock against.
type resolvedItem struct {
	input           ItemInput
	productID       string
	variantID       *string
	globalProductID string
	name            string
	baseUnit        *models.BaseUnit
	quantityBase    *int64
}

// isBulk reports whether this item accrues into BulkInventory, per
// spec.md §4.6's quantityBase >= 1000 threshold.
func (r *resolvedItem) isBulk() bool {
	return r.quantityBase != nil && *r.quantityBase >= 1000
}

// normalizeBarcodeLookup upper-cases the candidate when it matches the
// internal SM format (stored upper-case per spec.md §3), else leaves it
// verbatim for external/manufacturer codes.
// NormalizeBarcode exposes the SM-barcode-aware uppercasing rule for
// other packages (the offline sync engine's PRODUCT_UPSERT dispatch) that
// need to look up or store a barcode the same way purchase resolution does.
func NormalizeBarcode(raw string) string {
	return normalizeBarcodeLookup(raw)
}

func normalizeBarcodeLookup(raw string) string {
	upper := strings.ToUpper(raw)
	if smBarcodePattern.MatchString(upper) {
		return upper
	}
	return raw
}

// resolveItem implements spec.md §4.6's three-way resolution: (a) explicit
// productId, (b) barcode lookup, (c) mint a new product + variant.
func resolveItem(tx *gorm.DB, item ItemInput) (*resolvedItem, error) {
	switch {
	case item.ProductID != "":
		return resolveByProductID(tx, item)
	case item.Barcode != "":
		resolved, found, err := resolveByBarcode(tx, item)
		if err != nil {
			return nil, err
		}
		if found {
			return resolved, nil
		}
		return createNewProduct(tx, item)
	default:
		return createNewProduct(tx, item)
	}
}

func resolveByProductID(tx *gorm.DB, item ItemInput) (*resolvedItem, error) {
	var product models.Product
	if err := tx.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("purchase item references unknown product %s", item.ProductID)
		}
		return nil, fmt.Errorf("lookup product %s: %w", item.ProductID, err)
	}
	if product.GlobalProductID == nil {
		return nil, fmt.Errorf("product %s has no linked global product", product.ID)
	}

	resolved := &resolvedItem{
		input:           item,
		productID:       product.ID,
		globalProductID: *product.GlobalProductID,
		name:            nameOrFallback(item.ProductName, product.Name),
	}

	if item.VariantID != "" {
		var variant models.Variant
		if err := tx.Where("id = ? AND product_id = ?", item.VariantID, product.ID).First(&variant).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("variant %s does not belong to product %s", item.VariantID, product.ID)
			}
			return nil, fmt.Errorf("lookup variant %s: %w", item.VariantID, err)
		}
		variantID := variant.ID
		resolved.variantID = &variantID
	}

	applyBaseQuantity(resolved)
	return resolved, nil
}

func resolveByBarcode(tx *gorm.DB, item ItemInput) (*resolvedItem, bool, error) {
	lookup := normalizeBarcodeLookup(item.Barcode)

	var barcode models.Barcode
	err := tx.Where("barcode = ?", lookup).First(&barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup barcode %s: %w", lookup, err)
	}

	var variant models.Variant
	if err := tx.Where("id = ?", barcode.VariantID).First(&variant).Error; err != nil {
		return nil, false, fmt.Errorf("load variant for barcode %s: %w", lookup, err)
	}
	globalProductID, err := catalog.GlobalProductIDForVariant(tx, variant.ID)
	if err != nil {
		return nil, false, err
	}

	variantID := variant.ID
	resolved := &resolvedItem{
		input:           item,
		productID:       variant.ProductID,
		variantID:       &variantID,
		globalProductID: globalProductID,
		name:            nameOrFallback(item.ProductName, variant.Name),
	}
	applyBaseQuantity(resolved)
	return resolved, true, nil
}

// createNewProduct mints a fresh GlobalProduct/Product/Variant for a
// purchase item with no resolvable identity, attaching a freshly generated
// SM barcode, per spec.md §4.6 case (c).
func createNewProduct(tx *gorm.DB, item ItemInput) (*resolvedItem, error) {
	codeType := manualCodeType
	rawValue := item.Barcode
	normalizedValue := item.Barcode
	if normalizedValue == "" {
		// No barcode at all: mint a unique random MANUAL identifier so this
		// item never accidentally reconciles against a future scan.
		code, err := randomManualIdentifier(tx)
		if err != nil {
			return nil, err
		}
		rawValue, normalizedValue = code, code
	} else {
		normalizedValue = normalizeBarcodeLookup(item.Barcode)
	}

	name := item.ProductName
	if name == "" {
		name = normalizedValue
	}

	globalProduct, _, err := catalog.ResolveGlobalProduct(tx, codeType, rawValue, normalizedValue, name)
	if err != nil {
		return nil, err
	}

	product, err := catalog.EnsureProduct(tx, globalProduct.ID, name)
	if err != nil {
		return nil, err
	}

	variant := models.Variant{ProductID: product.ID, Name: name, Currency: "INR"}
	if err := tx.Create(&variant).Error; err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}
	if _, err := catalog.AssignSMBarcode(tx, variant.ID); err != nil {
		return nil, err
	}

	variantID := variant.ID
	resolved := &resolvedItem{
		input:           item,
		productID:       product.ID,
		variantID:       &variantID,
		globalProductID: globalProduct.ID,
		name:            name,
	}
	applyBaseQuantity(resolved)
	return resolved, nil
}

// randomManualIdentifier draws a "MANUAL-" token followed by 16 lower-case
// hex characters, to serve as the GlobalProductIdentifier.normalizedValue
// for a purchase item with no code at all. Retried on collision the same way
// catalog's SM barcode draw is.
func randomManualIdentifier(tx *gorm.DB) (string, error) {
	const maxAttempts = 5
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw := make([]byte, 8)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		candidate := manualCodeType + "-" + hex.EncodeToString(raw)

		var existing models.GlobalProductIdentifier
		err := tx.Where("code_type = ? AND normalized_value = ?", manualCodeType, candidate).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check manual identifier collision: %w", err)
		}
	}
	return "", fmt.Errorf("exhausted %d attempts generating a unique manual identifier", maxAttempts)
}

// applyBaseQuantity converts the item's (quantity, unit) into base-unit terms
// using the same g/ml/kg/l table the inventory ledger uses, leaving both
// fields nil when the unit isn't one of those four (unit-sized item).
func applyBaseQuantity(resolved *resolvedItem) {
	base, ok := inventory.ToBaseQuantity(resolved.input.Quantity, resolved.input.Unit)
	if !ok {
		return
	}
	unit, _ := inventory.BaseUnitForPurchaseUnit(resolved.input.Unit)
	resolved.baseUnit = &unit
	resolved.quantityBase = &base
}

func nameOrFallback(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	return fallback
}
