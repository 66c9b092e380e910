// Package catalog implements the scan-to-product resolver (C3): global
// product lookup/creation, lazy per-store materialization, SM barcode
// issuance, and standard-pack generation, grounded on
// services/order_service's create-or-recover repository pattern for
// unique-constraint races.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/models"
)

const textCodeTypeSuffix = "_TEXT"

// ResolveGlobalProduct looks up the GlobalProduct bound to
// (codeType, normalizedValue). If codeType is a migration target (not
// itself a _TEXT type) and no exact match exists, it also attempts the
// _TEXT variant of codeType and, on a hit, upgrades that identifier in
// place to the stronger type — the "migration of a legacy text entry"
// spec.md §4.3 names. If nothing matches at all, it allocates a new
// GlobalProduct + GlobalProductIdentifier, recovering from a concurrent
// insert via ON CONFLICT DO NOTHING + re-read (the sole cross-request race
// protection for catalog creation).
func ResolveGlobalProduct(tx *gorm.DB, codeType, rawValue, normalizedValue, globalNameHint string) (*models.GlobalProduct, bool, error) {
	if identifier, err := findIdentifier(tx, codeType, normalizedValue); err != nil {
		return nil, false, err
	} else if identifier != nil {
		product, err := loadGlobalProduct(tx, identifier.GlobalProductID)
		return product, false, err
	}

	if !strings.HasSuffix(codeType, textCodeTypeSuffix) {
		textType := codeType + textCodeTypeSuffix
		if identifier, err := findIdentifier(tx, textType, normalizedValue); err != nil {
			return nil, false, err
		} else if identifier != nil {
			if err := tx.Model(&models.GlobalProductIdentifier{}).
				Where("id = ?", identifier.ID).
				Updates(map[string]interface{}{"code_type": codeType, "raw_value": rawValue}).Error; err != nil {
				return nil, false, fmt.Errorf("migrate text identifier: %w", err)
			}
			product, err := loadGlobalProduct(tx, identifier.GlobalProductID)
			return product, false, err
		}
	}

	return createGlobalProduct(tx, codeType, rawValue, normalizedValue, globalNameHint)
}

func findIdentifier(tx *gorm.DB, codeType, normalizedValue string) (*models.GlobalProductIdentifier, error) {
	var identifier models.GlobalProductIdentifier
	err := tx.Where("code_type = ? AND normalized_value = ?", codeType, normalizedValue).First(&identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup identifier: %w", err)
	}
	return &identifier, nil
}

func loadGlobalProduct(tx *gorm.DB, id string) (*models.GlobalProduct, error) {
	var product models.GlobalProduct
	if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, fmt.Errorf("load global product: %w", err)
	}
	return &product, nil
}

func createGlobalProduct(tx *gorm.DB, codeType, rawValue, normalizedValue, globalNameHint string) (*models.GlobalProduct, bool, error) {
	name := globalNameHint
	if name == "" {
		name = normalizedValue
	}

	product := models.GlobalProduct{GlobalName: name}
	if err := tx.Create(&product).Error; err != nil {
		return nil, false, fmt.Errorf("create global product: %w", err)
	}

	identifier := models.GlobalProductIdentifier{
		GlobalProductID: product.ID,
		CodeType:        codeType,
		RawValue:        rawValue,
		NormalizedValue: normalizedValue,
	}
	result := tx.Clauses(onConflictDoNothing()).Create(&identifier)
	if result.Error != nil {
		return nil, false, fmt.Errorf("create identifier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost the race: another request created this identifier first.
		// Recover by re-reading the winning row, per spec.md §4.3.
		existing, err := findIdentifier(tx, codeType, normalizedValue)
		if err != nil {
			return nil, false, err
		}
		if existing == nil {
			return nil, false, fmt.Errorf("identifier vanished after conflict on (%s, %s)", codeType, normalizedValue)
		}
		winner, err := loadGlobalProduct(tx, existing.GlobalProductID)
		return winner, false, err
	}

	return &product, true, nil
}
