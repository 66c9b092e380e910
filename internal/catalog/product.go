package catalog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supermandi/pos-core/internal/models"
)

// EnsureProduct finds or creates the legacy Product row backing a
// GlobalProduct, the bridge Variant.ProductID ultimately resolves back to
// GlobalProductID through.
func EnsureProduct(tx *gorm.DB, globalProductID, name string) (*models.Product, error) {
	var existing models.Product
	err := tx.Where("global_product_id = ?", globalProductID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup product: %w", err)
	}

	gpID := globalProductID
	product := models.Product{Name: name, GlobalProductID: &gpID}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&product)
	if result.Error != nil {
		return nil, fmt.Errorf("create product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if err := tx.Where("global_product_id = ?", globalProductID).First(&product).Error; err != nil {
			return nil, fmt.Errorf("reload product after conflict: %w", err)
		}
	}
	return &product, nil
}

// GlobalProductIDForVariant walks Variant -> Product -> GlobalProductID.
func GlobalProductIDForVariant(tx *gorm.DB, variantID string) (string, error) {
	var variant models.Variant
	if err := tx.Where("id = ?", variantID).First(&variant).Error; err != nil {
		return "", fmt.Errorf("load variant: %w", err)
	}
	var product models.Product
	if err := tx.Where("id = ?", variant.ProductID).First(&product).Error; err != nil {
		return "", fmt.Errorf("load product: %w", err)
	}
	if product.GlobalProductID == nil {
		return "", fmt.Errorf("product %s has no linked global product", product.ID)
	}
	return *product.GlobalProductID, nil
}
