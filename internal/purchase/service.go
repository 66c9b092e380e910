package purchase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supermandi/pos-core/internal/catalog"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/inventory"
	"supermandi/pos-core/internal/models"
)

// Result is the response payload for POST /purchases.
type Result struct {
	Purchase *models.Purchase
	Items    []models.PurchaseItem
}

// CreatePurchase resolves every line item, records a RECEIVE movement for
// each, tops up bulk inventory and standard packs where applicable, and
// refreshes store pricing, all inside one transaction, per spec.md §4.6.
// When skipIfExists is true and purchaseID already exists for this store,
// the pre-existing purchase is returned untouched instead of being
// double-recorded — the idempotency path the sync engine relies on for
// PURCHASE_SUBMIT/PURCHASE_CREATED.
func CreatePurchase(
	ctx context.Context,
	gdb *gorm.DB,
	storeID string,
	items []ItemInput,
	supplierName, currency, purchaseID string,
	skipIfExists bool,
) (*Result, error) {
	var result *Result
	err := db.Serializable(ctx, gdb, func(tx *gorm.DB) error {
		r, err := CreatePurchaseTx(tx, storeID, items, supplierName, currency, purchaseID, skipIfExists)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreatePurchaseTx is CreatePurchase's transaction body, exposed so the
// offline sync engine's PURCHASE_SUBMIT/PURCHASE_CREATED dispatch can run it
// inside a transaction it already holds SERIALIZABLE on.
func CreatePurchaseTx(
	tx *gorm.DB,
	storeID string,
	items []ItemInput,
	supplierName, currency, purchaseID string,
	skipIfExists bool,
) (*Result, error) {
	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	if purchaseID != "" && skipIfExists {
		existing, found, err := loadExistingPurchase(tx, storeID, purchaseID)
		if err != nil {
			return nil, err
		}
		if found {
			return existing, nil
		}
	}

	purchase := models.Purchase{StoreID: storeID, SupplierName: supplierName, Currency: currencyOrDefault(currency)}
	if purchaseID != "" {
		purchase.ID = purchaseID
	}
	if err := tx.Create(&purchase).Error; err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}

	resolved := make([]*resolvedItem, 0, len(items))
	for _, item := range items {
		r, err := resolveItem(tx, item)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, r)
	}

	var total int64
	persistedItems := make([]models.PurchaseItem, 0, len(resolved))
	for _, r := range resolved {
		lineTotal := r.input.Quantity * r.input.UnitCostMinor
		total += lineTotal

		purchaseItem := models.PurchaseItem{
			PurchaseID:     purchase.ID,
			ProductID:      r.productID,
			VariantID:      r.variantID,
			Quantity:       r.input.Quantity,
			Unit:           r.input.Unit,
			QuantityBase:   r.quantityBase,
			UnitCostMinor:  r.input.UnitCostMinor,
			LineTotalMinor: lineTotal,
		}

		if err := receiveLine(tx, storeID, purchase.ID, r, &purchaseItem); err != nil {
			return nil, err
		}
		persistedItems = append(persistedItems, purchaseItem)
	}

	purchase.TotalMinor = total
	if err := tx.Model(&models.Purchase{}).Where("id = ?", purchase.ID).
		Update("total_minor", total).Error; err != nil {
		return nil, fmt.Errorf("update purchase total: %w", err)
	}

	return &Result{Purchase: &purchase, Items: persistedItems}, nil
}

// receiveLine inserts the purchase item, records the ledger RECEIVE
// movement, tops up bulk inventory + standard packs when the item is bulk,
// and refreshes store/variant pricing.
func receiveLine(tx *gorm.DB, storeID, purchaseID string, r *resolvedItem, item *models.PurchaseItem) error {
	unitCost := r.input.UnitCostMinor
	refType := models.ReferencePurchase

	if _, err := inventory.ApplyMovement(
		tx, storeID, r.globalProductID, models.MovementReceive, r.input.Quantity,
		&unitCost, nil, &refType, &purchaseID, r.name,
	); err != nil {
		return err
	}

	if err := tx.Create(item).Error; err != nil {
		return fmt.Errorf("create purchase item: %w", err)
	}

	if r.isBulk() {
		if err := receiveBulk(tx, storeID, r); err != nil {
			return err
		}
	}

	if _, err := catalog.EnsureStoreProduct(tx, storeID, r.globalProductID); err != nil {
		return err
	}
	if err := upsertPurchasePrice(tx, storeID, r.globalProductID, unitCost); err != nil {
		return err
	}
	if r.input.SellingPriceMinor != nil && r.variantID != nil {
		if err := upsertSellingPrice(tx, storeID, *r.variantID, *r.input.SellingPriceMinor); err != nil {
			return err
		}
	}

	return nil
}

func receiveBulk(tx *gorm.DB, storeID string, r *resolvedItem) error {
	if _, err := inventory.ApplyBulkMovement(tx, storeID, r.productID, *r.baseUnit, *r.quantityBase); err != nil {
		return err
	}
	return catalog.EnsureStandardPacks(tx, storeID, r.productID, *r.baseUnit)
}

func upsertPurchasePrice(tx *gorm.DB, storeID, globalProductID string, unitCostMinor int64) error {
	return tx.Model(&models.StoreProduct{}).
		Where("store_id = ? AND global_product_id = ?", storeID, globalProductID).
		Update("purchase_price_minor", unitCostMinor).Error
}

// UpsertSellingPrice sets a variant's store-specific selling price, shared
// with the offline sync engine's PRODUCT_UPSERT/PRODUCT_PRICE_SET dispatch
// so both paths price a variant identically.
func UpsertSellingPrice(tx *gorm.DB, storeID, variantID string, sellingPriceMinor int64) error {
	return upsertSellingPrice(tx, storeID, variantID, sellingPriceMinor)
}

func upsertSellingPrice(tx *gorm.DB, storeID, variantID string, sellingPriceMinor int64) error {
	now := time.Now().UTC()
	var existing models.RetailerVariant
	err := tx.Where("store_id = ? AND variant_id = ?", storeID, variantID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rv := models.RetailerVariant{
			StoreID: storeID, VariantID: variantID,
			SellingPriceMinor: &sellingPriceMinor, PriceUpdatedAt: &now,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "variant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"selling_price_minor", "price_updated_at"}),
		}).Create(&rv)
		return result.Error
	}
	if err != nil {
		return fmt.Errorf("lookup retailer variant: %w", err)
	}
	return tx.Model(&models.RetailerVariant{}).
		Where("store_id = ? AND variant_id = ?", storeID, variantID).
		Updates(map[string]interface{}{"selling_price_minor": sellingPriceMinor, "price_updated_at": now}).Error
}

func loadExistingPurchase(tx *gorm.DB, storeID, purchaseID string) (*Result, bool, error) {
	var purchase models.Purchase
	err := tx.Preload("Items").Where("id = ? AND store_id = ?", purchaseID, storeID).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup existing purchase: %w", err)
	}
	return &Result{Purchase: &purchase, Items: purchase.Items}, true, nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "INR"
	}
	return currency
}
