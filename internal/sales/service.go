package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/inventory"
	"supermandi/pos-core/internal/models"
)

const maxBillRefRetries = 3

// CreateSaleResult is the response payload for POST /sales.
type CreateSaleResult struct {
	Sale  *models.Sale
	Items []models.SaleItem
}

// CreateSale validates and persists a PENDING sale. Stock is validated but
// not yet deducted — the authoritative decrement happens at Confirm, per
// spec.md §4.5's canonical-design resolution (see DESIGN.md's Open
// Questions section). If saleID is supplied and already exists for this
// store, its stored totals are returned verbatim (idempotency).
func CreateSale(ctx context.Context, gdb *gorm.DB, storeID, deviceID string, items []ItemInput, discountMinor int64, currency, saleID string) (*CreateSaleResult, error) {
	if saleID != "" {
		if existing, err := loadExistingSale(gdb, storeID, saleID); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	if err := ValidateItems(items); err != nil {
		return nil, err
	}

	if currency == "" {
		currency = "INR"
	}

	var result *CreateSaleResult
	err := db.Serializable(ctx, gdb, func(tx *gorm.DB) error {
		resolved := make([]*resolvedLine, 0, len(items))
		for _, item := range items {
			line, err := resolveLine(tx, storeID, item)
			if err != nil {
				return apperror.Wrap(apperror.KindValidation, "invalid_item", err.Error(), err)
			}
			resolved = append(resolved, line)
		}

		if err := checkAvailability(tx, storeID, resolved); err != nil {
			return err
		}

		totals := ComputeTotals(items, discountMinor)

		sale := models.Sale{
			ID:            saleID,
			StoreID:       storeID,
			DeviceID:      deviceID,
			SubtotalMinor: totals.SubtotalMinor,
			DiscountMinor: totals.DiscountMinor,
			TotalMinor:    totals.TotalMinor,
			Currency:      currency,
			Status:        models.SaleStatusPending,
		}

		billRef, err := allocateBillRef(tx)
		if err != nil {
			return err
		}
		sale.BillRef = billRef

		if err := tx.Create(&sale).Error; err != nil {
			return fmt.Errorf("create sale: %w", err)
		}

		saleItems := make([]models.SaleItem, 0, len(resolved))
		for _, line := range resolved {
			saleItems = append(saleItems, models.SaleItem{
				SaleID:         sale.ID,
				VariantID:      line.variantID,
				Quantity:       line.input.Quantity,
				PriceMinor:     line.input.PriceMinor,
				LineTotalMinor: line.input.Quantity * line.input.PriceMinor,
				ItemName:       nameOrFallback(line.input.Name, line.variantName),
				Barcode:        line.input.Barcode,
			})
		}
		if err := tx.Create(&saleItems).Error; err != nil {
			return fmt.Errorf("create sale items: %w", err)
		}

		sale.Items = saleItems
		result = &CreateSaleResult{Sale: &sale, Items: saleItems}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadExistingSale(gdb *gorm.DB, storeID, saleID string) (*CreateSaleResult, error) {
	var sale models.Sale
	err := gdb.Preload("Items").Where("id = ? AND store_id = ?", saleID, storeID).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup existing sale: %w", err)
	}
	return &CreateSaleResult{Sale: &sale, Items: sale.Items}, nil
}

// allocateBillRef draws a candidate bill reference and retries on a
// collision against an existing sale up to maxBillRefRetries times, per
// spec.md §4.5 step 4.
func allocateBillRef(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxBillRefRetries; attempt++ {
		ref, err := GenerateBillRef(time.Now())
		if err != nil {
			return "", fmt.Errorf("generate bill ref: %w", err)
		}

		var existing models.Sale
		err = tx.Where("bill_ref = ?", ref).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ref, nil
		}
		if err != nil {
			return "", fmt.Errorf("check bill ref collision: %w", err)
		}
		// collision: loop and retry with a fresh candidate
	}
	return "", fmt.Errorf("exhausted %d attempts allocating a unique bill ref", maxBillRefRetries)
}
