package sales

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
)

// OfflineSaleResult is the response payload for an offline SALE_CREATED
// sync event: the sale is built directly into a paid-terminal state, unlike
// /sales which always lands on PENDING.
type OfflineSaleResult struct {
	Sale    *models.Sale
	Items   []models.SaleItem
	Payment *models.Payment
}

// CreateOfflineSale builds a sale straight into its paid-terminal state in
// one transaction: resolve, validate availability, deduct stock, and record
// the payment — the SALE_CREATED path spec.md §4.7 describes as building a
// sale "in a pre-paid state", distinct from the create-then-confirm split
// /sales uses. saleID is the client-generated id; offlineReceiptRef is
// unique per store when supplied.
func CreateOfflineSale(
	ctx context.Context,
	gdb *gorm.DB,
	storeID, deviceID string,
	items []ItemInput,
	discountMinor int64,
	currency, saleID, offlineReceiptRef string,
	mode models.PaymentMode,
) (*OfflineSaleResult, error) {
	if saleID != "" {
		if existing, err := loadExistingOfflineSale(gdb, storeID, saleID); err != nil {
			return nil, err
		} else if existing != nil {
			return existing, nil
		}
	}

	var result *OfflineSaleResult
	err := db.Serializable(ctx, gdb, func(tx *gorm.DB) error {
		r, err := CreateOfflineSaleTx(tx, storeID, deviceID, items, discountMinor, currency, saleID, offlineReceiptRef, mode)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CreateOfflineSaleTx is CreateOfflineSale's transaction body, exposed so
// the offline sync engine can run it inside a transaction it already holds
// SERIALIZABLE on, instead of nesting a second top-level transaction.
func CreateOfflineSaleTx(
	tx *gorm.DB,
	storeID, deviceID string,
	items []ItemInput,
	discountMinor int64,
	currency, saleID, offlineReceiptRef string,
	mode models.PaymentMode,
) (*OfflineSaleResult, error) {
	outcome, ok := statusByPaymentMode[mode]
	if !ok {
		return nil, apperror.New(apperror.KindValidation, "invalid_item", "unknown payment mode")
	}
	if err := ValidateItems(items); err != nil {
		return nil, err
	}
	if currency == "" {
		currency = "INR"
	}

	resolved := make([]*resolvedLine, 0, len(items))
	for _, item := range items {
		line, err := resolveLine(tx, storeID, item)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindValidation, "invalid_item", err.Error(), err)
		}
		resolved = append(resolved, line)
	}

	if err := checkAvailability(tx, storeID, resolved); err != nil {
		return nil, err
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
		Status:        outcome.saleStatus,
	}
	if offlineReceiptRef != "" {
		sale.OfflineReceiptRef = &offlineReceiptRef
	}

	billRef, err := allocateBillRef(tx)
	if err != nil {
		return nil, err
	}
	sale.BillRef = billRef

	if err := tx.Create(&sale).Error; err != nil {
		return nil, fmt.Errorf("create offline sale: %w", err)
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
		return nil, fmt.Errorf("create offline sale items: %w", err)
	}

	if err := applyDeductions(tx, storeID, sale.ID, resolved); err != nil {
		return nil, err
	}

	payment := models.Payment{
		SaleID:      &sale.ID,
		Mode:        mode,
		Status:      outcome.paymentStatus,
		AmountMinor: totals.TotalMinor,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("create offline payment: %w", err)
	}

	sale.Items = saleItems
	return &OfflineSaleResult{Sale: &sale, Items: saleItems, Payment: &payment}, nil
}

func loadExistingOfflineSale(gdb *gorm.DB, storeID, saleID string) (*OfflineSaleResult, error) {
	var sale models.Sale
	err := gdb.Preload("Items").Preload("Payments").Where("id = ? AND store_id = ?", saleID, storeID).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup existing offline sale: %w", err)
	}
	var payment *models.Payment
	if len(sale.Payments) > 0 {
		payment = &sale.Payments[0]
	}
	return &OfflineSaleResult{Sale: &sale, Items: sale.Items, Payment: payment}, nil
}
