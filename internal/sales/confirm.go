package sales

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/catalog"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
)

// ConfirmResult is the response payload for POST /sales/{id}/confirm.
type ConfirmResult struct {
	Sale    *models.Sale
	Payment *models.Payment
}

var statusByPaymentMode = map[models.PaymentMode]struct {
	saleStatus    models.SaleStatus
	paymentStatus models.PaymentStatus
}{
	models.PaymentModeCash: {models.SaleStatusPaidCash, models.PaymentStatusPaid},
	models.PaymentModeUPI:  {models.SaleStatusPaidUPI, models.PaymentStatusPaid},
	models.PaymentModeDue:  {models.SaleStatusDue, models.PaymentStatusDue},
}

// ConfirmPayment re-verifies availability, applies the authoritative stock
// deduction, writes the Payment row, and transitions the sale to its
// terminal paid state, all inside one SERIALIZABLE transaction, per
// spec.md §4.5's confirm contract.
func ConfirmPayment(ctx context.Context, gdb *gorm.DB, storeID, saleID string, mode models.PaymentMode) (*ConfirmResult, error) {
	var result *ConfirmResult
	err := db.Serializable(ctx, gdb, func(tx *gorm.DB) error {
		r, err := ConfirmPaymentTx(tx, storeID, saleID, mode)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ConfirmPaymentTx is ConfirmPayment's transaction body, exposed so callers
// that already hold a SERIALIZABLE transaction (the offline sync engine's
// PAYMENT_CASH/PAYMENT_DUE dispatch) can run it without nesting a second
// top-level transaction.
func ConfirmPaymentTx(tx *gorm.DB, storeID, saleID string, mode models.PaymentMode) (*ConfirmResult, error) {
	outcome, ok := statusByPaymentMode[mode]
	if !ok {
		return nil, apperror.New(apperror.KindValidation, "invalid_item", "unknown payment mode")
	}

	var sale models.Sale
	err := db.LockForUpdate(tx).Preload("Items").
		Where("id = ? AND store_id = ?", saleID, storeID).First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.New(apperror.KindNotFound, "sale_not_found", "sale not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lock sale: %w", err)
	}

	if !sale.Status.IsPending() {
		if sale.Status.IsTerminal() && sale.Status != models.SaleStatusCancelled {
			return nil, apperror.New(apperror.KindConflict, "sale_already_confirmed", "sale already confirmed")
		}
		return nil, apperror.New(apperror.KindConflict, "sale_not_pending", "sale is not pending")
	}

	lines, err := reconstructLines(tx, sale.Items)
	if err != nil {
		return nil, err
	}

	if err := checkAvailability(tx, storeID, lines); err != nil {
		return nil, err
	}
	if err := applyDeductions(tx, storeID, sale.ID, lines); err != nil {
		return nil, err
	}

	payment := models.Payment{
		SaleID:      &sale.ID,
		Mode:        mode,
		Status:      outcome.paymentStatus,
		AmountMinor: sale.TotalMinor,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := tx.Model(&models.Sale{}).Where("id = ?", sale.ID).
		Update("status", outcome.saleStatus).Error; err != nil {
		return nil, fmt.Errorf("update sale status: %w", err)
	}
	sale.Status = outcome.saleStatus

	return &ConfirmResult{Sale: &sale, Payment: &payment}, nil
}

// reconstructLines rebuilds the product/bulk context each sale item needs
// for availability-checking and deduction, since only variantId/quantity
// survive from create-time (the globalProductId/unitBase/sizeBase are
// derived fresh from the variant each time rather than duplicated onto the
// sale item row).
func reconstructLines(tx *gorm.DB, items []models.SaleItem) ([]*resolvedLine, error) {
	lines := make([]*resolvedLine, 0, len(items))
	for _, item := range items {
		var variant models.Variant
		if err := tx.Where("id = ?", item.VariantID).First(&variant).Error; err != nil {
			return nil, fmt.Errorf("load variant %s: %w", item.VariantID, err)
		}
		gpID, err := catalog.GlobalProductIDForVariant(tx, variant.ID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, &resolvedLine{
			input: ItemInput{
				VariantID:  variant.ID,
				Quantity:   item.Quantity,
				PriceMinor: item.PriceMinor,
				Name:       item.ItemName,
			},
			variantID:       variant.ID,
			globalProductID: gpID,
			variantName:     item.ItemName,
			productID:       variant.ProductID,
			unitBase:        variant.UnitBase,
			sizeBase:        variant.SizeBase,
		})
	}
	return lines, nil
}
