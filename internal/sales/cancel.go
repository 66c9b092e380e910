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

// CancelSale transitions a PENDING sale to CANCELLED. No restock is
// required since creation never deducted stock, per spec.md §4.5.
func CancelSale(ctx context.Context, gdb *gorm.DB, storeID, saleID string) (*models.Sale, error) {
	var sale models.Sale
	err := db.Default(ctx, gdb, func(tx *gorm.DB) error {
		err := db.LockForUpdate(tx).Where("id = ? AND store_id = ?", saleID, storeID).First(&sale).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "sale_not_found", "sale not found")
		}
		if err != nil {
			return fmt.Errorf("lock sale: %w", err)
		}
		if !sale.Status.IsPending() {
			return apperror.New(apperror.KindConflict, "cannot_cancel", "sale is not pending")
		}

		if err := tx.Model(&models.Sale{}).Where("id = ?", sale.ID).
			Update("status", models.SaleStatusCancelled).Error; err != nil {
			return fmt.Errorf("cancel sale: %w", err)
		}
		sale.Status = models.SaleStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
