package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/sales"
)

type upiInitRequest struct {
	SaleID    string      `json:"saleId" binding:"required"`
	UpiIntent interface{} `json:"upiIntent"`
}

type upiInitResponse struct {
	PaymentID   string `json:"paymentId"`
	BillRef     string `json:"billRef"`
	AmountMinor int64  `json:"amountMinor"`
	StoreName   string `json:"storeName"`
	UpiVpa      string `json:"upiVpa"`
}

// handleUPIInit implements POST /payments/upi/init. The sale stays PENDING —
// confirmation happens separately once the customer's UPI app settles, via
// handleUPIConfirmManual. A client-supplied upiIntent is rejected outright:
// intent construction is the device's job, not the core's.
func (s *Server) handleUPIInit(c *gin.Context) {
	var req upiInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_item", "saleId is required")
		return
	}
	if req.UpiIntent != nil {
		respondError(c, apperror.New(apperror.KindValidation, "upi_intent_not_allowed", "upiIntent is not accepted by this endpoint"))
		return
	}

	device := auth.FromContext(c)

	var resp upiInitResponse
	err := db.Default(c.Request.Context(), s.DB, func(tx *gorm.DB) error {
		var sale models.Sale
		err := tx.Where("id = ? AND store_id = ?", req.SaleID, device.StoreID).First(&sale).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.KindNotFound, "sale_not_found", "sale not found")
		}
		if err != nil {
			return err
		}
		if !sale.Status.IsPending() {
			return apperror.New(apperror.KindConflict, "sale_not_pending", "sale is not pending")
		}

		var store models.Store
		if err := tx.Where("id = ?", device.StoreID).First(&store).Error; err != nil {
			return err
		}

		payment := models.Payment{
			SaleID:      &sale.ID,
			Mode:        models.PaymentModeUPI,
			Status:      models.PaymentStatusPending,
			AmountMinor: sale.TotalMinor,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		resp = upiInitResponse{
			PaymentID:   payment.ID,
			BillRef:     sale.BillRef,
			AmountMinor: sale.TotalMinor,
			StoreName:   store.Name,
			UpiVpa:      store.UpiVpa,
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, resp)
}

type upiConfirmManualRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// handleUPIConfirmManual looks up the sale a pending UPI payment belongs to
// and runs it through the same two-phase confirm every other payment mode
// uses, per spec.md §6.
func (s *Server) handleUPIConfirmManual(c *gin.Context) {
	var req upiConfirmManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_item", "paymentId is required")
		return
	}

	device := auth.FromContext(c)

	var payment models.Payment
	err := s.DB.Where("id = ?", req.PaymentID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || payment.SaleID == nil {
		respondError(c, apperror.New(apperror.KindNotFound, "payment_not_found", "payment not found"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := sales.ConfirmPayment(c.Request.Context(), s.DB, device.StoreID, *payment.SaleID, models.PaymentModeUPI)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSaleResponse(result.Sale, nil))
}
