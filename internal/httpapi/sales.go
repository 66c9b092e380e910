package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/sales"
)

type saleItemRequest struct {
	VariantID       string `json:"variantId"`
	ProductID       string `json:"productId"`
	GlobalProductID string `json:"globalProductId"`
	Quantity        int64  `json:"quantity" binding:"required"`
	PriceMinor      int64  `json:"priceMinor" binding:"required"`
	Name            string `json:"name"`
	Barcode         string `json:"barcode"`
}

type createSaleRequest struct {
	SaleID        string            `json:"saleId"`
	Items         []saleItemRequest `json:"items" binding:"required"`
	DiscountMinor int64             `json:"discountMinor"`
	Currency      string            `json:"currency"`
}

type saleItemResponse struct {
	VariantID      string `json:"variantId"`
	Quantity       int64  `json:"quantity"`
	PriceMinor     int64  `json:"priceMinor"`
	LineTotalMinor int64  `json:"lineTotalMinor"`
	ItemName       string `json:"itemName"`
}

type saleResponse struct {
	ID            string             `json:"id"`
	StoreID       string             `json:"storeId"`
	BillRef       string             `json:"billRef"`
	SubtotalMinor int64              `json:"subtotalMinor"`
	DiscountMinor int64              `json:"discountMinor"`
	TotalMinor    int64              `json:"totalMinor"`
	Currency      string             `json:"currency"`
	Status        models.SaleStatus  `json:"status"`
	Items         []saleItemResponse `json:"items,omitempty"`
}

func toSaleItemResponses(items []models.SaleItem) []saleItemResponse {
	out := make([]saleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, saleItemResponse{
			VariantID:      it.VariantID,
			Quantity:       it.Quantity,
			PriceMinor:     it.PriceMinor,
			LineTotalMinor: it.LineTotalMinor,
			ItemName:       it.ItemName,
		})
	}
	return out
}

func toSaleResponse(sale *models.Sale, items []models.SaleItem) saleResponse {
	return saleResponse{
		ID:            sale.ID,
		StoreID:       sale.StoreID,
		BillRef:       sale.BillRef,
		SubtotalMinor: sale.SubtotalMinor,
		DiscountMinor: sale.DiscountMinor,
		TotalMinor:    sale.TotalMinor,
		Currency:      sale.Currency,
		Status:        sale.Status,
		Items:         toSaleItemResponses(items),
	}
}

func toItemInputs(items []saleItemRequest) []sales.ItemInput {
	out := make([]sales.ItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, sales.ItemInput{
			VariantID:       it.VariantID,
			ProductID:       it.ProductID,
			GlobalProductID: it.GlobalProductID,
			Quantity:        it.Quantity,
			PriceMinor:      it.PriceMinor,
			Name:            it.Name,
			Barcode:         it.Barcode,
		})
	}
	return out
}

// handleCreateSale implements POST /sales: validates and persists a PENDING
// sale without deducting stock, per spec.md §4.5.
func (s *Server) handleCreateSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_item", "items are required")
		return
	}

	device := auth.FromContext(c)

	result, err := sales.CreateSale(c.Request.Context(), s.DB, device.StoreID, device.DeviceID,
		toItemInputs(req.Items), req.DiscountMinor, req.Currency, req.SaleID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSaleResponse(result.Sale, result.Items))
}

type confirmSaleRequest struct {
	Mode      models.PaymentMode `json:"mode" binding:"required"`
	UpiIntent interface{}        `json:"upiIntent"`
}

// handleConfirmSale implements POST /sales/{id}/confirm: re-verifies
// availability, applies the authoritative deduction, and transitions the
// sale to its terminal paid state.
func (s *Server) handleConfirmSale(c *gin.Context) {
	var req confirmSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_item", "mode is required")
		return
	}
	if req.UpiIntent != nil {
		respondError(c, apperror.New(apperror.KindValidation, "upi_intent_not_allowed", "upiIntent is not accepted by this endpoint"))
		return
	}

	saleID := c.Param("saleId")
	device := auth.FromContext(c)

	result, err := sales.ConfirmPayment(c.Request.Context(), s.DB, device.StoreID, saleID, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSaleResponse(result.Sale, nil))
}

// handleConfirmMode returns a handler that confirms with a fixed payment
// mode, for the /payments/cash and /payments/due routes which take the mode
// from the path rather than the body.
func (s *Server) handleConfirmMode(mode models.PaymentMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			SaleID string `json:"saleId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid_item", "saleId is required")
			return
		}

		device := auth.FromContext(c)
		result, err := sales.ConfirmPayment(c.Request.Context(), s.DB, device.StoreID, req.SaleID, mode)
		if err != nil {
			respondError(c, err)
			return
		}

		respondJSON(c, http.StatusOK, toSaleResponse(result.Sale, nil))
	}
}

// handleCancelSale implements POST /sales/{id}/cancel.
func (s *Server) handleCancelSale(c *gin.Context) {
	saleID := c.Param("saleId")
	device := auth.FromContext(c)

	sale, err := sales.CancelSale(c.Request.Context(), s.DB, device.StoreID, saleID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSaleResponse(sale, nil))
}
