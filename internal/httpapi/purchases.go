package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/purchase"
)

type purchaseItemRequest struct {
	ProductID         string `json:"productId"`
	VariantID         string `json:"variantId"`
	Barcode           string `json:"barcode"`
	ProductName       string `json:"productName"`
	Quantity          int64  `json:"quantity" binding:"required"`
	Unit              string `json:"unit" binding:"required"`
	UnitCostMinor     int64  `json:"unitCostMinor" binding:"required"`
	SellingPriceMinor *int64 `json:"sellingPriceMinor"`
}

type createPurchaseRequest struct {
	PurchaseID   string                `json:"purchaseId"`
	SupplierName string                `json:"supplierName"`
	Currency     string                `json:"currency"`
	Items        []purchaseItemRequest `json:"items" binding:"required"`
}

type purchaseItemResponse struct {
	ProductID      string `json:"productId"`
	VariantID      string `json:"variantId,omitempty"`
	Quantity       int64  `json:"quantity"`
	Unit           string `json:"unit"`
	UnitCostMinor  int64  `json:"unitCostMinor"`
	LineTotalMinor int64  `json:"lineTotalMinor"`
}

type purchaseResponse struct {
	ID           string                 `json:"id"`
	StoreID      string                 `json:"storeId"`
	SupplierName string                 `json:"supplierName"`
	TotalMinor   int64                  `json:"totalMinor"`
	Currency     string                 `json:"currency"`
	Items        []purchaseItemResponse `json:"items"`
}

func toPurchaseResponse(p *models.Purchase, items []models.PurchaseItem) purchaseResponse {
	out := make([]purchaseItemResponse, 0, len(items))
	for _, it := range items {
		variantID := ""
		if it.VariantID != nil {
			variantID = *it.VariantID
		}
		out = append(out, purchaseItemResponse{
			ProductID:      it.ProductID,
			VariantID:      variantID,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			UnitCostMinor:  it.UnitCostMinor,
			LineTotalMinor: it.LineTotalMinor,
		})
	}
	return purchaseResponse{
		ID:           p.ID,
		StoreID:      p.StoreID,
		SupplierName: p.SupplierName,
		TotalMinor:   p.TotalMinor,
		Currency:     p.Currency,
		Items:        out,
	}
}

// handleCreatePurchase implements POST /purchases, per spec.md §4.6.
func (s *Server) handleCreatePurchase(c *gin.Context) {
	var req createPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_item", "items are required")
		return
	}

	device := auth.FromContext(c)

	items := make([]purchase.ItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, purchase.ItemInput{
			ProductID:         it.ProductID,
			VariantID:         it.VariantID,
			Barcode:           it.Barcode,
			ProductName:       it.ProductName,
			Quantity:          it.Quantity,
			Unit:              it.Unit,
			UnitCostMinor:     it.UnitCostMinor,
			SellingPriceMinor: it.SellingPriceMinor,
		})
	}

	result, err := purchase.CreatePurchase(c.Request.Context(), s.DB, device.StoreID, items,
		req.SupplierName, req.Currency, req.PurchaseID, false)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPurchaseResponse(result.Purchase, result.Items))
}
