package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/db"
	"supermandi/pos-core/internal/purchase"
)

type setPriceRequest struct {
	VariantID         string `json:"variantId" binding:"required"`
	SellingPriceMinor int64  `json:"sellingPriceMinor" binding:"required"`
}

type setPriceResponse struct {
	VariantID         string `json:"variantId"`
	SellingPriceMinor int64  `json:"sellingPriceMinor"`
}

// handleSetPrice lets a device set the store-specific selling price a scan
// resolution is missing when it returns action=PROMPT_PRICE, writing through
// the same RetailerVariant path the offline PRODUCT_PRICE_SET event and the
// purchase pipeline's selling-price upsert use.
func (s *Server) handleSetPrice(c *gin.Context) {
	var req setPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_price", "variantId and a positive sellingPriceMinor are required")
		return
	}
	if req.SellingPriceMinor <= 0 {
		badRequest(c, "invalid_price", "sellingPriceMinor must be positive")
		return
	}

	device := auth.FromContext(c)

	err := db.Default(c.Request.Context(), s.DB, func(tx *gorm.DB) error {
		return purchase.UpsertSellingPrice(tx, device.StoreID, req.VariantID, req.SellingPriceMinor)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, setPriceResponse{VariantID: req.VariantID, SellingPriceMinor: req.SellingPriceMinor})
}
