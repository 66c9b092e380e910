package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/models"
)

type storeStatusResponse struct {
	StoreID string `json:"storeId"`
	Active  bool   `json:"active"`
	Name    string `json:"name"`
}

func (s *Server) handleStoreStatus(c *gin.Context) {
	storeID := c.Param("storeId")

	var store models.Store
	if err := s.DB.Where("id = ?", storeID).First(&store).Error; err != nil {
		respondError(c, apperror.New(apperror.KindNotFound, "store_not_found", "store not found"))
		return
	}

	respondJSON(c, http.StatusOK, storeStatusResponse{
		StoreID: store.ID,
		Active:  store.Active(),
		Name:    store.Name,
	})
}

type bulkInventoryResponse struct {
	StoreID      string            `json:"storeId"`
	ProductID    string            `json:"productId"`
	BaseUnit     models.BaseUnit   `json:"baseUnit"`
	QuantityBase int64             `json:"quantityBase"`
}

// handleBulkInventory is a supplemented read endpoint (not in §6's endpoint
// table) exposing BulkInventory.quantityBase directly, the snapshot the
// device UI needs to render "2.4 kg remaining" without re-deriving it from
// the ledger.
func (s *Server) handleBulkInventory(c *gin.Context) {
	storeID := c.Param("storeId")
	productID := c.Param("productId")

	var inv models.BulkInventory
	err := s.DB.Where("store_id = ? AND product_id = ?", storeID, productID).First(&inv).Error
	if err != nil {
		respondJSON(c, http.StatusOK, bulkInventoryResponse{StoreID: storeID, ProductID: productID, QuantityBase: 0})
		return
	}

	respondJSON(c, http.StatusOK, bulkInventoryResponse{
		StoreID:      storeID,
		ProductID:    productID,
		BaseUnit:     inv.BaseUnit,
		QuantityBase: inv.QuantityBase,
	})
}
