package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/models"
)

type ledgerEntryResponse struct {
	ID              string                `json:"id"`
	GlobalProductID string                `json:"globalProductId"`
	MovementType    models.MovementType   `json:"movementType"`
	Quantity        int64                 `json:"quantity"`
	ReferenceType   *models.ReferenceType `json:"referenceType,omitempty"`
	ReferenceID     *string               `json:"referenceId,omitempty"`
	CreatedAt       string                `json:"createdAt"`
}

type adminLedgerResponse struct {
	StoreID string                `json:"storeId"`
	Entries []ledgerEntryResponse `json:"entries"`
}

// handleAdminLedger is a supplemented read endpoint exposing the raw
// append-only movement log for a store, for reconciliation against
// StoreInventory.availableQty.
func (s *Server) handleAdminLedger(c *gin.Context) {
	storeID := c.Param("id")
	limit := parsePagingInt(c.Query("limit"), 100, 1000)

	var rows []models.InventoryLedger
	err := s.DB.Where("store_id = ?", storeID).Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]ledgerEntryResponse, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, ledgerEntryResponse{
			ID:              r.ID,
			GlobalProductID: r.GlobalProductID,
			MovementType:    r.MovementType,
			Quantity:        r.Quantity,
			ReferenceType:   r.ReferenceType,
			ReferenceID:     r.ReferenceID,
			CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	respondJSON(c, http.StatusOK, adminLedgerResponse{StoreID: storeID, Entries: entries})
}

type inventoryRowResponse struct {
	GlobalProductID string `json:"globalProductId"`
	AvailableQty    int64  `json:"availableQty"`
}

type adminInventoryResponse struct {
	StoreID string                  `json:"storeId"`
	Rows    []inventoryRowResponse `json:"rows"`
}

// handleAdminInventory is a supplemented read endpoint exposing the
// authoritative StoreInventory snapshot for a store.
func (s *Server) handleAdminInventory(c *gin.Context) {
	storeID := c.Param("id")

	var rows []models.StoreInventory
	if err := s.DB.Where("store_id = ?", storeID).Find(&rows).Error; err != nil {
		respondError(c, err)
		return
	}

	out := make([]inventoryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, inventoryRowResponse{GlobalProductID: r.GlobalProductID, AvailableQty: r.AvailableQty})
	}

	respondJSON(c, http.StatusOK, adminInventoryResponse{StoreID: storeID, Rows: out})
}
