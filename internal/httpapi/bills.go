package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/models"
)

const (
	defaultBillsPageSize = 20
	maxBillsPageSize     = 100
)

type billsListResponse struct {
	Sales  []saleResponse `json:"sales"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Total  int64          `json:"total"`
}

// handleListBills implements GET /bills: a paged, read-only listing of the
// bound store's sales, newest first.
func (s *Server) handleListBills(c *gin.Context) {
	device := auth.FromContext(c)

	limit := parsePagingInt(c.Query("limit"), defaultBillsPageSize, maxBillsPageSize)
	offset := parsePagingInt(c.Query("offset"), 0, 1<<31-1)

	var total int64
	if err := s.DB.Model(&models.Sale{}).Where("store_id = ?", device.StoreID).Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}

	var saleRows []models.Sale
	err := s.DB.Preload("Items").
		Where("store_id = ?", device.StoreID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&saleRows).Error
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]saleResponse, 0, len(saleRows))
	for i := range saleRows {
		out = append(out, toSaleResponse(&saleRows[i], saleRows[i].Items))
	}

	respondJSON(c, http.StatusOK, billsListResponse{Sales: out, Limit: limit, Offset: offset, Total: total})
}

// handleGetBill implements GET /bills/{saleId}.
func (s *Server) handleGetBill(c *gin.Context) {
	device := auth.FromContext(c)
	saleID := c.Param("saleId")

	var sale models.Sale
	err := s.DB.Preload("Items").Preload("Payments").
		Where("id = ? AND store_id = ?", saleID, device.StoreID).First(&sale).Error
	if err != nil {
		respondError(c, apperror.New(apperror.KindNotFound, "sale_not_found", "sale not found"))
		return
	}

	respondJSON(c, http.StatusOK, toSaleResponse(&sale, sale.Items))
}

func parsePagingInt(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
