package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/purchase"
	"supermandi/pos-core/internal/sync"
)

type syncEventRequest struct {
	EventID string `json:"eventId" binding:"required"`
	Type    string `json:"type" binding:"required"`

	Barcode           string `json:"barcode"`
	ProductName       string `json:"productName"`
	SellingPriceMinor *int64 `json:"sellingPriceMinor"`

	SaleID            string            `json:"saleId"`
	Items             []saleItemRequest `json:"items"`
	DiscountMinor     int64             `json:"discountMinor"`
	Currency          string            `json:"currency"`
	OfflineReceiptRef string            `json:"offlineReceiptRef"`
	PaymentMode       string            `json:"paymentMode"`

	CollectionID string `json:"collectionId"`
	AmountMinor  int64  `json:"amountMinor"`
	Mode         string `json:"mode"`
	Reference    string `json:"reference"`

	PurchaseID    string                `json:"purchaseId"`
	SupplierName  string                `json:"supplierName"`
	PurchaseItems []purchaseItemRequest `json:"purchaseItems"`
}

type syncRequest struct {
	PendingOutboxCount int                `json:"pendingOutboxCount"`
	Events             []syncEventRequest `json:"events" binding:"required"`
}

func toSyncEvent(req syncEventRequest) sync.Event {
	event := sync.Event{
		EventID:           req.EventID,
		Type:              sync.EventType(req.Type),
		Barcode:           req.Barcode,
		ProductName:       req.ProductName,
		SellingPriceMinor: req.SellingPriceMinor,
		SaleID:            req.SaleID,
		Items:             toItemInputs(req.Items),
		DiscountMinor:     req.DiscountMinor,
		Currency:          req.Currency,
		OfflineReceiptRef: req.OfflineReceiptRef,
		PaymentMode:       models.PaymentMode(req.PaymentMode),
		CollectionID:      req.CollectionID,
		AmountMinor:       req.AmountMinor,
		Mode:              models.PaymentMode(req.Mode),
		Reference:         req.Reference,
		PurchaseID:        req.PurchaseID,
		SupplierName:      req.SupplierName,
	}
	if len(req.PurchaseItems) > 0 {
		event.PurchaseItems = make([]purchase.ItemInput, 0, len(req.PurchaseItems))
		for _, it := range req.PurchaseItems {
			event.PurchaseItems = append(event.PurchaseItems, purchase.ItemInput{
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
	}
	return event
}

// handleSync implements POST /sync, replaying a device's offline outbox
// batch, per spec.md §4.7.
func (s *Server) handleSync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_item", "events are required")
		return
	}

	device := auth.FromContext(c)

	events := make([]sync.Event, 0, len(req.Events))
	for _, e := range req.Events {
		events = append(events, toSyncEvent(e))
	}

	result, err := sync.ApplyBatch(c.Request.Context(), s.DB, device.StoreID, device.DeviceID, req.PendingOutboxCount, events)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, result)
}
