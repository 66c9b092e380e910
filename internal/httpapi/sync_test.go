package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/sync"
)

func TestToSyncEvent_ProductUpsert(t *testing.T) {
	priceMinor := int64(2500)
	req := syncEventRequest{
		EventID:           "evt-1",
		Type:              "PRODUCT_UPSERT",
		Barcode:           "SM0123456789AB",
		ProductName:       "Toor Dal",
		SellingPriceMinor: &priceMinor,
	}

	event := toSyncEvent(req)

	assert.Equal(t, "evt-1", event.EventID)
	assert.Equal(t, sync.EventProductUpsert, event.Type)
	assert.Equal(t, "SM0123456789AB", event.Barcode)
	if assert.NotNil(t, event.SellingPriceMinor) {
		assert.Equal(t, int64(2500), *event.SellingPriceMinor)
	}
}

func TestToSyncEvent_SaleCreated(t *testing.T) {
	req := syncEventRequest{
		EventID: "evt-2",
		Type:    "SALE_CREATED",
		SaleID:  "sale-1",
		Items: []saleItemRequest{
			{VariantID: "v1", Quantity: 2, PriceMinor: 1000},
		},
		DiscountMinor: 100,
		Currency:      "INR",
	}

	event := toSyncEvent(req)

	assert.Equal(t, sync.EventSaleCreated, event.Type)
	assert.Equal(t, "sale-1", event.SaleID)
	assert.Len(t, event.Items, 1)
	assert.Equal(t, int64(100), event.DiscountMinor)
}

func TestToSyncEvent_PurchaseCreated_MapsNestedItems(t *testing.T) {
	req := syncEventRequest{
		EventID:      "evt-3",
		Type:         "PURCHASE_CREATED",
		PurchaseID:   "pu-1",
		SupplierName: "Local Mandi",
		PurchaseItems: []purchaseItemRequest{
			{ProductID: "p1", Quantity: 5, Unit: "kg", UnitCostMinor: 800},
		},
	}

	event := toSyncEvent(req)

	assert.Equal(t, sync.EventPurchaseCreated, event.Type)
	assert.Equal(t, "pu-1", event.PurchaseID)
	if assert.Len(t, event.PurchaseItems, 1) {
		assert.Equal(t, "p1", event.PurchaseItems[0].ProductID)
		assert.Equal(t, int64(800), event.PurchaseItems[0].UnitCostMinor)
	}
}

func TestToSyncEvent_NoPurchaseItems_LeavesNilSlice(t *testing.T) {
	req := syncEventRequest{EventID: "evt-4", Type: "COLLECTION_CREATED", CollectionID: "c1", AmountMinor: 500}

	event := toSyncEvent(req)

	assert.Nil(t, event.PurchaseItems)
}
