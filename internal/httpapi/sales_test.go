package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestToItemInputs(t *testing.T) {
	reqs := []saleItemRequest{
		{VariantID: "v1", Quantity: 2, PriceMinor: 5000, Name: "Rice 1kg", Barcode: "SM0123456789AB"},
		{ProductID: "p2", GlobalProductID: "g2", Quantity: 1, PriceMinor: 1200},
	}

	out := toItemInputs(reqs)

	if assert.Len(t, out, 2) {
		assert.Equal(t, "v1", out[0].VariantID)
		assert.Equal(t, int64(2), out[0].Quantity)
		assert.Equal(t, int64(5000), out[0].PriceMinor)
		assert.Equal(t, "Rice 1kg", out[0].Name)
		assert.Equal(t, "g2", out[1].GlobalProductID)
	}
}

func TestToSaleItemResponses(t *testing.T) {
	items := []models.SaleItem{
		{VariantID: "v1", Quantity: 3, PriceMinor: 1000, LineTotalMinor: 3000, ItemName: "Dal"},
	}

	out := toSaleItemResponses(items)

	if assert.Len(t, out, 1) {
		assert.Equal(t, "v1", out[0].VariantID)
		assert.Equal(t, int64(3000), out[0].LineTotalMinor)
	}
}

func TestToSaleResponse(t *testing.T) {
	sale := &models.Sale{
		ID:            "s1",
		StoreID:       "st1",
		BillRef:       "BILL-1",
		SubtotalMinor: 10000,
		DiscountMinor: 500,
		TotalMinor:    9500,
		Currency:      "INR",
		Status:        models.SaleStatusPending,
	}
	items := []models.SaleItem{{VariantID: "v1", Quantity: 1, PriceMinor: 9500, LineTotalMinor: 9500}}

	out := toSaleResponse(sale, items)

	assert.Equal(t, "s1", out.ID)
	assert.Equal(t, int64(9500), out.TotalMinor)
	assert.Equal(t, models.SaleStatusPending, out.Status)
	assert.Len(t, out.Items, 1)
}

func TestToSaleResponse_NilItems(t *testing.T) {
	sale := &models.Sale{ID: "s1", Status: models.SaleStatusPaidCash}

	out := toSaleResponse(sale, nil)

	assert.Equal(t, "s1", out.ID)
	assert.Empty(t, out.Items)
}
