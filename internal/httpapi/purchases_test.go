package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestToPurchaseResponse(t *testing.T) {
	variantID := "v1"
	p := &models.Purchase{
		ID:           "pu1",
		StoreID:      "st1",
		SupplierName: "Wholesaler Co",
		TotalMinor:   15000,
		Currency:     "INR",
	}
	items := []models.PurchaseItem{
		{ProductID: "p1", VariantID: &variantID, Quantity: 10, Unit: "kg", UnitCostMinor: 1000, LineTotalMinor: 10000},
		{ProductID: "p2", VariantID: nil, Quantity: 1, Unit: "pc", UnitCostMinor: 5000, LineTotalMinor: 5000},
	}

	out := toPurchaseResponse(p, items)

	assert.Equal(t, "pu1", out.ID)
	assert.Equal(t, int64(15000), out.TotalMinor)
	if assert.Len(t, out.Items, 2) {
		assert.Equal(t, "v1", out.Items[0].VariantID)
		assert.Equal(t, "", out.Items[1].VariantID)
		assert.Equal(t, int64(5000), out.Items[1].LineTotalMinor)
	}
}

func TestToPurchaseResponse_NoItems(t *testing.T) {
	p := &models.Purchase{ID: "pu2"}

	out := toPurchaseResponse(p, nil)

	assert.Equal(t, "pu2", out.ID)
	assert.Empty(t, out.Items)
}
