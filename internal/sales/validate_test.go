package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermandi/pos-core/internal/apperror"
)

func TestValidateItems_RejectsEmpty(t *testing.T) {
	err := ValidateItems(nil)
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, "items_required", appErr.Token)
}

func TestValidateItems_RejectsQuantityBounds(t *testing.T) {
	cases := []int64{0, -1, 100001, 1000000}
	for _, qty := range cases {
		err := ValidateItems([]ItemInput{{GlobalProductID: "g1", Quantity: qty, PriceMinor: 100}})
		require.Error(t, err)
		appErr, _ := apperror.As(err)
		assert.Equal(t, "invalid_item", appErr.Token)
	}
}

func TestValidateItems_RejectsPriceBounds(t *testing.T) {
	cases := []int64{0, -1, 100000001}
	for _, price := range cases {
		err := ValidateItems([]ItemInput{{GlobalProductID: "g1", Quantity: 1, PriceMinor: price}})
		require.Error(t, err)
	}
}

func TestValidateItems_AcceptsBoundaryValues(t *testing.T) {
	err := ValidateItems([]ItemInput{
		{GlobalProductID: "g1", Quantity: 1, PriceMinor: 1},
		{GlobalProductID: "g2", Quantity: 100000, PriceMinor: 100000000},
	})
	assert.NoError(t, err)
}

func TestValidateItems_RejectsUnresolvableItem(t *testing.T) {
	err := ValidateItems([]ItemInput{{Quantity: 1, PriceMinor: 1}})
	require.Error(t, err)
}

func TestComputeTotals_Basic(t *testing.T) {
	items := []ItemInput{
		{Quantity: 2, PriceMinor: 5000},
		{Quantity: 1, PriceMinor: 2000},
	}
	totals := ComputeTotals(items, 0)
	assert.Equal(t, int64(12000), totals.SubtotalMinor)
	assert.Equal(t, int64(0), totals.DiscountMinor)
	assert.Equal(t, int64(12000), totals.TotalMinor)
}

func TestComputeTotals_DiscountNeverMakesTotalNegative(t *testing.T) {
	items := []ItemInput{{Quantity: 1, PriceMinor: 100}}
	totals := ComputeTotals(items, 500)
	assert.Equal(t, int64(100), totals.SubtotalMinor)
	assert.Equal(t, int64(0), totals.TotalMinor)
}

func TestComputeTotals_NegativeDiscountClampedToZero(t *testing.T) {
	items := []ItemInput{{Quantity: 1, PriceMinor: 100}}
	totals := ComputeTotals(items, -50)
	assert.Equal(t, int64(0), totals.DiscountMinor)
	assert.Equal(t, int64(100), totals.TotalMinor)
}
