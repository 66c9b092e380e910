package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestNameOrFallback(t *testing.T) {
	assert.Equal(t, "Explicit", nameOrFallback("Explicit", "Fallback"))
	assert.Equal(t, "Fallback", nameOrFallback("", "Fallback"))
}

func TestBulkRequiredBase_NotBulkWithoutUnitAndSize(t *testing.T) {
	line := &resolvedLine{input: ItemInput{Quantity: 3}}
	_, isBulk := line.bulkRequiredBase()
	assert.False(t, isBulk)
}

func TestBulkRequiredBase_ComputesAggregate(t *testing.T) {
	unit := models.BaseUnitGram
	size := int64(250)
	line := &resolvedLine{input: ItemInput{Quantity: 4}, unitBase: &unit, sizeBase: &size}
	base, isBulk := line.bulkRequiredBase()
	assert.True(t, isBulk)
	assert.Equal(t, int64(1000), base)
}

func TestStatusByPaymentMode_CoversAllModes(t *testing.T) {
	for _, mode := range []models.PaymentMode{models.PaymentModeCash, models.PaymentModeUPI, models.PaymentModeDue} {
		outcome, ok := statusByPaymentMode[mode]
		assert.True(t, ok, "missing mapping for %s", mode)
		assert.NotEmpty(t, outcome.saleStatus)
		assert.NotEmpty(t, outcome.paymentStatus)
	}
}
