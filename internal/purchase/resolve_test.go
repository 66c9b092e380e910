package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestNormalizeBarcodeLookup_UppersSMCodes(t *testing.T) {
	assert.Equal(t, "SM0123456789AB", normalizeBarcodeLookup("sm0123456789ab"))
}

func TestNormalizeBarcodeLookup_LeavesExternalCodesVerbatim(t *testing.T) {
	assert.Equal(t, "8901030895555", normalizeBarcodeLookup("8901030895555"))
}

func TestNormalizeBarcodeLookup_LeavesNonMatchingMixedCaseVerbatim(t *testing.T) {
	// Looks SM-ish but wrong length, so it is not an internal barcode.
	assert.Equal(t, "sm0123", normalizeBarcodeLookup("sm0123"))
}

func TestIsBulk_ThresholdAtOneThousand(t *testing.T) {
	under := int64(999)
	atThreshold := int64(1000)

	r := &resolvedItem{quantityBase: &under}
	assert.False(t, r.isBulk())

	r = &resolvedItem{quantityBase: &atThreshold}
	assert.True(t, r.isBulk())

	r = &resolvedItem{quantityBase: nil}
	assert.False(t, r.isBulk())
}

func TestApplyBaseQuantity_KilogramsToGrams(t *testing.T) {
	r := &resolvedItem{input: ItemInput{Quantity: 10, Unit: "kg"}}
	applyBaseQuantity(r)
	assert.NotNil(t, r.quantityBase)
	assert.Equal(t, int64(10000), *r.quantityBase)
	assert.Equal(t, models.BaseUnitGram, *r.baseUnit)
}

func TestApplyBaseQuantity_UnknownUnitLeavesNil(t *testing.T) {
	r := &resolvedItem{input: ItemInput{Quantity: 10, Unit: "piece"}}
	applyBaseQuantity(r)
	assert.Nil(t, r.quantityBase)
	assert.Nil(t, r.baseUnit)
}

func TestNameOrFallback(t *testing.T) {
	assert.Equal(t, "Explicit", nameOrFallback("Explicit", "Fallback"))
	assert.Equal(t, "Fallback", nameOrFallback("", "Fallback"))
}
