package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateItems_RejectsEmpty(t *testing.T) {
	err := ValidateItems(nil)
	assert.Error(t, err)
}

func TestValidateItems_RejectsBadQuantity(t *testing.T) {
	err := ValidateItems([]ItemInput{{Quantity: 0, UnitCostMinor: 100}})
	assert.Error(t, err)

	err = ValidateItems([]ItemInput{{Quantity: 1_000_001, UnitCostMinor: 100}})
	assert.Error(t, err)
}

func TestValidateItems_RejectsBadUnitCost(t *testing.T) {
	err := ValidateItems([]ItemInput{{Quantity: 10, UnitCostMinor: 0}})
	assert.Error(t, err)

	err = ValidateItems([]ItemInput{{Quantity: 10, UnitCostMinor: 100_000_001}})
	assert.Error(t, err)
}

func TestValidateItems_RejectsNegativeSellingPrice(t *testing.T) {
	negative := int64(-5)
	err := ValidateItems([]ItemInput{{Quantity: 10, UnitCostMinor: 100, SellingPriceMinor: &negative}})
	assert.Error(t, err)
}

func TestValidateItems_AcceptsValid(t *testing.T) {
	price := int64(500)
	err := ValidateItems([]ItemInput{{Quantity: 10, UnitCostMinor: 100, SellingPriceMinor: &price}})
	assert.NoError(t, err)
}
