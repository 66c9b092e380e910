package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supermandi/pos-core/internal/models"
)

func TestToBaseQuantity_Kilograms(t *testing.T) {
	base, ok := ToBaseQuantity(10, "kg")
	require.True(t, ok)
	assert.Equal(t, int64(10000), base)
}

func TestToBaseQuantity_Litres(t *testing.T) {
	base, ok := ToBaseQuantity(2, "l")
	require.True(t, ok)
	assert.Equal(t, int64(2000), base)
}

func TestToBaseQuantity_GramsAndMillilitresPassThrough(t *testing.T) {
	base, ok := ToBaseQuantity(250, "g")
	require.True(t, ok)
	assert.Equal(t, int64(250), base)

	base, ok = ToBaseQuantity(500, "ml")
	require.True(t, ok)
	assert.Equal(t, int64(500), base)
}

func TestToBaseQuantity_UnknownUnitIsNotBulk(t *testing.T) {
	_, ok := ToBaseQuantity(5, "piece")
	assert.False(t, ok)
}

func TestBaseUnitForPurchaseUnit(t *testing.T) {
	u, ok := BaseUnitForPurchaseUnit("kg")
	require.True(t, ok)
	assert.Equal(t, models.BaseUnitGram, u)

	u, ok = BaseUnitForPurchaseUnit("l")
	require.True(t, ok)
	assert.Equal(t, models.BaseUnitMilli, u)

	_, ok = BaseUnitForPurchaseUnit("piece")
	assert.False(t, ok)
}
