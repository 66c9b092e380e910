package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestSignedDelta_Receive(t *testing.T) {
	d, err := signedDelta(models.MovementReceive, 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), d)
}

func TestSignedDelta_ReceiveNormalizesSign(t *testing.T) {
	d, err := signedDelta(models.MovementReceive, -5)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), d)
}

func TestSignedDelta_Sell(t *testing.T) {
	d, err := signedDelta(models.MovementSell, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(-3), d)
}

func TestSignedDelta_AdjustmentPassesThrough(t *testing.T) {
	d, err := signedDelta(models.MovementAdjustment, -7)
	assert.NoError(t, err)
	assert.Equal(t, int64(-7), d)
}

func TestSignedDelta_ZeroRejected(t *testing.T) {
	_, err := signedDelta(models.MovementReceive, 0)
	assert.Error(t, err)
	_, err = signedDelta(models.MovementSell, 0)
	assert.Error(t, err)
	_, err = signedDelta(models.MovementAdjustment, 0)
	assert.Error(t, err)
}

func TestSignedDelta_UnknownType(t *testing.T) {
	_, err := signedDelta(models.MovementType("BOGUS"), 1)
	assert.Error(t, err)
}

func TestMergeByProduct_SumsAcrossLines(t *testing.T) {
	merged := mergeByProduct([]RequiredItem{
		{GlobalProductID: "g1", RequiredQty: 2, Name: "Rice"},
		{GlobalProductID: "g1", RequiredQty: 3},
		{GlobalProductID: "g2", RequiredQty: 1, Name: "Atta"},
	})
	assert.Equal(t, int64(5), merged["g1"].qty)
	assert.Equal(t, "Rice", merged["g1"].name)
	assert.Equal(t, int64(1), merged["g2"].qty)
}
