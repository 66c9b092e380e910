package sync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/apperror"
)

func TestRequiresSerializable(t *testing.T) {
	serializableTypes := []EventType{EventSaleCreated, EventPaymentCash, EventPaymentDue, EventPurchaseSubmit, EventPurchaseCreated}
	for _, et := range serializableTypes {
		assert.True(t, requiresSerializable(et), "%s should require SERIALIZABLE", et)
	}

	defaultTypes := []EventType{EventProductUpsert, EventProductPriceSet, EventCollectionCreated}
	for _, et := range defaultTypes {
		assert.False(t, requiresSerializable(et), "%s should use default isolation", et)
	}
}

func TestErrorToken(t *testing.T) {
	appErr := apperror.New(apperror.KindConflict, "sale_already_confirmed", "already confirmed")
	assert.Equal(t, "sale_already_confirmed", errorToken(appErr))

	assert.Equal(t, string(apperror.KindInternal), errorToken(errors.New("boom")))
}

func TestDispatchUnknownEventType(t *testing.T) {
	_, _, _, err := dispatch(nil, "store-1", "device-1", Event{EventID: "evt-1", Type: "BOGUS"})
	assert.Error(t, err)
	appErr, ok := apperror.As(err)
	assert.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
}
