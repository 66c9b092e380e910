package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"supermandi/pos-core/internal/models"
)

func TestDisplayName_PrefersStoreOverride(t *testing.T) {
	sp := &models.StoreProduct{StoreDisplayName: "Atta 1kg (Store Special)"}
	assert.Equal(t, "Atta 1kg (Store Special)", DisplayName(sp, "Atta Flour"))
}

func TestDisplayName_FallsBackToGlobalName(t *testing.T) {
	sp := &models.StoreProduct{}
	assert.Equal(t, "Atta Flour", DisplayName(sp, "Atta Flour"))
}
