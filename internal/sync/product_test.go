package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMBarcodePatternMatchesOnlyInternalFormat(t *testing.T) {
	assert.True(t, smBarcodePattern.MatchString("SM0A1B2C3D4E5F"))
	assert.False(t, smBarcodePattern.MatchString("sm0a1b2c3d4e5f"))
	assert.False(t, smBarcodePattern.MatchString("8901030826501"))
	assert.False(t, smBarcodePattern.MatchString("SM0A1B2C3D4E5"))
}
