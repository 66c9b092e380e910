package catalog

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smBarcodePattern = regexp.MustCompile(`^SM[0-9A-F]{12}$`)

func TestRandomSMBarcode_MatchesInternalFormat(t *testing.T) {
	code, err := randomSMBarcode()
	require.NoError(t, err)
	assert.Regexp(t, smBarcodePattern, code)
	assert.Len(t, code, 14)
}

func TestRandomSMBarcode_VariesAcrossCalls(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := randomSMBarcode()
		require.NoError(t, err)
		seen[code] = true
	}
	// Overwhelmingly likely to be unique given 48 bits of randomness; a
	// collision here would indicate a broken RNG, not bad luck.
	assert.Greater(t, len(seen), 45)
}
