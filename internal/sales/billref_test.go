package sales

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var billRefPattern = regexp.MustCompile(`^\d{8}[0-9A-Z]{5}$`)

func TestGenerateBillRef_Format(t *testing.T) {
	ref, err := GenerateBillRef(time.Now())
	require.NoError(t, err)
	assert.Len(t, ref, 13)
	assert.Regexp(t, billRefPattern, ref)
}

func TestGenerateBillRef_TimestampTailTracksClock(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	ref, err := GenerateBillRef(now)
	require.NoError(t, err)
	assert.Equal(t, "45678901", ref[:8])
}

func TestEncodeBase36_PadsToWidth(t *testing.T) {
	assert.Equal(t, "00000", encodeBase36(0, 5))
	assert.Equal(t, "00001", encodeBase36(1, 5))
	assert.Equal(t, "0000Z", encodeBase36(35, 5))
	assert.Equal(t, "00010", encodeBase36(36, 5))
}

func TestGenerateBillRef_VariesAcrossCalls(t *testing.T) {
	now := time.Now()
	a, err := GenerateBillRef(now)
	require.NoError(t, err)
	b, err := GenerateBillRef(now)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
