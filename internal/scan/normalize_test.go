package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Nil(t, Normalize("", "   "))
	assert.Nil(t, Normalize("qr", ""))
}

func TestNormalize_GS1Concatenated(t *testing.T) {
	// ]d2 prefix + AI01 (GTIN-14) + AI15 (expiry)
	r := Normalize("", "]d2010401234567890115230101")
	require.NotNil(t, r)
	assert.Equal(t, "GS1", r.CodeType)
	assert.Equal(t, "04012345678901", r.NormalizedValue)
	assert.Equal(t, "230101", r.Metadata["expiry"])
}

func TestNormalize_GS1Parenthesized(t *testing.T) {
	r := Normalize("gs1", "(01)04012345678901(10)BATCH7(17)251231")
	require.NotNil(t, r)
	assert.Equal(t, "GS1", r.CodeType)
	assert.Equal(t, "04012345678901", r.NormalizedValue)
	assert.Equal(t, "BATCH7", r.Metadata["batch"])
	assert.Equal(t, "251231", r.Metadata["expiry"])
}

func TestNormalize_GS1WithGroupSeparator(t *testing.T) {
	r := Normalize("", "010401234567890110BATCH7\x1d17251231")
	require.NotNil(t, r)
	assert.Equal(t, "04012345678901", r.NormalizedValue)
	assert.Equal(t, "BATCH7", r.Metadata["batch"])
	assert.Equal(t, "251231", r.Metadata["expiry"])
}

func TestNormalize_UPCEExpansion(t *testing.T) {
	// number system 0, compressed digits 123456, check digit 5; d6=6 falls
	// in the {5..9} bucket: num d1 d2 d3 d4 d5 0000 d6 check.
	r := Normalize("upc_e", "01234565")
	require.NotNil(t, r)
	assert.Equal(t, "UPC", r.CodeType)
	assert.Equal(t, "00012345000065", r.NormalizedValue)
}

func TestNormalize_UPCEMiddleDigitBuckets(t *testing.T) {
	cases := []struct {
		name string
		upce string
		upca string
	}{
		{"d6 in {0,1,2}", "01234505", "012000003455"},
		{"d6 == 3", "01234535", "012300000455"},
		{"d6 == 4", "01234545", "012340000055"},
		{"d6 in {5..9}", "01234565", "012345000065"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := expandUPCE(tc.upce)
			require.True(t, ok)
			assert.Equal(t, tc.upca, got)
		})
	}
}

func TestNormalize_NumericFallbackWithEANHint(t *testing.T) {
	r := Normalize("ean", "04012345678901")
	require.NotNil(t, r)
	assert.Equal(t, "EAN", r.CodeType)
	assert.Equal(t, "04012345678901", r.NormalizedValue)
}

func TestNormalize_NumericFallbackPadsShortCodes(t *testing.T) {
	r := Normalize("", "12345678") // 8 digits, no hint
	require.NotNil(t, r)
	assert.Equal(t, "00000012345678", r.NormalizedValue)
}

func TestNormalize_TextFallback(t *testing.T) {
	r := Normalize("qr", "https://example.com/p/abc\x01\x02")
	require.NotNil(t, r)
	assert.Equal(t, "QR_TEXT", r.CodeType)
	assert.Equal(t, "https://example.com/p/abc", r.NormalizedValue)
}

func TestNormalize_TextFallbackUnknownHint(t *testing.T) {
	r := Normalize("", "some-custom-label")
	require.NotNil(t, r)
	assert.Equal(t, "UNKNOWN_TEXT", r.CodeType)
}

func TestNormalize_Idempotent_GS1(t *testing.T) {
	first := Normalize("gs1", "]d2010401234567890115230101")
	require.NotNil(t, first)
	second := Normalize("gs1", first.NormalizedValue)
	require.NotNil(t, second)
	assert.Equal(t, first.NormalizedValue, second.NormalizedValue)
}

func TestNormalize_Idempotent_UPCE(t *testing.T) {
	first := Normalize("upc_e", "01234565")
	require.NotNil(t, first)
	second := Normalize("upc_e", first.NormalizedValue)
	require.NotNil(t, second)
	assert.Equal(t, first.NormalizedValue, second.NormalizedValue)
}

func TestNormalize_Idempotent_Text(t *testing.T) {
	first := Normalize("qr", "label-123")
	require.NotNil(t, first)
	second := Normalize("qr", first.NormalizedValue)
	require.NotNil(t, second)
	assert.Equal(t, first.NormalizedValue, second.NormalizedValue)
}
