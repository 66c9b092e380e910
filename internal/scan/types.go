// Package scan implements the scan-to-product entry point: mapping a raw
// barcode/QR payload plus an optional format hint to a canonical
// (codeType, normalizedValue) pair, grounded on the parsing style of
// services/order_service/src/utils (string/regex-driven normalizers, no I/O).
package scan

// Result is the outcome of Normalize. A nil *Result means the input could
// not be normalized at all (spec.md §4.1 step 5).
type Result struct {
	CodeType       string            `json:"codeType"`
	NormalizedValue string           `json:"normalizedValue"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}
