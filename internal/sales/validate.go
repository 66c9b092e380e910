package sales

import "supermandi/pos-core/internal/apperror"

const (
	minQuantity   = 1
	maxQuantity   = 100000
	minPriceMinor = 1
	maxPriceMinor = 100000000
)

// ItemInput is one requested sale line before variant resolution.
type ItemInput struct {
	VariantID       string
	ProductID       string
	GlobalProductID string
	Quantity        int64
	PriceMinor      int64
	Name            string
	Barcode         string
}

// ValidateItems enforces the bounds spec.md §4.5/§8 require of every sale
// line: 1 <= quantity <= 100000, 1 <= priceMinor <= 100000000, and at least
// one item.
func ValidateItems(items []ItemInput) error {
	if len(items) == 0 {
		return apperror.New(apperror.KindValidation, "items_required", "at least one item is required")
	}
	for _, item := range items {
		if item.Quantity < minQuantity || item.Quantity > maxQuantity {
			return apperror.New(apperror.KindValidation, "invalid_item", "quantity out of bounds")
		}
		if item.PriceMinor < minPriceMinor || item.PriceMinor > maxPriceMinor {
			return apperror.New(apperror.KindValidation, "invalid_item", "priceMinor out of bounds")
		}
		if item.VariantID == "" && item.ProductID == "" && item.GlobalProductID == "" {
			return apperror.New(apperror.KindValidation, "invalid_item", "item must reference a variant, product, or global product")
		}
	}
	return nil
}

// Totals is the computed money summary of a sale, per spec.md §4.5/§8.
type Totals struct {
	SubtotalMinor int64
	DiscountMinor int64
	TotalMinor    int64
}

// ComputeTotals sums quantity*priceMinor across items and clamps
// total = max(0, subtotal - discount).
func ComputeTotals(items []ItemInput, discountMinor int64) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Quantity * item.PriceMinor
	}
	if discountMinor < 0 {
		discountMinor = 0
	}
	total := subtotal - discountMinor
	if total < 0 {
		total = 0
	}
	return Totals{SubtotalMinor: subtotal, DiscountMinor: discountMinor, TotalMinor: total}
}
