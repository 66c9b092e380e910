// Package purchase implements the supplier-receipt pipeline (C6): resolve
// each line to a product/variant, receive stock, and refresh store
// pricing, grounded on services/procure_to_pay_service's receipt-processing
// flow.
package purchase

// ItemInput is one requested purchase line before resolution.
type ItemInput struct {
	ProductID         string
	VariantID         string
	Barcode           string
	ProductName       string
	Quantity          int64
	Unit              string
	UnitCostMinor     int64
	SellingPriceMinor *int64
}
