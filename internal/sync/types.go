// Package sync implements the offline batch-sync engine (C7): a device that
// was disconnected replays its local outbox as a heterogeneous batch of
// events, each applied exactly once and independently of the others, per
// spec.md §4.7.
package sync

import (
	"supermandi/pos-core/internal/models"
	"supermandi/pos-core/internal/purchase"
	"supermandi/pos-core/internal/sales"
)

// EventType names one outbox entry's kind.
type EventType string

const (
	EventProductUpsert    EventType = "PRODUCT_UPSERT"
	EventProductPriceSet  EventType = "PRODUCT_PRICE_SET"
	EventSaleCreated      EventType = "SALE_CREATED"
	EventPaymentCash      EventType = "PAYMENT_CASH"
	EventPaymentDue       EventType = "PAYMENT_DUE"
	EventCollectionCreated EventType = "COLLECTION_CREATED"
	EventPurchaseSubmit   EventType = "PURCHASE_SUBMIT"
	EventPurchaseCreated  EventType = "PURCHASE_CREATED"
)

// Event is one offline outbox entry. Only the fields relevant to its Type
// are populated; the rest are left zero.
type Event struct {
	EventID string
	Type    EventType

	// PRODUCT_UPSERT / PRODUCT_PRICE_SET
	Barcode           string
	ProductName       string
	SellingPriceMinor *int64

	// SALE_CREATED / PAYMENT_CASH / PAYMENT_DUE
	SaleID            string
	Items             []sales.ItemInput
	DiscountMinor     int64
	Currency          string
	OfflineReceiptRef string
	PaymentMode       models.PaymentMode

	// COLLECTION_CREATED
	CollectionID string
	AmountMinor  int64
	Mode         models.PaymentMode
	Reference    string

	// PURCHASE_SUBMIT / PURCHASE_CREATED
	PurchaseID    string
	SupplierName  string
	PurchaseItems []purchase.ItemInput
}

// Result is one event's processing outcome.
type Result struct {
	EventID string `json:"eventId"`
	Status  string `json:"status"` // applied | duplicate_ignored | rejected
	Error   string `json:"error,omitempty"`
}

// SaleMapping reports the server-side sale a SALE_CREATED event produced,
// so the device can reconcile its local id with any server-assigned fields.
type SaleMapping struct {
	EventID string `json:"eventId"`
	SaleID  string `json:"saleId"`
}

// CollectionMapping is the COLLECTION_CREATED analogue of SaleMapping.
type CollectionMapping struct {
	EventID      string `json:"eventId"`
	CollectionID string `json:"collectionId"`
}

// BatchResult is the response payload for POST /sync.
type BatchResult struct {
	Results            []Result            `json:"results"`
	SaleMappings       []SaleMapping       `json:"saleMappings,omitempty"`
	CollectionMappings []CollectionMapping `json:"collectionMappings,omitempty"`
}

const (
	statusApplied           = "applied"
	statusDuplicateIgnored  = "duplicate_ignored"
	statusRejected          = "rejected"
)
