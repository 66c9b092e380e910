package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleStatus is the sale state machine's state, per spec.md §4.5.
// CREATED is an alias for PENDING: no path in this module writes it (online
// sales are written PENDING, offline SALE_CREATED sales are written straight
// into their paid state), but a row carrying it is accepted, per spec.md's
// "Open questions" note — both are treated as synonyms everywhere the state
// machine reads status.
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCreated   SaleStatus = "CREATED"
	SaleStatusPaidCash  SaleStatus = "PAID_CASH"
	SaleStatusPaidUPI   SaleStatus = "PAID_UPI"
	SaleStatusDue       SaleStatus = "DUE"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// IsPending reports whether status is the PENDING/CREATED synonym pair.
func (s SaleStatus) IsPending() bool {
	return s == SaleStatusPending || s == SaleStatusCreated
}

// IsTerminal reports whether no further transition is possible.
func (s SaleStatus) IsTerminal() bool {
	return !s.IsPending()
}

// Sale is the bill-level aggregate. UNIQUE(billRef); UNIQUE(storeId, offlineReceiptRef) where present.
type Sale struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	StoreID           string     `gorm:"size:36;index;uniqueIndex:idx_sale_store_receipt" json:"storeId"`
	DeviceID          string     `gorm:"size:36" json:"deviceId"`
	BillRef           string     `gorm:"size:20;uniqueIndex" json:"billRef"`
	OfflineReceiptRef *string    `gorm:"size:64;uniqueIndex:idx_sale_store_receipt" json:"offlineReceiptRef,omitempty"`
	SubtotalMinor     int64      `json:"subtotalMinor"`
	DiscountMinor     int64      `json:"discountMinor"`
	TotalMinor        int64      `json:"totalMinor"`
	Currency          string     `gorm:"size:3;default:INR" json:"currency"`
	Status            SaleStatus `gorm:"size:20;index" json:"status"`
	CreatedAt         time.Time  `gorm:"index:idx_sale_created_at" json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

func (Sale) TableName() string { return "sales" }

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// SaleItem is a line item on a sale.
type SaleItem struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	SaleID        string `gorm:"size:36;index" json:"saleId"`
	VariantID     string `gorm:"size:36" json:"variantId"`
	Quantity      int64  `json:"quantity"`
	PriceMinor    int64  `json:"priceMinor"`
	LineTotalMinor int64 `json:"lineTotalMinor"`
	ItemName      string `gorm:"size:300" json:"itemName"`
	Barcode       string `gorm:"size:20" json:"barcode,omitempty"`
}

func (SaleItem) TableName() string { return "sale_items" }

func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == "" {
		si.ID = uuid.New().String()
	}
	return nil
}

// PaymentMode is how a sale/collection was settled.
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "CASH"
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeDue  PaymentMode = "DUE"
)

// PaymentStatus is the payment row's own status (distinct from Sale.Status).
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusDue     PaymentStatus = "DUE"
)

// Payment records a settlement attempt against a sale.
type Payment struct {
	ID           string        `gorm:"primaryKey;size:36" json:"id"`
	SaleID       *string       `gorm:"size:36;index" json:"saleId,omitempty"`
	Mode         PaymentMode   `gorm:"size:10" json:"mode"`
	Status       PaymentStatus `gorm:"size:10" json:"status"`
	AmountMinor  int64         `json:"amountMinor"`
	ProviderRef  *string       `gorm:"size:100" json:"providerRef,omitempty"`
	ConfirmedAt  *time.Time    `json:"confirmedAt,omitempty"`
	CreatedAt    time.Time     `gorm:"index:idx_payment_created_at" json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Collection is a free-standing cash/UPI collection, not tied to a sale.
type Collection struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	StoreID     string        `gorm:"size:36;index" json:"storeId"`
	DeviceID    string        `gorm:"size:36" json:"deviceId"`
	AmountMinor int64         `json:"amountMinor"`
	Mode        PaymentMode   `gorm:"size:10" json:"mode"`
	Reference   string        `gorm:"size:100" json:"reference,omitempty"`
	Status      PaymentStatus `gorm:"size:10" json:"status"`
	CreatedAt   time.Time     `gorm:"index:idx_collection_created_at" json:"createdAt"`
}

func (Collection) TableName() string { return "collections" }

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
