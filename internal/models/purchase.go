package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase is a supplier receipt header.
type Purchase struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	StoreID      string    `gorm:"size:36;index" json:"storeId"`
	SupplierName string    `gorm:"size:200" json:"supplierName,omitempty"`
	TotalMinor   int64     `json:"totalMinor"`
	Currency     string    `gorm:"size:3;default:INR" json:"currency"`
	CreatedAt    time.Time `json:"createdAt"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

func (Purchase) TableName() string { return "purchases" }

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// PurchaseItem is a line item on a purchase.
type PurchaseItem struct {
	ID             string  `gorm:"primaryKey;size:36" json:"id"`
	PurchaseID     string  `gorm:"size:36;index" json:"purchaseId"`
	ProductID      string  `gorm:"size:36" json:"productId"`
	VariantID      *string `gorm:"size:36" json:"variantId,omitempty"`
	Quantity       int64   `json:"quantity"`
	Unit           string  `gorm:"size:20" json:"unit,omitempty"`
	QuantityBase   *int64  `json:"quantityBase,omitempty"`
	UnitCostMinor  int64   `json:"unitCostMinor"`
	LineTotalMinor int64   `json:"lineTotalMinor"`
}

func (PurchaseItem) TableName() string { return "purchase_items" }

func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}
