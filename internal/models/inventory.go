package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreInventory is the authoritative per-store quantity for a global product.
type StoreInventory struct {
	StoreID         string `gorm:"primaryKey;size:36" json:"storeId"`
	GlobalProductID string `gorm:"primaryKey;size:36" json:"globalProductId"`
	AvailableQty    int64  `gorm:"default:0" json:"availableQty"`
}

func (StoreInventory) TableName() string { return "store_inventory" }

// BulkInventory is the authoritative quantity for divisible products, held in
// base units (grams/millilitres). BaseUnit is immutable once the row exists.
type BulkInventory struct {
	StoreID      string   `gorm:"primaryKey;size:36" json:"storeId"`
	ProductID    string   `gorm:"primaryKey;size:36" json:"productId"`
	BaseUnit     BaseUnit `gorm:"size:3" json:"baseUnit"`
	QuantityBase int64    `gorm:"default:0" json:"quantityBase"`
}

func (BulkInventory) TableName() string { return "bulk_inventory" }

// MovementType is the kind of stock movement recorded on the ledger.
type MovementType string

const (
	MovementReceive    MovementType = "RECEIVE"
	MovementSell       MovementType = "SELL"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// ReferenceType names the kind of record a ledger movement is attributed to.
type ReferenceType string

const (
	ReferenceSale     ReferenceType = "SALE"
	ReferencePurchase ReferenceType = "PURCHASE"
)

// InventoryLedger is the append-only movement log. For every (storeId,
// globalProductId), SUM(quantity) == StoreInventory.availableQty.
type InventoryLedger struct {
	ID              string         `gorm:"primaryKey;size:36" json:"id"`
	StoreID         string         `gorm:"size:36;index:idx_ledger_store_product" json:"storeId"`
	GlobalProductID string         `gorm:"size:36;index:idx_ledger_store_product" json:"globalProductId"`
	MovementType    MovementType   `gorm:"size:20" json:"movementType"`
	Quantity        int64          `json:"quantity"`
	UnitCostMinor   *int64         `json:"unitCostMinor,omitempty"`
	UnitSellMinor   *int64         `json:"unitSellMinor,omitempty"`
	Reason          string         `gorm:"size:200" json:"reason,omitempty"`
	ReferenceType   *ReferenceType `gorm:"size:20" json:"referenceType,omitempty"`
	ReferenceID     *string        `gorm:"size:36" json:"referenceId,omitempty"`
	CreatedAt       time.Time      `gorm:"index:idx_ledger_created_at" json:"createdAt"`
}

func (InventoryLedger) TableName() string { return "inventory_ledger" }

func (l *InventoryLedger) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
