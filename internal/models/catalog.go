package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GlobalProduct is the cross-store catalog identity created on first unseen
// scan code and never deleted by the core.
type GlobalProduct struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	GlobalName string    `gorm:"size:300" json:"globalName"`
	Category   string    `gorm:"size:100" json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (GlobalProduct) TableName() string { return "global_products" }

func (p *GlobalProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// GlobalProductIdentifier is the core de-duplication invariant: UNIQUE(codeType, normalizedValue).
type GlobalProductIdentifier struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	GlobalProductID string    `gorm:"size:36;index" json:"globalProductId"`
	CodeType        string    `gorm:"size:30;uniqueIndex:idx_identifier_code" json:"codeType"`
	RawValue        string    `gorm:"size:200" json:"rawValue"`
	NormalizedValue string    `gorm:"size:200;uniqueIndex:idx_identifier_code" json:"normalizedValue"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (GlobalProductIdentifier) TableName() string { return "global_product_identifiers" }

func (i *GlobalProductIdentifier) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Product is the legacy parent entity a Variant belongs to. GlobalProductID
// bridges it to the cross-store catalog identity introduced by C3: every
// Product created through scan resolution carries one, so a sale item
// resolved down to a Variant can walk Variant -> Product -> GlobalProductID
// to reach the key StoreInventory/BulkInventory are keyed on.
type Product struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Name            string    `gorm:"size:300" json:"name"`
	GlobalProductID *string   `gorm:"size:36;index" json:"globalProductId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// BaseUnit is the divisible-product base unit, g or ml.
type BaseUnit string

const (
	BaseUnitGram  BaseUnit = "g"
	BaseUnitMilli BaseUnit = "ml"
)

// Variant is a specific sellable SKU under a product. The composite
// (ProductID, UnitBase, SizeBase) identifies a standard pack.
type Variant struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID string    `gorm:"size:36;index;uniqueIndex:idx_variant_pack" json:"productId"`
	Name      string    `gorm:"size:300" json:"name"`
	Currency  string    `gorm:"size:3;default:INR" json:"currency"`
	UnitBase  *BaseUnit `gorm:"size:3;uniqueIndex:idx_variant_pack" json:"unitBase,omitempty"`
	SizeBase  *int64    `gorm:"uniqueIndex:idx_variant_pack" json:"sizeBase,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Variant) TableName() string { return "variants" }

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

// BarcodeType distinguishes internally generated SM codes from manufacturer ones.
type BarcodeType string

const (
	BarcodeTypeSupermandi   BarcodeType = "supermandi"
	BarcodeTypeManufacturer BarcodeType = "manufacturer"
)

// Barcode links a variant to one or more printed/scanned codes.
type Barcode struct {
	Barcode     string      `gorm:"primaryKey;size:20" json:"barcode"`
	VariantID   string      `gorm:"size:36;index;uniqueIndex:idx_barcode_variant_type" json:"variantId"`
	BarcodeType BarcodeType `gorm:"size:20;uniqueIndex:idx_barcode_variant_type" json:"barcodeType"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (Barcode) TableName() string { return "barcodes" }

// StoreProduct is the per-store materialization of a global product.
type StoreProduct struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	StoreID            string    `gorm:"size:36;uniqueIndex:idx_store_product" json:"storeId"`
	GlobalProductID     string    `gorm:"size:36;uniqueIndex:idx_store_product;index" json:"globalProductId"`
	StoreDisplayName    string    `gorm:"size:300" json:"storeDisplayName,omitempty"`
	SellPriceMinor      *int64    `json:"sellPriceMinor,omitempty"`
	PurchasePriceMinor  *int64    `json:"purchasePriceMinor,omitempty"`
	Unit                string    `gorm:"size:20" json:"unit,omitempty"`
	VariantID           *string   `gorm:"size:36" json:"variant,omitempty"`
	Currency            string    `gorm:"size:3;default:INR" json:"currency"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func (StoreProduct) TableName() string { return "store_products" }

func (sp *StoreProduct) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	return nil
}

// RetailerVariant links a variant to a store with a store-specific selling price.
type RetailerVariant struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	StoreID         string     `gorm:"size:36;uniqueIndex:idx_retailer_variant" json:"storeId"`
	VariantID       string     `gorm:"size:36;uniqueIndex:idx_retailer_variant;index" json:"variantId"`
	SellingPriceMinor *int64   `json:"sellingPriceMinor,omitempty"`
	PriceUpdatedAt  *time.Time `json:"priceUpdatedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (RetailerVariant) TableName() string { return "retailer_variants" }

func (rv *RetailerVariant) BeforeCreate(tx *gorm.DB) error {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	return nil
}
