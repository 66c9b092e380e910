package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProcessedEvent is the offline-sync dedup table: eventId is globally unique,
// re-applying it is a no-op.
type ProcessedEvent struct {
	EventID    string    `gorm:"primaryKey;size:36" json:"eventId"`
	DeviceID   string    `gorm:"size:36" json:"deviceId"`
	StoreID    string    `gorm:"size:36;index" json:"storeId"`
	EventType  string    `gorm:"size:50" json:"eventType"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (ProcessedEvent) TableName() string { return "processed_events" }

// ScanMode is the intent behind a scan: sale lookup or catalog digitisation.
type ScanMode string

const (
	ScanModeSell     ScanMode = "SELL"
	ScanModeDigitise ScanMode = "DIGITISE"
)

// ScanAction is the outcome the resolver returned for a scan.
type ScanAction string

const (
	ScanActionAddToCart       ScanAction = "ADD_TO_CART"
	ScanActionPromptPrice     ScanAction = "PROMPT_PRICE"
	ScanActionDigitised       ScanAction = "DIGITISED"
	ScanActionAlreadyDigitised ScanAction = "ALREADY_DIGITISED"
	ScanActionIgnored         ScanAction = "IGNORED"
)

// ScanEvent is the durable record of a scan, also the basis of the
// (storeId, mode, scanValue, createdAt DESC) dedup index named in spec.md §6.
type ScanEvent struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	StoreID   string     `gorm:"size:36;index:idx_scan_dedup" json:"storeId"`
	DeviceID  *string    `gorm:"size:36" json:"deviceId,omitempty"`
	ScanValue string     `gorm:"size:200;index:idx_scan_dedup" json:"scanValue"`
	Mode      ScanMode   `gorm:"size:10;index:idx_scan_dedup" json:"mode"`
	Action    ScanAction `gorm:"size:20" json:"action"`
	VariantID *string    `gorm:"size:36" json:"variantId,omitempty"`
	CreatedAt time.Time  `gorm:"index:idx_scan_dedup" json:"createdAt"`
}

func (ScanEvent) TableName() string { return "scan_events" }

func (se *ScanEvent) BeforeCreate(tx *gorm.DB) error {
	if se.ID == "" {
		se.ID = uuid.New().String()
	}
	return nil
}
