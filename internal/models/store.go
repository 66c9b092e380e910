// Package models holds the persisted entities of §3, following
// services/order_service/src/models/order.go's GORM-tag conventions
// (uniqueIndex, size, foreignKey) and its BeforeCreate UUID-assignment hooks.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store carries the active/inactive gate the whole write path hangs off:
// a store is active iff it carries a non-empty UPI VPA.
type Store struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id"`
	Name                 string    `gorm:"size:200" json:"name"`
	UpiVpa               string    `gorm:"size:100" json:"upiVpa,omitempty"`
	ScanLookupV2Enabled  bool      `gorm:"default:false" json:"scanLookupV2Enabled"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (Store) TableName() string { return "stores" }

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Active reports the store's active invariant from spec.md §3.
func (s *Store) Active() bool {
	return s.UpiVpa != ""
}

// PosDevice is a handheld device optionally bound to a store.
type PosDevice struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	StoreID            *string    `gorm:"size:36;index" json:"storeId,omitempty"`
	DeviceToken         *string    `gorm:"size:128;uniqueIndex" json:"-"`
	Active              bool       `gorm:"default:true" json:"active"`
	Label               string     `gorm:"size:100" json:"label"`
	DeviceType          string     `gorm:"size:50" json:"deviceType"`
	PrintingMode        string     `gorm:"size:50" json:"printingMode"`
	LastSeenOnline      *time.Time `json:"lastSeenOnline,omitempty"`
	LastSyncAt          *time.Time `json:"lastSyncAt,omitempty"`
	PendingOutboxCount  int        `json:"pendingOutboxCount"`
	AppVersion          string     `gorm:"size:30" json:"appVersion"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (PosDevice) TableName() string { return "pos_devices" }

func (d *PosDevice) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// DeviceEnrollmentCode is a short, human-readable, single-use binding code.
type DeviceEnrollmentCode struct {
	Code      string     `gorm:"primaryKey;size:20" json:"code"`
	StoreID   string     `gorm:"size:36;index" json:"storeId"`
	ExpiresAt time.Time  `json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (DeviceEnrollmentCode) TableName() string { return "device_enrollment_codes" }
