// Package auth resolves the x-device-token header to a bound device/store
// pair and enforces the store-binding invariant every POS write depends on,
// grounded on services/order_service/src/controllers's middleware style and
// services/user_management_service's credential-resolution flow.
package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	deviceTokenHeader = "x-device-token"

	ctxDeviceID    = "auth.deviceId"
	ctxStoreID     = "auth.storeId"
	ctxStoreName   = "auth.storeName"
	ctxDeviceActive = "auth.deviceActive"
	ctxStoreActive  = "auth.storeActive"
)

// Device is the resolved identity attached to the gin context by Middleware.
type Device struct {
	DeviceID     string
	StoreID      string
	StoreName    string
	DeviceActive bool
	StoreActive  bool
}

// FromContext reads the Device a prior Middleware call attached. Handlers
// downstream of Middleware/ReadOnly can assume it is always present.
func FromContext(c *gin.Context) Device {
	return Device{
		DeviceID:     c.GetString(ctxDeviceID),
		StoreID:      c.GetString(ctxStoreID),
		StoreName:    c.GetString(ctxStoreName),
		DeviceActive: c.GetBool(ctxDeviceActive),
		StoreActive:  c.GetBool(ctxStoreActive),
	}
}

func attach(c *gin.Context, d Device) {
	c.Set(ctxDeviceID, d.DeviceID)
	c.Set(ctxStoreID, d.StoreID)
	c.Set(ctxStoreName, d.StoreName)
	c.Set(ctxDeviceActive, d.DeviceActive)
	c.Set(ctxStoreActive, d.StoreActive)
}
