package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/models"
)

// Resolver looks up the device/store pair bound to a device token, grounded
// on services/user_management_service's credential-resolution repository
// call shape.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

func (r *Resolver) resolve(token string) (Device, *apperror.Error) {
	if token == "" {
		return Device{}, apperror.ErrDeviceUnauthorized
	}

	var device models.PosDevice
	err := r.DB.Where("device_token = ?", token).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Device{}, apperror.ErrDeviceUnauthorized
	}
	if err != nil {
		return Device{}, apperror.ErrDatabaseUnavail
	}

	d := Device{DeviceID: device.ID, DeviceActive: device.Active}

	if device.StoreID == nil || *device.StoreID == "" {
		return d, apperror.ErrDeviceNotEnrolled
	}

	var store models.Store
	err = r.DB.Where("id = ?", *device.StoreID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d, apperror.ErrDeviceNotEnrolled
	}
	if err != nil {
		return d, apperror.ErrDatabaseUnavail
	}

	d.StoreID = store.ID
	d.StoreName = store.Name
	d.StoreActive = store.Active()
	return d, nil
}

// Middleware enforces the full C2 contract: unknown/missing token, device
// inactive, device not enrolled, store inactive, and store-binding mismatch
// against any client-supplied storeId found in path params, query, or JSON
// body (recursively, including a nested "payload" object), per spec.md §4.2.
func Middleware(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		device, appErr := resolver.resolve(c.GetHeader(deviceTokenHeader))
		if appErr != nil {
			abort(c, appErr)
			return
		}
		if !device.DeviceActive {
			abort(c, apperror.ErrDeviceInactive)
			return
		}
		if !device.StoreActive {
			abort(c, apperror.ErrStoreInactive)
			return
		}
		if mismatch := findStoreMismatch(c, device.StoreID); mismatch {
			abort(c, apperror.ErrStoreMismatch)
			return
		}

		attach(c, device)
		c.Next()
	}
}

// ReadOnly is the permissive variant spec.md §4.2 names for status endpoints:
// it resolves and attaches whatever it can but never aborts on
// inactive/mismatch state, so a disabled device can still see its own status.
func ReadOnly(resolver *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		device, appErr := resolver.resolve(c.GetHeader(deviceTokenHeader))
		if appErr != nil {
			abort(c, appErr)
			return
		}
		attach(c, device)
		c.Next()
	}
}

func abort(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.HTTPStatus(), err.ToBody())
}

// findStoreMismatch reports whether any client-supplied storeId (path param,
// query param, or JSON body field, including one nested under "payload")
// disagrees with the bound storeId.
func findStoreMismatch(c *gin.Context, boundStoreID string) bool {
	if id := c.Param("storeId"); id != "" && id != boundStoreID {
		return true
	}
	if id := c.Query("storeId"); id != "" && id != boundStoreID {
		return true
	}

	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return false
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return false
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return false
	}

	return bodyStoreIDMismatch(payload, boundStoreID)
}

// bodyStoreIDMismatch walks obj looking for any "storeId" key at the top
// level or inside a nested "payload" object, per the "recursively" language
// in spec.md §4.2.
func bodyStoreIDMismatch(obj map[string]interface{}, boundStoreID string) bool {
	if v, ok := obj["storeId"]; ok {
		if s, ok := v.(string); ok && s != "" && s != boundStoreID {
			return true
		}
	}
	if nested, ok := obj["payload"].(map[string]interface{}); ok {
		if bodyStoreIDMismatch(nested, boundStoreID) {
			return true
		}
	}
	return false
}

// TouchHeartbeat updates lastSeenOnline for the resolved device; used by the
// /ui-status endpoint per spec.md §6.
func (r *Resolver) TouchHeartbeat(deviceID string) error {
	now := time.Now().UTC()
	return r.DB.Model(&models.PosDevice{}).
		Where("id = ?", deviceID).
		Update("last_seen_online", &now).Error
}
