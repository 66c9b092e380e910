package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/models"
)

type deviceMeResponse struct {
	DeviceID  string `json:"deviceId"`
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
}

func (s *Server) handleDeviceMe(c *gin.Context) {
	device := auth.FromContext(c)
	respondJSON(c, http.StatusOK, deviceMeResponse{
		DeviceID:  device.DeviceID,
		StoreID:   device.StoreID,
		StoreName: device.StoreName,
	})
}

type uiStatusResponse struct {
	DeviceID           string `json:"deviceId"`
	DeviceActive       bool   `json:"deviceActive"`
	StoreID            string `json:"storeId"`
	StoreName          string `json:"storeName"`
	StoreActive        bool   `json:"storeActive"`
	PendingOutboxCount int    `json:"pendingOutboxCount"`
}

// handleUIStatus returns the device+store heartbeat snapshot and touches
// lastSeenOnline, per spec.md §6.
func (s *Server) handleUIStatus(c *gin.Context) {
	device := auth.FromContext(c)

	if err := s.Resolver.TouchHeartbeat(device.DeviceID); err != nil {
		respondError(c, err)
		return
	}

	var pos models.PosDevice
	if err := s.DB.Where("id = ?", device.DeviceID).First(&pos).Error; err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, uiStatusResponse{
		DeviceID:           device.DeviceID,
		DeviceActive:       device.DeviceActive,
		StoreID:            device.StoreID,
		StoreName:          device.StoreName,
		StoreActive:        device.StoreActive,
		PendingOutboxCount: pos.PendingOutboxCount,
	})
}
