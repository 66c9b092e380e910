package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"supermandi/pos-core/internal/auth"
)

// handleTelemetry implements POST /events: free-form device telemetry the
// core accepts and logs but never validates against a schema — the device
// fleet's event shape evolves independently of the core's release cadence.
// It always returns 200; a malformed body is simply dropped.
func (s *Server) handleTelemetry(c *gin.Context) {
	var body map[string]interface{}
	_ = c.ShouldBindJSON(&body)

	device := auth.FromContext(c)
	if s.Log != nil {
		s.Log.Info("device telemetry",
			zap.String("deviceId", device.DeviceID),
			zap.String("storeId", device.StoreID),
			zap.Any("body", body))
	}

	c.Status(http.StatusOK)
}
