package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/apperror"
	"supermandi/pos-core/internal/auth"
	"supermandi/pos-core/internal/models"
)

// registerRoutes mounts every endpoint named in §6, plus the admin-only read
// endpoints this module adds on top of it (see DESIGN.md).
func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", s.handleHealth)

	pos := router.Group("/api/v1/pos")
	{
		pos.POST("/enroll", s.handleEnroll)

		authed := pos.Group("")
		authed.Use(auth.Middleware(s.Resolver))
		{
			authed.POST("/scan/resolve", s.handleScanResolve)
			authed.POST("/products/price", s.handleSetPrice)

			authed.POST("/sales", s.handleCreateSale)
			authed.POST("/sales/:saleId/confirm", s.handleConfirmSale)
			authed.POST("/sales/:saleId/cancel", s.handleCancelSale)

			authed.POST("/payments/upi/init", s.handleUPIInit)
			authed.POST("/payments/upi/confirm-manual", s.handleUPIConfirmManual)
			authed.POST("/payments/cash", s.handleConfirmMode(models.PaymentModeCash))
			authed.POST("/payments/due", s.handleConfirmMode(models.PaymentModeDue))

			authed.GET("/bills", s.handleListBills)
			authed.GET("/bills/:saleId", s.handleGetBill)

			authed.POST("/purchases", s.handleCreatePurchase)

			authed.POST("/sync", s.handleSync)
			authed.POST("/events", s.handleTelemetry)

			authed.GET("/stores/:storeId/bulk-inventory/:productId", s.handleBulkInventory)
		}

		readOnly := pos.Group("")
		readOnly.Use(auth.ReadOnly(s.Resolver))
		{
			readOnly.GET("/devices/me", s.handleDeviceMe)
			readOnly.GET("/ui-status", s.handleUIStatus)
			readOnly.GET("/stores/:storeId/status", s.handleStoreStatus)
		}
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(s.adminAuth())
	{
		admin.GET("/stores/:id/ledger", s.handleAdminLedger)
		admin.GET("/stores/:id/inventory", s.handleAdminInventory)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// adminAuth gates /api/v1/admin behind x-admin-token, 503-ing the whole
// surface when no admin secret is configured, per spec.md §6.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Cfg.AdminEnabled() {
			respondError(c, apperror.ErrAdminDisabled)
			c.Abort()
			return
		}
		if c.GetHeader(adminTokenHeader) != s.Cfg.AdminToken {
			respondError(c, apperror.ErrAdminUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

const adminTokenHeader = "x-admin-token"
