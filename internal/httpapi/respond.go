// Package httpapi is the thin Gin HTTP surface (§6): route registration and
// request/response DTOs only. Every handler below delegates the actual
// decision-making to the internal/{auth,scan,catalog,inventory,sales,
// purchase,sync} packages and just translates between JSON and Go calls,
// grounded on services/order_service/src/controllers's handler shape.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"supermandi/pos-core/internal/apperror"
)

// respondError renders any error uniformly. A non-*apperror.Error is an
// unexpected internal failure and is never echoed back verbatim — it's
// wrapped so the client only ever sees the stable "internal" token.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.New(apperror.KindInternal, "internal", "an internal error occurred")
	}
	c.JSON(appErr.HTTPStatus(), appErr.ToBody())
}

func respondJSON(c *gin.Context, status int, body interface{}) {
	c.JSON(status, body)
}

func badRequest(c *gin.Context, token, message string) {
	respondError(c, apperror.New(apperror.KindValidation, token, message))
}
