package middleware

import (
	"go-inventory/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger puts a logger tagged with the request id into the request
// context so services can log through contextutil without knowing gin.
// It expects RequestID to run first.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetString(RequestIDKey)

		reqLogger := logger.With(zap.String("request_id", rid))

		ctx := contextutil.WithLogger(c.Request.Context(), reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
