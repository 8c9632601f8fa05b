package middleware

import (
	"strings"

	"go-inventory/internal/auth"
	autherrors "go-inventory/internal/auth/errors"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/contextutil"
	"go-inventory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const UserIDKey = "user_id"

// Auth requires a valid "Authorization: Bearer <token>" header. On success the
// claims are stored under auth.ClaimsKey and the user id is attached to the
// request context and logger.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !found || raw == "" {
			response.Abort(c, autherrors.ErrMissingToken.HTTPStatus, autherrors.ErrMissingToken.Message)
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			contextutil.GetLogger(c.Request.Context(), nil).
				Debug("bearer token rejected", zap.Error(err))
			response.Abort(c, httpErr.Status, httpErr.Message)
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Set(UserIDKey, claims.Subject)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, claims.Subject)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(zap.String("user_id", claims.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
