package auth

import (
	"net/http"

	autherrors "go-inventory/internal/auth/errors"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, logger: l}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("login failed", zap.Error(err))
		}
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me echoes the identity carried by the verified bearer token.
func (h *Handler) Me(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, autherrors.ErrMissingToken.Message)
		return
	}

	response.Success(c, http.StatusOK, MeResponse{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
	})
}

func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok && claims != nil
}
