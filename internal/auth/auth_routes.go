package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authMiddleware gin.HandlerFunc,
	loginLimiter gin.HandlerFunc,
) {
	r.POST("/login", loginLimiter, h.Login)
	r.GET("/me", authMiddleware, h.Me)
}
