package user

import "github.com/gin-gonic/gin"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authMiddleware gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	users := r.Group("/usuarios")
	users.Use(authMiddleware)

	{
		users.GET("", h.GetAll)
		users.GET("/total", h.Total)
		users.GET("/export", h.Export)
		users.POST("", idempotency, h.Create)
		users.GET("/:id", h.GetById)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}
