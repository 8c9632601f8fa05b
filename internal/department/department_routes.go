package department

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authMiddleware gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	departments := r.Group("/departamentos")

	departments.Use(authMiddleware)

	{
		departments.GET("", h.GetAll)
		departments.GET("/total", h.Total)
		departments.GET("/export", h.Export)
		departments.POST("", idempotency, h.Create)
		departments.GET("/:id", h.GetById)
		departments.PUT("/:id", h.Update)
		departments.DELETE("/:id", h.Delete)
	}
}
