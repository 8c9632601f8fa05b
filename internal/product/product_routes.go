package product

import "github.com/gin-gonic/gin"

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authMiddleware gin.HandlerFunc,
	idempotency gin.HandlerFunc,
) {
	products := r.Group("/produtos")
	products.Use(authMiddleware)

	{
		products.GET("", h.GetAll)
		products.GET("/total", h.Total)
		products.GET("/export", h.Export)
		products.POST("", idempotency, h.Create)
		products.GET("/:id", h.GetById)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
	}
}
