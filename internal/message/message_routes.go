package message

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	messages := r.Group("/mensagens")
	messages.Use(authMiddleware)

	{
		messages.GET("/rabbitmq", h.ReadRabbitMQ)
	}
}
