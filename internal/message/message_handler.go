package message

import (
	"net/http"
	"strconv"

	messageerrors "go-inventory/internal/message/errors"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ReadRabbitMQ(c *gin.Context) {
	max := DefaultMax
	if raw := c.Query("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, messageerrors.ErrInvalidMax.HTTPStatus, messageerrors.ErrInvalidMax.Message)
			return
		}
		max = n
	}

	messages, err := h.service.Read(c.Request.Context(), max)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}
	if messages == nil {
		messages = []string{}
	}

	response.Success(c, http.StatusOK, response.MessagesBody{
		Success:  true,
		Count:    len(messages),
		Messages: messages,
	})
}
