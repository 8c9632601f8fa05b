package product

import (
	"net/http"

	producterrors "go-inventory/internal/product/errors"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/export"
	"go-inventory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var fieldMessages = apperror.FieldMessages{
	"code":         producterrors.ErrCodeRequired,
	"description":  producterrors.ErrDescriptionRequired,
	"departmentId": producterrors.ErrDepartmentRequired,
	"price":        producterrors.ErrInvalidPrice,
}

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("product.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("product.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("product request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Warn("product request failed", append(fields, zap.String("message", httpErr.Message))...)
	}
	response.Error(c, httpErr.Status, httpErr.Message)
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, producterrors.ErrInvalidProductID)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err, fieldMessages))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Total(c *gin.Context) {
	total, err := h.service.Count(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Total(c, total)
}

func (h *Handler) GetById(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err, fieldMessages))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) Export(c *gin.Context) {
	buf, err := h.service.Export(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	export.Attachment(c, "produtos.xlsx", buf)
}
