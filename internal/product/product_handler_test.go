package product_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory/internal/product"
	producterrors "go-inventory/internal/product/errors"
	productMock "go-inventory/internal/product/mock"
	"go-inventory/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupProductRouter(t *testing.T) (*gin.Engine, *productMock.MockService) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	decimal.MarshalJSONWithoutQuotes = true

	ctrl := gomock.NewController(t)
	svc := productMock.NewMockService(ctrl)

	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	product.RegisterRoutes(&r.RouterGroup, product.NewHandler(svc), pass, pass)
	return r, svc
}

func serve(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, svc := setupProductRouter(t)
		id := uuid.NewString()
		title := "Eletrônicos"

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req product.CreateProductRequest) (product.ProductResponse, error) {
				assert.True(t, req.Price.Equal(decimal.RequireFromString("10.50")))
				return product.ProductResponse{
					ID: id, Code: req.Code, Description: req.Description,
					DepartmentID: req.DepartmentID, DepartmentTitle: &title, Price: req.Price,
				}, nil
			})

		w := serve(r, http.MethodPost, "/produtos",
			[]byte(`{"code":"P1","description":"Caneta","departmentId":1,"price":10.50}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t,
			`{"id":"`+id+`","code":"P1","description":"Caneta","departmentId":1,"departmentTitle":"Eletrônicos","price":10.5}`,
			w.Body.String())
	})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"zero price", `{"code":"P1","description":"Caneta","departmentId":1,"price":0}`, producterrors.ErrInvalidPrice.Message},
		{"negative price", `{"code":"P1","description":"Caneta","departmentId":1,"price":-3}`, producterrors.ErrInvalidPrice.Message},
		{"missing department", `{"code":"P1","description":"Caneta","departmentId":0,"price":1}`, producterrors.ErrDepartmentRequired.Message},
		{"blank code", `{"code":"  ","description":"Caneta","departmentId":1,"price":1}`, producterrors.ErrCodeRequired.Message},
		{"missing description", `{"code":"P1","departmentId":1,"price":1}`, producterrors.ErrDescriptionRequired.Message},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupProductRouter(t)

			w := serve(r, http.MethodPost, "/produtos", []byte(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.message, errorOf(t, w))
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		r, svc := setupProductRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(product.ProductResponse{}, producterrors.ErrProductAlreadyExists)

		w := serve(r, http.MethodPost, "/produtos",
			[]byte(`{"code":"P1","description":"Caneta","departmentId":1,"price":1}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, producterrors.ErrProductAlreadyExists.Message, errorOf(t, w))
	})
}

func TestProductHandler_GetById(t *testing.T) {
	t.Run("invalid guid", func(t *testing.T) {
		r, _ := setupProductRouter(t)

		w := serve(r, http.MethodGet, "/produtos/123", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, producterrors.ErrInvalidProductID.Message, errorOf(t, w))
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupProductRouter(t)
		id := uuid.New()
		svc.EXPECT().GetByID(gomock.Any(), id).Return(product.ProductResponse{}, producterrors.ErrProductNotFound)

		w := serve(r, http.MethodGet, "/produtos/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_TotalAndDelete(t *testing.T) {
	r, svc := setupProductRouter(t)
	id := uuid.New()

	svc.EXPECT().Count(gomock.Any()).Return(int64(1), nil)
	w := serve(r, http.MethodGet, "/produtos/total", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":1}`, w.Body.String())

	svc.EXPECT().Delete(gomock.Any(), id).Return(nil)
	w = serve(r, http.MethodDelete, "/produtos/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
	w = serve(r, http.MethodGet, "/produtos/total", nil)
	assert.JSONEq(t, `{"total":0}`, w.Body.String())
}

func TestProductHandler_Update(t *testing.T) {
	r, svc := setupProductRouter(t)
	id := uuid.New()

	svc.EXPECT().
		Update(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, req product.UpdateProductRequest) (product.ProductResponse, error) {
			return product.ProductResponse{ID: id.String(), Code: "P1", Description: req.Description, DepartmentID: req.DepartmentID, Price: req.Price}, nil
		})

	w := serve(r, http.MethodPut, "/produtos/"+id.String(),
		[]byte(`{"code":"IGNORED","description":"Nova","departmentId":2,"price":5}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "P1", body["code"])
	assert.Equal(t, "Nova", body["description"])
}
