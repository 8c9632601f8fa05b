package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/user"
	usererrors "go-inventory/internal/user/errors"
	userMock "go-inventory/internal/user/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupUserRouter(t *testing.T) (*gin.Engine, *userMock.MockService) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	svc := userMock.NewMockService(ctrl)

	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	user.RegisterRoutes(&r.RouterGroup, user.NewHandler(svc), pass, pass)
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

func TestUserHandler_Create(t *testing.T) {
	t.Run("success never echoes password", func(t *testing.T) {
		r, svc := setupUserRouter(t)
		id := uuid.NewString()

		svc.EXPECT().
			Create(gomock.Any(), user.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}).
			Return(user.UserResponse{ID: id, Name: "Ana", Email: "ana@example.com"}, nil)

		w := serve(r, http.MethodPost, "/usuarios",
			[]byte(`{"name":"Ana","email":"ana@example.com","password":"secret1"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "secret1")
		assert.NotContains(t, w.Body.String(), "password")

		var body user.UserResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, id, body.ID)
	})

	t.Run("invalid email", func(t *testing.T) {
		r, _ := setupUserRouter(t)

		w := serve(r, http.MethodPost, "/usuarios",
			[]byte(`{"name":"Ana","email":"ana","password":"secret1"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, usererrors.ErrInvalidEmail.Message, errorOf(t, w))
	})

	t.Run("missing email", func(t *testing.T) {
		r, _ := setupUserRouter(t)

		w := serve(r, http.MethodPost, "/usuarios", []byte(`{"name":"Ana","password":"secret1"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, usererrors.ErrEmailRequired.Message, errorOf(t, w))
	})

	t.Run("duplicate email", func(t *testing.T) {
		r, svc := setupUserRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user.UserResponse{}, usererrors.ErrEmailAlreadyExists)

		w := serve(r, http.MethodPost, "/usuarios",
			[]byte(`{"name":"Ana","email":"ana@example.com","password":"secret1"}`))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, usererrors.ErrEmailAlreadyExists.Message, errorOf(t, w))
	})
}

func TestUserHandler_GetById(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		r, _ := setupUserRouter(t)

		w := serve(r, http.MethodGet, "/usuarios/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, usererrors.ErrInvalidUserID.Message, errorOf(t, w))
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupUserRouter(t)
		id := uuid.New()

		svc.EXPECT().GetByID(gomock.Any(), id).Return(user.UserResponse{}, usererrors.ErrUserNotFound)

		w := serve(r, http.MethodGet, "/usuarios/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_Total(t *testing.T) {
	r, svc := setupUserRouter(t)

	svc.EXPECT().Count(gomock.Any()).Return(int64(3), nil)

	w := serve(r, http.MethodGet, "/usuarios/total", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3}`, w.Body.String())
}

func TestUserHandler_Delete(t *testing.T) {
	r, svc := setupUserRouter(t)
	id := uuid.New()

	svc.EXPECT().Delete(gomock.Any(), id).Return(nil)

	w := serve(r, http.MethodDelete, "/usuarios/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
