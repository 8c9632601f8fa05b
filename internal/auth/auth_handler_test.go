package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inventory/internal/auth"
	autherrors "go-inventory/internal/auth/errors"
	authMock "go-inventory/internal/auth/mock"
	"go-inventory/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupAuthRouter(t *testing.T, authMiddleware gin.HandlerFunc) (*gin.Engine, *authMock.MockService) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)

	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	if authMiddleware == nil {
		authMiddleware = pass
	}
	auth.RegisterRoutes(&r.RouterGroup, auth.NewHandler(svc), authMiddleware, pass)
	return r, svc
}

func TestHandler_Login(t *testing.T) {
	t.Run("success returns token", func(t *testing.T) {
		r, svc := setupAuthRouter(t, nil)
		svc.EXPECT().
			Login(gomock.Any(), "ana@example.com", "secret1").
			Return(auth.LoginResponse{Token: "signed"}, nil)

		body, _ := json.Marshal(auth.LoginRequest{Email: "ana@example.com", Password: "secret1"})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"signed"}`, w.Body.String())
	})

	t.Run("invalid credentials", func(t *testing.T) {
		r, svc := setupAuthRouter(t, nil)
		svc.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(auth.LoginResponse{}, autherrors.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/login",
			bytes.NewBufferString(`{"email":"ana@example.com","password":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"E-mail ou senha inválidos"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		r, _ := setupAuthRouter(t, nil)

		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(`{"email":""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Me(t *testing.T) {
	t.Run("returns identity from claims", func(t *testing.T) {
		withClaims := func(c *gin.Context) {
			c.Set(auth.ClaimsKey, &auth.Claims{
				Name:             "Ana",
				Email:            "ana@example.com",
				RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			})
			c.Next()
		}
		r, _ := setupAuthRouter(t, withClaims)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"user-1","name":"Ana","email":"ana@example.com"}`, w.Body.String())
	})

	t.Run("no claims", func(t *testing.T) {
		r, _ := setupAuthRouter(t, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
