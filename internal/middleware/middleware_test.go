package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory/internal/auth"
	"go-inventory/internal/middleware"
	"go-inventory/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"), "inventory-api", "inventory-api", time.Hour)
}

func TestAuth(t *testing.T) {
	tokens := newTokens()

	r := gin.New()
	r.GET("/private", middleware.Auth(tokens), func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"sub": claims.Subject,
			"ctx": contextutil.GetUserID(c.Request.Context()),
		})
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("valid token", func(t *testing.T) {
		raw, _, err := tokens.Issue("user-1", "Ana", "ana@example.com")
		require.NoError(t, err)

		w := do("Bearer " + raw)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"sub":"user-1","ctx":"user-1"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := do("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		raw, _, _ := tokens.Issue("user-1", "Ana", "ana@example.com")
		assert.Equal(t, http.StatusUnauthorized, do("Basic "+raw).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		old := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		raw, _, _ := old.Issue("user-1", "Ana", "ana@example.com")

		w := do("Bearer " + raw)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Token expirado"}`, w.Body.String())
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := auth.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"), "other", "inventory-api", time.Hour)
		raw, _, _ := other.Issue("user-1", "Ana", "ana@example.com")

		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+raw).Code)
	})
}

func TestRequestIDAndContextLogger(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, "abc-123", w.Body.String())
	})

	t.Run("generates id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), w.Body.String())
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:5173/"}))
	r.GET("/produtos", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/produtos", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/produtos", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.RateLimitByIP(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limit is per client ip")
}

func TestIdempotency(t *testing.T) {
	cacheKey := middleware.IdempotencyCacheKey("/produtos", "", "key-1")
	lockKey := cacheKey + ":lock"

	newRouter := func(mw gin.HandlerFunc, calls *int) *gin.Engine {
		r := gin.New()
		r.POST("/produtos", mw, func(c *gin.Context) {
			*calls++
			c.JSON(http.StatusCreated, gin.H{"id": 1})
		})
		return r
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/produtos", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first request runs and stores response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := newRouter(middleware.Idempotency(rdb), &calls)

		stored, err := json.Marshal(middleware.StoredResponse{
			Status:      http.StatusCreated,
			ContentType: "application/json; charset=utf-8",
			Body:        `{"id":1}`,
		})
		require.NoError(t, err)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", middleware.IdempotencyLockTTL).SetVal(true)
		mock.ExpectSet(cacheKey, stored, middleware.IdempotencyTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repeat replays without calling handler", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := newRouter(middleware.Idempotency(rdb), &calls)

		stored, _ := json.Marshal(middleware.StoredResponse{
			Status:      http.StatusCreated,
			ContentType: "application/json; charset=utf-8",
			Body:        `{"id":1}`,
		})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1}`, w.Body.String())
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in flight duplicate is rejected", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := newRouter(middleware.Idempotency(rdb), &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "1", middleware.IdempotencyLockTTL).SetVal(false)

		w := post(r)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
		assert.Equal(t, 0, calls)
	})

	t.Run("nil client passes through", func(t *testing.T) {
		calls := 0
		r := newRouter(middleware.Idempotency(nil), &calls)

		w := post(r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})
}
