package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-inventory/internal/shared/contextutil"
	"go-inventory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader  = "Idempotency-Key"
	IdempotencyTTL     = 24 * time.Hour
	IdempotencyLockTTL = 30 * time.Second
)

// StoredResponse is what gets replayed for a repeated Idempotency-Key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type capturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyCacheKey scopes a client key to the route and the caller.
func IdempotencyCacheKey(route, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", route, userID, key)
}

// Idempotency replays the stored response of a POST that already completed
// with the same Idempotency-Key and rejects one that is still in flight.
// A nil client or a Redis failure lets the request through.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(IdempotencyHeader))
		if rdb == nil || key == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L())

		cacheKey := IdempotencyCacheKey(c.FullPath(), c.GetString(UserIDKey), key)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var stored StoredResponse
			if jsonErr := json.Unmarshal(val, &stored); jsonErr == nil {
				c.Header("Idempotent-Replayed", "true")
				c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
				c.Abort()
				return
			}
			log.Warn("idempotency: corrupt stored response", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			log.Warn("idempotency: lookup failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "1", IdempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency: lock failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Abort(c, http.StatusConflict, "Requisição com a mesma Idempotency-Key ainda em processamento.")
			return
		}

		bg := context.WithoutCancel(ctx)
		defer rdb.Del(bg, lockKey)

		w := &capturingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w

		c.Next()

		// 5xx stays retryable.
		status := w.Status()
		if status >= http.StatusInternalServerError {
			return
		}

		payload, err := json.Marshal(StoredResponse{
			Status:      status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.String(),
		})
		if err != nil {
			return
		}
		if err := rdb.Set(bg, cacheKey, payload, IdempotencyTTL).Err(); err != nil {
			log.Warn("idempotency: store response failed", zap.Error(err))
		}
	}
}
