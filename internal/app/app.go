package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"go-inventory/internal/config"
	"go-inventory/internal/middleware"
	"go-inventory/internal/migrations"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/connection"
	"go-inventory/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectRetries = 5

// Infra holds the shared connections. Redis is nil when REDIS_ADDR is empty.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	SQLX   *sqlx.DB
	Redis  *redis.Client
}

func Connect(cfg *config.Config) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), connectRetries)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	infra := &Infra{
		GormDB: gormDB,
		SQLDB:  sqlDB,
		SQLX:   sqlx.NewDb(sqlDB, "pgx"),
	}

	if cfg.Redis.Enabled() {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, connectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	} else {
		zap.L().Warn("REDIS_ADDR not set: department cache and idempotency keys disabled")
	}

	return infra, nil
}

// Migrate applies pending schema migrations when auto-migrate is on.
func (i *Infra) Migrate(ctx context.Context, cfg *config.Config) error {
	if !cfg.Database.AutoMigrate {
		return nil
	}
	return migrations.Up(ctx, i.SQLDB)
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

// BuildApp installs the global middleware chain and every module's routes.
func BuildApp(router *gin.Engine, cfg *config.Config, infra *Infra, logger *zap.Logger) error {
	router.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
			response.Abort(c, http.StatusInternalServerError, apperror.ErrInternal.Message)
		}),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Logger(logger.Named("http")),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Rota não encontrada")
	})

	return registerModules(router, cfg, infra, logger)
}
