package main

import (
	"context"
	"time"

	"go-inventory/internal/app"
	"go-inventory/internal/bootstrap"
	"go-inventory/internal/config"
	"go-inventory/internal/shared/apperror"
	"go-inventory/internal/shared/logger"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if cfg.JWT.Ephemeral {
		log.Warn("JWT_SECRET not set: using a random development secret, tokens will not survive a restart")
	}

	apperror.Init()
	decimal.MarshalJSONWithoutQuotes = true

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	infra, err := app.Connect(cfg)
	if err != nil {
		log.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := infra.Migrate(ctx, cfg); err != nil {
		cancel()
		log.Fatal("migrate failed", zap.Error(err))
	}
	cancel()

	r := gin.New()
	if err := app.BuildApp(r, cfg, infra, log); err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}

	auditLogger := bootstrap.NewStdoutAuditLogger(log)
	if err := bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            cfg.Server.Port,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			IdleTimeout:     cfg.Server.IdleTimeout,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		},
		auditLogger,
	); err != nil {
		log.Error("http server stopped with error", zap.Error(err))
	}
}
