package main

import (
	"go-inventory/internal/app"
	"go-inventory/internal/config"
	"go-inventory/internal/shared/logger"

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

	if err := app.RunWorker(cfg); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
