package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"bookit/config"
	"bookit/di"
	"bookit/helper"
	"bookit/infras/metrics"
	"bookit/shared/logger"
)

const traceFlushTimeout = 5 * time.Second

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	metrics.Register()

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Run(cfg, helper.ActionUp); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())

	go app.Sweeper.Start(ctx)

	app.HTTP.OnShutdown(func() {
		app.Sweeper.Stop()
		cancel()

		flushCtx, flushCancel := context.WithTimeout(context.Background(), traceFlushTimeout)
		defer flushCancel()

		if err := app.Otel.Shutdown(flushCtx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	})

	app.HTTP.Serve()
}
