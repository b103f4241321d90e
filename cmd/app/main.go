package main

import (
	"context"

	"rentdesk/config"
	"rentdesk/di"
	"rentdesk/helper"
	"rentdesk/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Rentdesk API
// @version 1.0
// @description Pricing, availability and booking engine for short-term rental operators.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := di.InitializeApp()

	go app.Listener.Run(ctx)

	app.HTTP.Serve(ctx)
}
