package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/oksasatya/budget-ledger-api/config"
	"github.com/oksasatya/budget-ledger-api/internal/application"
	"github.com/oksasatya/budget-ledger-api/internal/container"
	"github.com/oksasatya/budget-ledger-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	app, err := container.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build application")
	}
	defer app.Close()

	if err := app.Migrate(); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}
	if err := application.Seed(ctx, app.Services, helpers.Component(logger, "seed")); err != nil {
		logger.WithError(err).Fatal("seed failed")
	}
}
