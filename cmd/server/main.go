package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"recipeshare/internal/api"
	"recipeshare/internal/config"
	"recipeshare/internal/env"
	"recipeshare/internal/log"
	"recipeshare/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	logger := log.New(nil)

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", slog.Any("error", err))
	}

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	st, err := setup.Store(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup store", slog.Any("error", err))
		os.Exit(1)
	}

	issuer, err := setup.Grants(setupCtx, conf, logger)
	if err != nil {
		logger.Error("failed to setup upload grants", slog.Any("error", err))
		os.Exit(1)
	}

	e := &env.Env{
		Logger: logger,
		Store:  st,
		Grants: issuer,
		Config: conf,
	}

	if err := api.Start(e); err != nil {
		e.Logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}
