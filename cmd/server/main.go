package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"peoplehub/internal/app/server"
	"peoplehub/internal/platform/config"
)

func main() {
	// Missing .env is fine; the environment may be set externally.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := app.Run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
