package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	holidayboard "github.com/magabrotheeeer/holiday-board/internal/app/holiday-board"
	"github.com/magabrotheeeer/holiday-board/internal/config"
	"github.com/magabrotheeeer/holiday-board/internal/lib/sl"
)

const envLocal = "local"

func main() {
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	logger.Info("starting holiday-board", slog.String("env", cfg.Env), slog.Int("year", cfg.TargetYear))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := holidayboard.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("holiday-board stopped gracefully")
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == envLocal {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
