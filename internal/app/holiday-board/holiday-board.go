package holidayboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/cache"
	"github.com/magabrotheeeer/holiday-board/internal/config"
	"github.com/magabrotheeeer/holiday-board/internal/metrics"
	"github.com/magabrotheeeer/holiday-board/internal/nager"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
	"github.com/magabrotheeeer/holiday-board/internal/view"
)

type sessionStore interface {
	board.Store
	io.Closer
}

type App struct {
	server *http.Server
	logger *slog.Logger
	store  sessionStore
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "holidayboard.New"

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	var store sessionStore
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		store = redisCache
		logger.Info("session state stored in redis", slog.String("address", cfg.AddressRedis))
	} else {
		store = cache.NewMemory()
		logger.Info("session state stored in memory")
	}

	locale, err := language.Parse(cfg.Locale)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: invalid locale %q: %w", op, cfg.Locale, err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := nager.NewClient(cfg.BaseURL, cfg.NagerAPI.Timeout, m)
	service := board.NewService(client, store, logger, m, board.Options{
		Year:             cfg.TargetYear,
		AllowedCountries: cfg.AllowedCountries,
		Locale:           locale,
		StateTTL:         cfg.TTL,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, service, renderer, registry)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		store:  store,
	}, nil
}

// Handler корневой обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = a.store.Close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.store.Close(); closeErr != nil {
			a.logger.Warn("failed to close session store", slog.Any("err", closeErr))
		}
		return err
	}
}
