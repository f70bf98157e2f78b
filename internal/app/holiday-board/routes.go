// Package holidayboard собирает зависимости и маршруты веб-приложения.
package holidayboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/holiday-board/internal/config"
	"github.com/magabrotheeeer/holiday-board/internal/http/handlers/api/countries"
	"github.com/magabrotheeeer/holiday-board/internal/http/handlers/api/holidays"
	"github.com/magabrotheeeer/holiday-board/internal/http/handlers/health"
	"github.com/magabrotheeeer/holiday-board/internal/http/handlers/page"
	"github.com/magabrotheeeer/holiday-board/internal/http/middlewarectx"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
	"github.com/magabrotheeeer/holiday-board/internal/view"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, service *board.Service, renderer *view.Renderer, gatherer prometheus.Gatherer) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RPS, cfg.Burst))

		// HTML-страница, состояние хранится в сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(cfg.CookieName, cfg.TTL))
			pageHandler := page.New(logger, service, renderer, cfg.FlagURLPattern)
			r.Get("/", pageHandler.Show)
			r.Post("/country", pageHandler.SelectCountry)
			r.Get("/filter", pageHandler.Filter)
			r.Post("/sort", pageHandler.Sort)
			r.Post("/reset", pageHandler.Reset)
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/countries", countries.New(logger, service).ServeHTTP)
			r.Get("/holidays/{country}", holidays.New(logger, service).ServeHTTP)
		})
	})
}
