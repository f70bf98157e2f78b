// Package countries обработчик GET /api/v1/countries.
package countries

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/holiday-board/internal/http/response"
	"github.com/magabrotheeeer/holiday-board/internal/lib/sl"
	"github.com/magabrotheeeer/holiday-board/internal/models"
)

// Service источник разрешённых стран.
type Service interface {
	Countries(ctx context.Context) ([]models.CountryOption, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.countries"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	options, err := h.service.Countries(r.Context())
	if err != nil {
		log.Error("failed to load countries", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load countries"))
		return
	}

	log.Debug("countries loaded", slog.Int("count", len(options)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":     len(options),
		"countries": options,
	}))
}
