// Package holidays обработчик GET /api/v1/holidays/{country}: загрузка,
// сортировка и фильтр праздников без привязки к сессии.
package holidays

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/holiday-board/internal/http/response"
	"github.com/magabrotheeeer/holiday-board/internal/lib/sl"
	"github.com/magabrotheeeer/holiday-board/internal/models"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
)

// Service выполняет загрузку праздников.
type Service interface {
	Query(ctx context.Context, code string, mode board.SortMode, term string) ([]models.Holiday, error)
	Year() int
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

type query struct {
	Country string `validate:"required,len=2,alpha"`
	Sort    string `validate:"omitempty,oneof=date-asc date-desc name-asc name-desc"`
	Q       string `validate:"max=100"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.api.holidays"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := query{
		Country: strings.ToUpper(chi.URLParam(r, "country")),
		Sort:    r.URL.Query().Get("sort"),
		Q:       r.URL.Query().Get("q"),
	}
	if q.Sort == "" {
		q.Sort = string(board.SortDateAsc)
	}
	if err := h.validate.Struct(q); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			log.Warn("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		log.Error("failed to validate request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	list, err := h.service.Query(r.Context(), q.Country, board.SortMode(q.Sort), q.Q)
	switch {
	case errors.Is(err, board.ErrCountryNotAllowed):
		log.Warn("country is not allowed", slog.String("country", q.Country))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("country is not available"))
		return
	case err != nil:
		log.Error("failed to fetch holidays", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to fetch holidays"))
		return
	}

	log.Info("holidays listed", slog.String("country", q.Country), slog.Int("count", len(list)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"country":  q.Country,
		"year":     h.service.Year(),
		"sort":     q.Sort,
		"count":    len(list),
		"holidays": list,
	}))
}
