// Package page HTTP-обработчики HTML-страницы праздников: показ страницы,
// выбор страны, поиск, сортировка и сброс. Каждое действие отвечает
// полной страницей для текущей сессии.
package page

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/holiday-board/internal/http/middlewarectx"
	"github.com/magabrotheeeer/holiday-board/internal/lib/sl"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
	"github.com/magabrotheeeer/holiday-board/internal/view"
)

type Handler struct {
	log            *slog.Logger
	service        Service
	renderer       Renderer
	flagURLPattern string
	validate       *validator.Validate
}

func New(log *slog.Logger, service Service, renderer Renderer, flagURLPattern string) *Handler {
	return &Handler{
		log:            log,
		service:        service,
		renderer:       renderer,
		flagURLPattern: flagURLPattern,
		validate:       validator.New(),
	}
}

type countryForm struct {
	Country string `validate:"omitempty,len=2,alpha"`
}

type filterForm struct {
	Query string `validate:"max=100"`
}

type sortForm struct {
	Mode string `validate:"max=32"`
}

func (h *Handler) logger(r *http.Request, op, sid string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		sl.Session(sid),
	)
}

func session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sid, ok := middlewarectx.Session(r.Context())
	if !ok {
		http.Error(w, "session not found", http.StatusInternalServerError)
	}
	return sid, ok
}

// Show GET /: текущая страница сессии.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Show"
	sid, ok := session(w, r)
	if !ok {
		return
	}
	log := h.logger(r, op, sid)

	snap, err := h.service.Snapshot(r.Context(), sid)
	if err != nil {
		log.Error("failed to load session state", sl.Err(err))
		http.Error(w, "failed to load page", http.StatusInternalServerError)
		return
	}
	h.render(w, r, log, http.StatusOK, snap)
}

// SelectCountry POST /country: загрузка праздников выбранной страны.
func (h *Handler) SelectCountry(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.SelectCountry"
	sid, ok := session(w, r)
	if !ok {
		return
	}
	log := h.logger(r, op, sid)

	form := countryForm{Country: r.FormValue("country")}
	if err := h.validate.Struct(form); err != nil {
		log.Warn("invalid country", slog.String("country", form.Country), sl.Err(err))
		h.renderCurrent(w, r, log, http.StatusBadRequest, sid)
		return
	}

	snap, err := h.service.SelectCountry(r.Context(), sid, form.Country)
	switch {
	case err == nil:
		h.render(w, r, log, http.StatusOK, snap)
	case errors.Is(err, board.ErrCountryNotAllowed):
		log.Warn("country is not allowed", slog.String("country", form.Country))
		h.renderCurrent(w, r, log, http.StatusBadRequest, sid)
	case errors.Is(err, board.ErrFetchFailed):
		log.Error("failed to fetch holidays", sl.Err(err))
		h.render(w, r, log, http.StatusBadGateway, snap)
	default:
		log.Error("failed to select country", sl.Err(err))
		http.Error(w, "failed to select country", http.StatusInternalServerError)
	}
}

// Filter GET /filter?q=: поиск по названию.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Filter"
	sid, ok := session(w, r)
	if !ok {
		return
	}
	log := h.logger(r, op, sid)

	form := filterForm{Query: r.FormValue("q")}
	if err := h.validate.Struct(form); err != nil {
		log.Warn("invalid search term", sl.Err(err))
		h.renderCurrent(w, r, log, http.StatusBadRequest, sid)
		return
	}

	snap, err := h.service.ApplyFilter(r.Context(), sid, form.Query)
	if err != nil {
		log.Error("failed to apply filter", sl.Err(err))
		http.Error(w, "failed to apply filter", http.StatusInternalServerError)
		return
	}
	h.render(w, r, log, http.StatusOK, snap)
}

// Sort POST /sort: смена режима сортировки.
func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Sort"
	sid, ok := session(w, r)
	if !ok {
		return
	}
	log := h.logger(r, op, sid)

	form := sortForm{Mode: r.FormValue("sort")}
	if err := h.validate.Struct(form); err != nil {
		log.Warn("invalid sort mode", sl.Err(err))
		h.renderCurrent(w, r, log, http.StatusBadRequest, sid)
		return
	}

	snap, err := h.service.ApplySort(r.Context(), sid, board.SortMode(form.Mode))
	if err != nil {
		log.Error("failed to apply sort", sl.Err(err))
		http.Error(w, "failed to apply sort", http.StatusInternalServerError)
		return
	}
	h.render(w, r, log, http.StatusOK, snap)
}

// Reset POST /reset: сброс состояния сессии.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.page.Reset"
	sid, ok := session(w, r)
	if !ok {
		return
	}
	log := h.logger(r, op, sid)

	if err := h.service.Reset(r.Context(), sid); err != nil {
		log.Error("failed to reset session", sl.Err(err))
		http.Error(w, "failed to reset", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderCurrent(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, sid string) {
	snap, err := h.service.Snapshot(r.Context(), sid)
	if err != nil {
		log.Error("failed to load session state", sl.Err(err))
		http.Error(w, "failed to load page", http.StatusInternalServerError)
		return
	}
	h.render(w, r, log, status, snap)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, snap board.Snapshot) {
	countries, countriesErr := h.service.Countries(r.Context())
	if countriesErr != nil {
		log.Error("failed to load countries", sl.Err(countriesErr))
	}

	p := view.Build(view.Input{
		Snapshot:       snap,
		Countries:      countries,
		CountriesErr:   countriesErr,
		Year:           h.service.Year(),
		Locale:         h.service.Locale(),
		FlagURLPattern: h.flagURLPattern,
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, p); err != nil {
		log.Error("failed to render page", sl.Err(err))
	}
}
