// Package board бизнес-логика страницы праздников: загрузка стран,
// получение праздников выбранной страны, сортировка, фильтр и статус страницы.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/lib/sl"
	"github.com/magabrotheeeer/holiday-board/internal/metrics"
	"github.com/magabrotheeeer/holiday-board/internal/models"
)

var (
	// ErrCountryNotAllowed страна не входит в список разрешённых.
	ErrCountryNotAllowed = errors.New("country is not allowed")
	// ErrFetchFailed источник праздников ответил ошибкой или недоступен.
	ErrFetchFailed = errors.New("failed to fetch holidays")
)

// HolidayProvider источник стран и праздников.
type HolidayProvider interface {
	// AvailableCountries возвращает все страны, известные источнику.
	AvailableCountries(ctx context.Context) ([]models.Country, error)
	// PublicHolidays возвращает праздники страны за год; пустой список, если их нет.
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]models.Holiday, error)
}

// Store хранилище состояния сессий.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Options параметры сервиса из конфига.
type Options struct {
	Year             int
	AllowedCountries []string
	Locale           language.Tag
	StateTTL         time.Duration
}

type Service struct {
	provider HolidayProvider
	store    Store
	log      *slog.Logger
	metrics  *metrics.Metrics
	opts     Options
	allowed  map[string]struct{}
	locks    sessionLocks
}

func NewService(provider HolidayProvider, store Store, log *slog.Logger, m *metrics.Metrics, opts Options) *Service {
	allowed := make(map[string]struct{}, len(opts.AllowedCountries))
	for _, code := range opts.AllowedCountries {
		allowed[strings.ToUpper(code)] = struct{}{}
	}
	return &Service{
		provider: provider,
		store:    store,
		log:      log,
		metrics:  m,
		opts:     opts,
		allowed:  allowed,
	}
}

func (s *Service) Year() int {
	return s.opts.Year
}

func (s *Service) Locale() language.Tag {
	return s.opts.Locale
}

// IsAllowed проверяет код страны по списку разрешённых.
func (s *Service) IsAllowed(code string) bool {
	_, ok := s.allowed[code]
	return ok
}

// Countries возвращает разрешённые страны в порядке ответа API.
func (s *Service) Countries(ctx context.Context) ([]models.CountryOption, error) {
	const op = "board.Countries"

	countries, err := s.provider.AvailableCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	options := make([]models.CountryOption, 0, len(s.allowed))
	for _, c := range countries {
		if s.IsAllowed(c.CountryCode) {
			options = append(options, models.CountryOption{Code: c.CountryCode, DisplayName: c.Name})
		}
	}
	return options, nil
}

// Snapshot возвращает текущее состояние сессии.
func (s *Service) Snapshot(ctx context.Context, sid string) (Snapshot, error) {
	const op = "board.Snapshot"

	st, err := s.load(ctx, sid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return Snapshot{State: *st, Visible: Filter(st.Holidays, st.SearchTerm)}, nil
}

// SelectCountry выбирает страну и загружает её праздники за год из конфига.
// Поиск сбрасывается. Пустой code возвращает страницу в статус initial.
// Ответ 404 источника считается пустым списком, остальные ошибки
// переводят страницу в статус error и возвращаются вызывающему.
func (s *Service) SelectCountry(ctx context.Context, sid, code string) (Snapshot, error) {
	const op = "board.SelectCountry"
	log := s.log.With(slog.String("op", op), sl.Session(sid), slog.String("country", code))

	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" && !s.IsAllowed(code) {
		return Snapshot{}, fmt.Errorf("%s: %w: %s", op, ErrCountryNotAllowed, code)
	}

	unlock := s.locks.lock(sid)
	st, err := s.load(ctx, sid)
	if err != nil {
		unlock()
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	st.SearchTerm = ""
	st.Country = code
	st.Holidays = nil
	st.Generation++
	generation := st.Generation

	if code == "" {
		s.setStatus(st, StatusInitial)
		err = s.save(ctx, sid, st)
		unlock()
		if err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", op, err)
		}
		return Snapshot{State: *st}, nil
	}

	s.setStatus(st, StatusLoading)
	err = s.save(ctx, sid, st)
	unlock()
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	holidays, fetchErr := s.provider.PublicHolidays(ctx, s.opts.Year, code)

	// Статус loading уже сохранён: результат записывается и после отмены запроса клиентом.
	persistCtx := context.WithoutCancel(ctx)
	unlock = s.locks.lock(sid)
	defer unlock()

	st, err = s.load(persistCtx, sid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	if st.Generation != generation {
		log.Info("discarding stale holidays response", slog.Uint64("current_generation", st.Generation))
		s.metrics.ObserveStale()
		return Snapshot{State: *st, Visible: Filter(st.Holidays, st.SearchTerm)}, nil
	}

	if fetchErr != nil {
		log.Error("failed to fetch holidays", sl.Err(fetchErr))
		st.Holidays = nil
		s.setStatus(st, StatusError)
		if err := s.save(persistCtx, sid, st); err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", op, err)
		}
		return Snapshot{State: *st}, fmt.Errorf("%s: %w: %w", op, ErrFetchFailed, fetchErr)
	}

	st.Holidays = holidays
	s.setStatus(st, StatusSuccess)
	Sort(st.Holidays, st.SortMode, s.opts.Locale)
	visible := s.refresh(st)
	if err := s.save(persistCtx, sid, st); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("holidays loaded", slog.Int("count", len(holidays)))
	return Snapshot{State: *st, Visible: visible}, nil
}

// ApplyFilter сохраняет поисковую строку и пересчитывает видимый список.
func (s *Service) ApplyFilter(ctx context.Context, sid, term string) (Snapshot, error) {
	const op = "board.ApplyFilter"

	unlock := s.locks.lock(sid)
	defer unlock()

	st, err := s.load(ctx, sid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	st.SearchTerm = term
	visible := s.refresh(st)
	if err := s.save(ctx, sid, st); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return Snapshot{State: *st, Visible: visible}, nil
}

// ApplySort сохраняет режим сортировки, пересортировывает список и применяет фильтр.
func (s *Service) ApplySort(ctx context.Context, sid string, mode SortMode) (Snapshot, error) {
	const op = "board.ApplySort"

	unlock := s.locks.lock(sid)
	defer unlock()

	st, err := s.load(ctx, sid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	st.SortMode = mode
	if st.Status.Settled() {
		Sort(st.Holidays, st.SortMode, s.opts.Locale)
	}
	visible := s.refresh(st)
	if err := s.save(ctx, sid, st); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return Snapshot{State: *st, Visible: visible}, nil
}

// Query выполняет загрузку, сортировку и фильтр без сессии.
func (s *Service) Query(ctx context.Context, code string, mode SortMode, term string) ([]models.Holiday, error) {
	const op = "board.Query"

	code = strings.ToUpper(code)
	if !s.IsAllowed(code) {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrCountryNotAllowed, code)
	}
	holidays, err := s.provider.PublicHolidays(ctx, s.opts.Year, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrFetchFailed, err)
	}
	Sort(holidays, mode, s.opts.Locale)
	return Filter(holidays, term), nil
}

// refresh применяет фильтр и, если список загружен, выставляет success или no_match.
func (s *Service) refresh(st *State) []models.Holiday {
	visible := Filter(st.Holidays, st.SearchTerm)
	if !st.Status.Settled() {
		return visible
	}
	next := StatusSuccess
	if len(visible) == 0 && strings.TrimSpace(st.SearchTerm) != "" {
		next = StatusNoMatch
	}
	s.setStatus(st, next)
	return visible
}

func (s *Service) setStatus(st *State, next Status) {
	status, err := st.Status.Transition(next)
	if err != nil {
		s.log.Warn("rejected status transition", sl.Err(err))
		return
	}
	if status != st.Status {
		s.metrics.ObserveStatus(string(status))
	}
	st.Status = status
}

func stateKey(sid string) string {
	return "board:" + sid
}

func (s *Service) load(ctx context.Context, sid string) (*State, error) {
	st := NewState()
	found, err := s.store.Get(ctx, stateKey(sid), st)
	if err != nil {
		return nil, err
	}
	if !found {
		return NewState(), nil
	}
	if !st.Status.Valid() {
		st.Status = StatusInitial
	}
	return st, nil
}

func (s *Service) save(ctx context.Context, sid string, st *State) error {
	return s.store.Set(ctx, stateKey(sid), st, s.opts.StateTTL)
}

// Reset возвращает сессию в начальное состояние. Generation продолжает
// расти, чтобы ответ на запрос до сброса не попал в новое состояние.
func (s *Service) Reset(ctx context.Context, sid string) error {
	const op = "board.Reset"

	unlock := s.locks.lock(sid)
	defer unlock()

	prev, err := s.load(ctx, sid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	st := NewState()
	st.Generation = prev.Generation + 1
	if err := s.save(ctx, sid, st); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
