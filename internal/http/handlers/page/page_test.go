package page

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/magabrotheeeer/holiday-board/internal/http/middlewarectx"
	"github.com/magabrotheeeer/holiday-board/internal/models"
	"github.com/magabrotheeeer/holiday-board/internal/services/board"
	"github.com/magabrotheeeer/holiday-board/internal/view"
)

// MockService реализует интерфейс page.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Countries(ctx context.Context) ([]models.CountryOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CountryOption), args.Error(1)
}

func (m *MockService) Snapshot(ctx context.Context, sid string) (board.Snapshot, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(board.Snapshot), args.Error(1)
}

func (m *MockService) SelectCountry(ctx context.Context, sid, code string) (board.Snapshot, error) {
	args := m.Called(ctx, sid, code)
	return args.Get(0).(board.Snapshot), args.Error(1)
}

func (m *MockService) ApplyFilter(ctx context.Context, sid, term string) (board.Snapshot, error) {
	args := m.Called(ctx, sid, term)
	return args.Get(0).(board.Snapshot), args.Error(1)
}

func (m *MockService) ApplySort(ctx context.Context, sid string, mode board.SortMode) (board.Snapshot, error) {
	args := m.Called(ctx, sid, mode)
	return args.Get(0).(board.Snapshot), args.Error(1)
}

func (m *MockService) Reset(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}

func (m *MockService) Year() int { return 2026 }

func (m *MockService) Locale() language.Tag { return language.Swedish }

const sid = "9f1c3e1e-6a55-4a53-9d2f-0d7e7a0f6a10"

var countries = []models.CountryOption{{Code: "SE", DisplayName: "Sweden"}, {Code: "NO", DisplayName: "Norway"}}

func newHandler(t *testing.T, svc *MockService) *Handler {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return New(logger, svc, renderer, view.DefaultFlagURLPattern)
}

func newRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middlewarectx.SessionID, sid)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
	return req.WithContext(ctx)
}

func snapshot(status board.Status, country, term string, visible ...models.Holiday) board.Snapshot {
	return board.Snapshot{
		State:   board.State{Country: country, Status: status, SearchTerm: term, SortMode: board.SortDateAsc, Holidays: visible},
		Visible: visible,
	}
}

func TestShow(t *testing.T) {
	svc := new(MockService)
	svc.On("Snapshot", mock.Anything, sid).Return(snapshot(board.StatusInitial, "", ""), nil)
	svc.On("Countries", mock.Anything).Return(countries, nil)

	w := httptest.NewRecorder()
	newHandler(t, svc).Show(w, newRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `id="initialMessage" class="initial-message"`)
	assert.Contains(t, body, `<option value="NO">Norway</option>`)
	svc.AssertExpectations(t)
}

func TestShow_CountriesFailed(t *testing.T) {
	svc := new(MockService)
	svc.On("Snapshot", mock.Anything, sid).Return(snapshot(board.StatusInitial, "", ""), nil)
	svc.On("Countries", mock.Anything).Return(nil, errors.New("dns failure"))

	w := httptest.NewRecorder()
	newHandler(t, svc).Show(w, newRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Kunde inte ladda länder")
	assert.Contains(t, w.Body.String(), `name="country" onchange="this.form.submit()" disabled`)
}

func TestShow_NoSession(t *testing.T) {
	w := httptest.NewRecorder()
	newHandler(t, new(MockService)).Show(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSelectCountry(t *testing.T) {
	tests := []struct {
		name           string
		country        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name:    "holidays rendered",
			country: "SE",
			setupMock: func(m *MockService) {
				m.On("SelectCountry", mock.Anything, sid, "SE").Return(snapshot(board.StatusSuccess, "SE", "",
					models.Holiday{Date: models.NewDate(2026, time.June, 6), LocalName: "Sveriges nationaldag", Name: "National Day of Sweden"}), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"Sveriges nationaldag", "lördag 6 juni 2026", `class="holiday-card"`},
		},
		{
			name:    "not found is an empty success",
			country: "SE",
			setupMock: func(m *MockService) {
				m.On("SelectCountry", mock.Anything, sid, "SE").Return(snapshot(board.StatusSuccess, "SE", ""), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{"Inga nationella helgdagar hittades för Sweden år 2026.", `id="error-message" class="hidden"`},
		},
		{
			name:    "fetch failure shows error panel",
			country: "NO",
			setupMock: func(m *MockService) {
				m.On("SelectCountry", mock.Anything, sid, "NO").
					Return(snapshot(board.StatusError, "NO", ""), board.ErrFetchFailed)
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   []string{`id="error-message" class=""`},
		},
		{
			name:    "empty selection",
			country: "",
			setupMock: func(m *MockService) {
				m.On("SelectCountry", mock.Anything, sid, "").Return(snapshot(board.StatusInitial, "", ""), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`id="initialMessage" class="initial-message"`},
		},
		{
			name:    "invalid code",
			country: "S1",
			setupMock: func(m *MockService) {
				m.On("Snapshot", mock.Anything, sid).Return(snapshot(board.StatusInitial, "", ""), nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "country not allowed",
			country: "US",
			setupMock: func(m *MockService) {
				m.On("SelectCountry", mock.Anything, sid, "US").Return(board.Snapshot{}, board.ErrCountryNotAllowed)
				m.On("Snapshot", mock.Anything, sid).Return(snapshot(board.StatusInitial, "", ""), nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "store failure",
			country: "SE",
			setupMock: func(m *MockService) {
				m.On("SelectCountry", mock.Anything, sid, "SE").Return(board.Snapshot{}, errors.New("redis down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   []string{"failed to select country"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Countries", mock.Anything).Return(countries, nil).Maybe()
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			newHandler(t, svc).SelectCountry(w, newRequest(http.MethodPost, "/country", url.Values{"country": {tt.country}}))

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, s := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), s)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestFilter(t *testing.T) {
	svc := new(MockService)
	svc.On("Countries", mock.Anything).Return(countries, nil)
	svc.On("ApplyFilter", mock.Anything, sid, "midsommar").Return(snapshot(board.StatusNoMatch, "SE", "midsommar"), nil)

	w := httptest.NewRecorder()
	newHandler(t, svc).Filter(w, newRequest(http.MethodGet, "/filter?q=midsommar", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="no-results" class=""`)
	assert.Contains(t, w.Body.String(), `value="midsommar"`)
	assert.NotContains(t, w.Body.String(), `class="holiday-card"`)
}

func TestFilter_TooLong(t *testing.T) {
	svc := new(MockService)
	svc.On("Countries", mock.Anything).Return(countries, nil)
	svc.On("Snapshot", mock.Anything, sid).Return(snapshot(board.StatusInitial, "", ""), nil)

	w := httptest.NewRecorder()
	newHandler(t, svc).Filter(w, newRequest(http.MethodGet, "/filter?q="+strings.Repeat("a", 101), nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ApplyFilter", mock.Anything, mock.Anything, mock.Anything)
}

func TestSort(t *testing.T) {
	svc := new(MockService)
	svc.On("Countries", mock.Anything).Return(countries, nil)
	snap := snapshot(board.StatusSuccess, "SE", "")
	snap.State.SortMode = board.SortNameDesc
	svc.On("ApplySort", mock.Anything, sid, board.SortNameDesc).Return(snap, nil)

	w := httptest.NewRecorder()
	newHandler(t, svc).Sort(w, newRequest(http.MethodPost, "/sort", url.Values{"sort": {"name-desc"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="name-desc" selected>`)
	svc.AssertExpectations(t)
}

func TestReset(t *testing.T) {
	svc := new(MockService)
	svc.On("Reset", mock.Anything, sid).Return(nil)

	w := httptest.NewRecorder()
	newHandler(t, svc).Reset(w, newRequest(http.MethodPost, "/reset", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
