package board

import (
	"sync"

	"github.com/magabrotheeeer/holiday-board/internal/models"
)

// State состояние страницы одного пользователя. Holidays хранится уже
// отсортированным текущим SortMode, фильтр применяется при показе.
type State struct {
	Country    string           `json:"country"`
	Holidays   []models.Holiday `json:"holidays"`
	Status     Status           `json:"status"`
	SearchTerm string           `json:"search_term"`
	SortMode   SortMode         `json:"sort_mode"`
	// Generation растёт при каждом выборе страны; ответ API с устаревшим
	// значением отбрасывается.
	Generation uint64 `json:"generation"`
}

// NewState начальное состояние новой сессии.
func NewState() *State {
	return &State{
		Status:   StatusInitial,
		SortMode: SortDateAsc,
	}
}

// Snapshot состояние сессии и список праздников после фильтра.
type Snapshot struct {
	State   State
	Visible []models.Holiday
}

type sessionLock struct {
	sync.Mutex
	refs int
}

// sessionLocks сериализует чтение-изменение-запись состояния одной сессии.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func (l *sessionLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sessionLock)
	}
	sl, ok := l.locks[key]
	if !ok {
		sl = &sessionLock{}
		l.locks[key] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.Lock()
	return func() {
		sl.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
