package board

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition недопустимая смена статуса страницы.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status статус отображения страницы. В каждый момент видна ровно одна
// панель статуса либо список карточек.
type Status string

const (
	StatusInitial Status = "initial"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
	StatusNoMatch Status = "no_match"
)

// Valid сообщает, является ли s известным статусом.
func (s Status) Valid() bool {
	switch s {
	case StatusInitial, StatusLoading, StatusError, StatusSuccess, StatusNoMatch:
		return true
	}
	return false
}

// Settled статусы, в которых есть загруженный список и работают фильтр и сортировка.
func (s Status) Settled() bool {
	return s == StatusSuccess || s == StatusNoMatch
}

var transitions = map[Status][]Status{
	StatusInitial: {},
	StatusLoading: {StatusSuccess, StatusError},
	StatusError:   {},
	StatusSuccess: {StatusSuccess, StatusNoMatch},
	StatusNoMatch: {StatusNoMatch, StatusSuccess},
}

// Transition возвращает next, если переход из s разрешён.
// Выбор страны (loading) и сброс выбора (initial) допустимы из любого статуса.
func (s Status) Transition(next Status) (Status, error) {
	if !s.Valid() || !next.Valid() {
		return s, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, s, next)
	}
	if next == StatusLoading || next == StatusInitial {
		return next, nil
	}
	if slices.Contains(transitions[s], next) {
		return next, nil
	}
	return s, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, s, next)
}
