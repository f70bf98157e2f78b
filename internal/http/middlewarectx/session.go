// Package middlewarectx содержит HTTP middleware сервиса: сессия пользователя
// и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionID ключ идентификатора сессии в контексте
const SessionID Key = "session_id"

// SessionMiddleware берёт идентификатор сессии из cookie или выдаёт новый
// и кладёт его в контекст запроса.
func SessionMiddleware(cookieName string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ""
			if c, err := r.Cookie(cookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sid = c.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			ctx := context.WithValue(r.Context(), SessionID, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Session возвращает идентификатор сессии из контекста.
func Session(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionID).(string)
	return sid, ok && sid != ""
}
