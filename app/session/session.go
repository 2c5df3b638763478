// Package session ties each browser to its own invoice editor through a
// session cookie.
package session

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelofallars/hyperinvoice/internal/editor"
)

const CookieName = "hb_session"

// RequireEditor resolves the session cookie, issuing a new one when it is
// missing or malformed, and stores the session's editor in the request
// context.
func RequireEditor(registry *editor.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(CookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			r = r.WithContext(context.WithValue(r.Context(), sessionKey, &Session{
				ID:     sessionID,
				Editor: registry.Get(sessionID),
			}))

			next.ServeHTTP(w, r)
		})
	}
}

func Get(c context.Context) (*Session, error) {
	s, ok := c.Value(sessionKey).(*Session)
	if !ok {
		return nil, errors.New("Session not found")
	}
	return s, nil
}

type Session struct {
	ID     string
	Editor *editor.Editor
}

type key struct{}

var sessionKey = key{}
