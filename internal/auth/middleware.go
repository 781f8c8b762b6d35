package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const SessionIDKey contextKey = "session_id"

// SessionMiddleware puts the session id of a valid cookie into the request
// context. Requests without one pass through unidentified; handlers decide
// whether they need a session.
func (h *AuthHandler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		sessionID, expires, err := h.Authorize(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		// Sliding session: refresh the token once it is past half its lifetime
		if time.Until(expires) < h.TokenDuration/2 {
			if token, err := h.GenerateToken(sessionID); err == nil {
				http.SetCookie(w, h.Cookie(token))
			}
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session id stored by SessionMiddleware.
func SessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}
