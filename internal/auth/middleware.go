package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

// SessionContextKey holds the authenticated *Session on the request context.
const SessionContextKey contextKey = "session"

// BearerMiddleware admits requests carrying a live admin token.
type BearerMiddleware struct {
	sessions SessionStore
}

func NewBearerMiddleware(sessions SessionStore) *BearerMiddleware {
	return &BearerMiddleware{sessions: sessions}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

// Authenticate validates the bearer token, refreshes its last-seen time and
// injects the session into the request context. Anything else gets 401
// {"error":"Unauthorized"}.
func (m *BearerMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			writeUnauthorized(w)
			return
		}
		s, err := m.sessions.Validate(r.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		if err := m.sessions.Touch(r.Context(), token); err != nil {
			writeUnauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext returns the session set by Authenticate, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(SessionContextKey).(*Session)
	return s
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}
