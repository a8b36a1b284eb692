package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Rohit6800/UniStay/internal/session"
)

// Authenticator resolves a bearer token to a live session. Unknown or expired
// tokens yield session.ErrUnauthenticated.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// SessionFrom returns the request's session, or nil when anonymous
func SessionFrom(ctx context.Context) *session.Session {
	s, _ := ctx.Value(ctxKey{}).(*session.Session)
	return s
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter browsers must use for WebSocket upgrades
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

// Auth attaches the caller's session to the request context. With required
// set, anonymous requests are rejected with 401; otherwise they pass through
// without a session.
func Auth(auth Authenticator, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				if required {
					writeError(w, http.StatusUnauthorized, "authentication required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			s, err := auth.Authenticate(r.Context(), token)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
			case errors.Is(err, session.ErrUnauthenticated):
				if required {
					writeError(w, http.StatusUnauthorized, "authentication required")
					return
				}
				next.ServeHTTP(w, r)
			default:
				slog.ErrorContext(r.Context(), "session lookup failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		})
	}
}
