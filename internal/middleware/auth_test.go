package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rohit6800/UniStay/internal/models"
	"github.com/Rohit6800/UniStay/internal/session"
	"github.com/stretchr/testify/assert"
)

type stubAuth map[string]*session.Session

func (a stubAuth) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	if token == "boom" {
		return nil, errors.New("redis down")
	}
	s, ok := a[token]
	if !ok {
		return nil, session.ErrUnauthenticated
	}
	return s, nil
}

var priya = &session.Session{ID: "sid-1", User: models.User{ID: "user-1", Role: models.RoleStudent, Name: "Priya"}}

func whoAmI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s := SessionFrom(r.Context()); s != nil {
			w.Write([]byte(s.User.ID))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestAuth(t *testing.T) {
	auth := stubAuth{"good": priya}

	tests := []struct {
		name     string
		required bool
		header   string
		query    string
		status   int
		body     string
	}{
		{name: "bearer header", required: true, header: "Bearer good", status: http.StatusOK, body: "user-1"},
		{name: "query token", required: true, query: "?token=good", status: http.StatusOK, body: "user-1"},
		{name: "missing required", required: true, status: http.StatusUnauthorized, body: `{"error":"authentication required"}`},
		{name: "unknown required", required: true, header: "Bearer stale", status: http.StatusUnauthorized, body: `{"error":"authentication required"}`},
		{name: "missing optional", status: http.StatusOK, body: "anonymous"},
		{name: "unknown optional", header: "Bearer stale", status: http.StatusOK, body: "anonymous"},
		{name: "store failure", header: "Bearer boom", status: http.StatusInternalServerError, body: `{"error":"internal error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			Auth(auth, tt.required)(whoAmI()).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.body, rr.Body.String())
		})
	}
}
