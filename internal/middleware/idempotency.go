package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"
	processingMarker  = "PROCESSING"
	lockTTL           = 10 * time.Second
	resultTTL         = 24 * time.Hour
)

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Keys are scoped to the caller's user. A key whose first request is still in
// flight gets 409; failed requests release the key so the client can retry.
// Requests without the header, and every request when Redis is unreachable,
// pass through untouched.
func Idempotency(redisClient *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(idempotencyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			scope := "anonymous"
			if s := SessionFrom(r.Context()); s != nil {
				scope = s.User.ID
			}
			idemKey := fmt.Sprintf("idempotency:%s:%s", scope, key)
			ctx := r.Context()

			acquired, err := redisClient.SetNX(ctx, idemKey, processingMarker, lockTTL).Result()
			if err != nil {
				slog.WarnContext(ctx, "idempotency lock failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !acquired {
				val, err := redisClient.Get(ctx, idemKey).Result()
				if errors.Is(err, redis.Nil) || val == processingMarker {
					writeError(w, http.StatusConflict, "request with this Idempotency-Key is in progress")
					return
				}
				if err != nil {
					slog.WarnContext(ctx, "idempotency lookup failed", "error", err)
					next.ServeHTTP(w, r)
					return
				}

				var prev storedResponse
				if err := json.Unmarshal([]byte(val), &prev); err != nil {
					writeError(w, http.StatusConflict, "request already processed")
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(prev.Status)
				w.Write(prev.Body)
				return
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 300 || !json.Valid(rec.body.Bytes()) {
				redisClient.Del(ctx, idemKey)
				return
			}
			val, _ := json.Marshal(storedResponse{Status: rec.status, Body: rec.body.Bytes()})
			if err := redisClient.Set(ctx, idemKey, val, resultTTL).Err(); err != nil {
				slog.WarnContext(ctx, "idempotency store failed", "error", err)
			}
		})
	}
}
