package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/bankledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader is set on responses served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	pendingMarker = "processing"
)

// IdempotencyMiddleware replays the stored response of a mutating request
// that is retried with the same key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware. A zero ttl
// falls back to usecase.IdempotencyKeyTTL.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodDelete {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		key := scopedKey(r, header)

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists {
			var stored storedResponse
			if string(cached) != pendingMarker && json.Unmarshal(cached, &stored) == nil && stored.Status != 0 {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(IdempotencyReplayHeader, "true")
				w.WriteHeader(stored.Status)
				w.Write(stored.Body)
				return
			}

			// The first request with this key has not finished yet.
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"request with this idempotency key is in progress"}`))
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode >= 200 && recorder.statusCode < 300 && json.Valid(recorder.body.Bytes()) {
			payload, err := json.Marshal(storedResponse{Status: recorder.statusCode, Body: recorder.body.Bytes()})
			if err == nil && m.store.Update(r.Context(), key, payload, m.ttl) == nil {
				return
			}
		}

		// Failed or unstorable responses give the key back for a retry.
		_ = m.store.Release(context.WithoutCancel(r.Context()), key)
	})
}

// scopedKey binds a client key to the caller and the route it was sent to.
func scopedKey(r *http.Request, key string) string {
	owner := "anonymous"
	if user, ok := GetUserFromContext(r.Context()); ok {
		owner = user.ID
	}
	return owner + ":" + r.Method + ":" + r.URL.Path + ":" + key
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
