package idempotency

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/segyhp/invoice-marketplace/internal/middleware"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"
	maxKeyLength   = 255
)

// Record is a stored response
type Record struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type Store interface {
	Get(ctx context.Context, key string) (*Record, bool, error)
	Save(ctx context.Context, key string, record *Record, ttl time.Duration) error
}

// Key scopes an idempotency key to one user and one endpoint
func Key(userID, endpoint, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s", userID, endpoint, key)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Record, bool, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read idempotency record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, fmt.Errorf("failed to decode idempotency record: %w", err)
	}
	return &record, true, nil
}

// Save keeps the first record written under key
func (s *RedisStore) Save(ctx context.Context, key string, record *Record, ttl time.Duration) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode idempotency record: %w", err)
	}
	if err := s.client.SetNX(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save idempotency record: %w", err)
	}
	return nil
}

// bufferedWriter captures the response while passing it through
type bufferedWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bufferedWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	w.body.Write(p)
	return w.ResponseWriter.Write(p)
}

// Middleware replays the stored response for a repeated Idempotency-Key.
// Only successful responses are stored. Store failures never block the request.
func Middleware(store Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderKey)
			if key == "" || len(key) > maxKeyLength {
				next.ServeHTTP(w, r)
				return
			}

			caller, err := middleware.CallerFromContext(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			storeKey := Key(caller.ID.String(), r.Method+" "+r.URL.Path, key)

			record, found, err := store.Get(ctx, storeKey)
			if err != nil {
				logger.Warn(ctx, "idempotency lookup failed", "error", err)
			}
			if found {
				if record.ContentType != "" {
					w.Header().Set("Content-Type", record.ContentType)
				}
				w.Header().Set(HeaderReplayed, "true")
				w.WriteHeader(record.Status)
				_, _ = w.Write(record.Body)
				return
			}

			buffered := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(buffered, r)

			if buffered.status < 200 || buffered.status >= 300 {
				return
			}

			saved := &Record{
				Status:      buffered.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        buffered.body.Bytes(),
			}
			if err := store.Save(ctx, storeKey, saved, ttl); err != nil {
				logger.Warn(ctx, "idempotency save failed", "error", err)
			}
		})
	}
}
