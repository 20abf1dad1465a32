package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/segyhp/invoice-marketplace/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an ID, reusing one supplied by the client
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
