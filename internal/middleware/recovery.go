package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/segyhp/invoice-marketplace/pkg/logger"
	"github.com/segyhp/invoice-marketplace/pkg/response"
)

// Recovery turns a handler panic into a 500 response
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(r.Context(), "panic recovered",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				response.InternalServerError(w, "Internal server error", nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
