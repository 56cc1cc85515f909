package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"restaurant-admin/internal/common/logger"
)

const requestIDHeader = "X-Request-ID"

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// withRequestLog stamps every request with an id, stores a scoped logger in
// its context and logs the outcome.
func withRequestLog(lg *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		scoped := lg.WithRequestID(id)
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r.WithContext(logger.NewContext(r.Context(), scoped)))

		scoped.Debug("request_completed", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.code,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func loggerFor(r *http.Request, fallback *logger.Logger) *logger.Logger {
	return logger.FromContext(r.Context(), fallback)
}
