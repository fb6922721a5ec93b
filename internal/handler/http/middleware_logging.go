package http

import (
	"net/http"
	"time"

	"github.com/avelasq/accountgate/internal/logger"
)

// withLogging emits one access-log line per request: method, URI, the
// status and body size captured by the wrapping responseWriter, and the
// handling duration.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		lw := &responseWriter{ResponseWriter: w}

		method, uri := r.Method, r.RequestURI
		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", method).
			Str("uri", uri).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
