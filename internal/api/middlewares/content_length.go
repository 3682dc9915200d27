package middlewares

import (
	"net/http"

	"github.com/suistake/bridge-saga-service/internal/config"
)

// ContentLengthMiddleware rejects oversized bodies before they are decoded.
func ContentLengthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				if r.ContentLength > cfg.Server.MaxContentLength {
					http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
					return
				}
				// ContentLength is -1 for chunked bodies.
				r.Body = http.MaxBytesReader(w, r.Body, cfg.Server.MaxContentLength)
			}
			next.ServeHTTP(w, r)
		})
	}
}
