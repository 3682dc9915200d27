package middlewares

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/suistake/bridge-saga-service/internal/config"
)

const preflightMaxAgeSeconds = 300

// CorsMiddleware lets browser wallets submit and poll saga runs. The trace id
// is exposed so a frontend can quote it in support requests.
func CorsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", traceIdHeader},
		ExposedHeaders: []string{traceIdHeader},
		MaxAge:         preflightMaxAgeSeconds,
	})
	return c.Handler
}
