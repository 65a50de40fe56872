package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/medcost/internal/config"
)

// CORS applies the configured cross-origin policy. The trace headers set by
// Trace are exposed to browser clients.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil || len(cfg.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{traceIDHeader, requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
