package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupMiddleware() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// Request ID for tracing
		middleware.RequestID,

		// Logging middleware
		middleware.Logger,

		// Recovery middleware
		middleware.Recoverer,

		// Trailing slashes route the same as without
		middleware.StripSlashes,

		// CORS middleware for public API
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}),

		// Timeout middleware
		middleware.Timeout(30 * time.Second),
	}
}

// RateLimitMiddleware caps in-flight requests at limit, queueing up to twice
// as many for at most a minute.
func RateLimitMiddleware(limit int) func(http.Handler) http.Handler {
	return middleware.ThrottleBacklog(limit, limit*2, time.Minute)
}
