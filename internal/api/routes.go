package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// imageConcurrency caps renders in flight; each can hold up to 64 MiB.
const imageConcurrency = 4

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	// JSON content type
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/field", func(r chi.Router) {
			r.Get("/", handler.GetField)
			r.Get("/value", handler.GetFieldValue)
			r.With(RateLimitMiddleware(imageConcurrency)).Get("/image.png", handler.GetFieldImage)

			// Regeneration is the only write; keep it throttled.
			r.With(RateLimitMiddleware(60)).Post("/regenerate", handler.RegenerateField)
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", handler.ListSnapshots)
			r.Get("/{id}", handler.GetSnapshot)
			r.With(RateLimitMiddleware(imageConcurrency)).Get("/{id}/image.png", handler.GetSnapshotImage)
		})
	})

	return r
}
