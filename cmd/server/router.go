package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/r4yfon/flashcarder/internal/api"
	apiMiddleware "github.com/r4yfon/flashcarder/internal/api/middleware"
	"github.com/r4yfon/flashcarder/internal/api/shared"
	"github.com/rs/cors"
)

// corsMaxAgeSeconds is how long browsers may cache a preflight response.
const corsMaxAgeSeconds = 300

// setupRouter creates the application router with its middleware stack and
// every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         corsMaxAgeSeconds,
	}).Handler)

	r.Route("/api", func(r chi.Router) {
		api.RegisterRoutes(r, app.noteHandler, app.flashcardHandler)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
