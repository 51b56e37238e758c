// Package api assembles the HTTP routes of factsd.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pysugar/code-facts/internal/api/handlers"
	"github.com/pysugar/code-facts/internal/api/middleware"
	"github.com/pysugar/code-facts/internal/logging"
)

// Deps are the components the routes are served from.
type Deps struct {
	Settings      handlers.SettingsStore
	FactLog       handlers.FactLogStore
	Gateway       handlers.Gateway
	AdminPassword string
}

// NewRouter builds the router. /api is behind basic auth when AdminPassword
// is set.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AdminAuth(d.AdminPassword))

		// Built-in catalog
		r.Get("/facts", handlers.FactsHandler())
		r.Get("/facts/random", handlers.RandomFactHandler())
		r.Get("/facts/{index}", handlers.FactByIndexHandler())

		// Settings
		r.Get("/settings", handlers.SettingsHandler(d.Settings))
		r.Get("/settings/{key}", handlers.GetSettingHandler(d.Settings))
		r.Put("/settings/{key}", handlers.PutSettingHandler(d.Settings))

		// Generated-fact log
		r.Get("/generated", handlers.GeneratedFactsHandler(d.FactLog))
		r.Delete("/generated", handlers.ClearGeneratedFactsHandler(d.FactLog))
		r.Delete("/generated/{id}", handlers.DeleteGeneratedFactHandler(d.FactLog))
		r.Post("/generate", handlers.GenerateHandler(d.Gateway))

		// Providers
		r.Get("/providers", handlers.ProvidersHandler())
		r.Post("/providers/{id}/models", handlers.ProviderModelsHandler(d.Gateway))
		r.Post("/providers/{id}/test", handlers.TestProviderHandler(d.Gateway))

		r.Get("/version", handlers.VersionHandler())
	})

	return r
}
