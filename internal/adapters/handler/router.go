package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/regionalsports/player-registry/registration-service/internal/adapters/middleware"
	"github.com/regionalsports/player-registry/registration-service/internal/core/domain"
)

// RouterDeps bundles everything the HTTP surface needs. Keeping construction
// here lets the tests exercise the exact routing and middleware chain the
// server runs.
type RouterDeps struct {
	Players        *PlayerHandler
	Admin          *AdminHandler
	Auth           *AuthHandler
	Health         *HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	AllowedOrigins []string
	MetricsHandler http.Handler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	requireStaff := deps.AuthMiddleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)

	// Health endpoints (OpenShift compatible)
	if deps.Health != nil {
		r.Get("/health", deps.Health.Health)
		r.Get("/health/ready", deps.Health.Ready)
		r.Get("/health/live", deps.Health.Live)
	}
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// Public endpoints
	r.Post("/players/register", deps.Players.Register)
	r.Get("/players/search", deps.Players.Search)
	r.Get("/players/profile/{id}", deps.Players.Profile)

	r.Post("/auth/login", deps.Auth.Login)
	r.Group(func(g chi.Router) {
		g.Use(requireStaff)
		g.Post("/auth/logout", deps.Auth.Logout)
	})

	r.Route("/admin", func(ar chi.Router) {
		// Gated by the shared setup key, not by a session: it must work
		// before any staff account exists.
		ar.Post("/setup", deps.Admin.Setup)

		ar.Group(func(g chi.Router) {
			g.Use(requireStaff)
			g.Get("/players", deps.Admin.List)
			g.Post("/players", deps.Admin.Create)
			g.Get("/players/{id}", deps.Admin.Detail)
			g.Patch("/players/{id}", deps.Admin.Update)
			g.Delete("/players/{id}", deps.Admin.Delete)
			g.Patch("/players/{id}/status", deps.Admin.UpdateStatus)
			g.Get("/stats", deps.Admin.Stats)
		})
	})

	return r
}
