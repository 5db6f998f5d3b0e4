package router

import (
	"net/http"

	"cosmetics-store-api/internal/handler"
	"cosmetics-store-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	CosmeticsHandler *handler.CosmeticsHandler
	InventoryHandler *handler.InventoryHandler
	AuthHandler      *handler.AuthHandler
	UsersHandler     *handler.UsersHandler
	AdminHandler     *handler.AdminHandler

	// Identity resolves the caller on every /api/v1 route.
	Identity func(http.Handler) http.Handler
	// RateLimit guards inventory mutations.
	RateLimit func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type",
			middleware.RequestIDHeader, middleware.UserIDHeader, middleware.SessionTokenHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, middleware.UserIDHeader},
		MaxAge:         300,
	}))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		r.Group(func(r chi.Router) {
			if cfg.Identity != nil {
				r.Use(cfg.Identity)
			}

			if cfg.CosmeticsHandler != nil {
				r.Route("/cosmetics", func(r chi.Router) {
					r.Get("/", cfg.CosmeticsHandler.List)
					r.Get("/search", cfg.CosmeticsHandler.Search)
					r.Get("/filter-options", cfg.CosmeticsHandler.FilterOptions)
					r.Get("/new", cfg.CosmeticsHandler.New)
					r.Get("/shop", cfg.CosmeticsHandler.Shop)
				})
			}

			if cfg.AuthHandler != nil {
				r.Route("/auth", func(r chi.Router) {
					r.Post("/register", cfg.AuthHandler.Register)
					r.Post("/login", cfg.AuthHandler.Login)
					r.Post("/logout", cfg.AuthHandler.Logout)
					r.Get("/me", cfg.AuthHandler.Me)
				})
			}

			if cfg.InventoryHandler != nil {
				r.Route("/inventory", func(r chi.Router) {
					r.Use(middleware.RequireIdentity)

					r.Get("/", cfg.InventoryHandler.List)
					r.Get("/balance", cfg.InventoryHandler.Balance)
					r.Get("/history", cfg.InventoryHandler.History)

					r.Group(func(r chi.Router) {
						if cfg.RateLimit != nil {
							r.Use(cfg.RateLimit)
						}
						r.Post("/purchase/{cosmeticId}", cfg.InventoryHandler.Purchase)
						r.Post("/refund/{cosmeticId}", cfg.InventoryHandler.Refund)
						r.Post("/bundle", cfg.InventoryHandler.Bundle)
					})
				})
			}

			if cfg.UsersHandler != nil {
				r.Route("/users", func(r chi.Router) {
					r.Get("/", cfg.UsersHandler.List)
					r.Get("/{id}", cfg.UsersHandler.Get)
					r.Get("/{id}/cosmetics", cfg.UsersHandler.Cosmetics)
				})
			}

			if cfg.AdminHandler != nil {
				r.With(middleware.RequireIdentity).Get("/admin/stats", cfg.AdminHandler.GetStats)
			}
		})
	})

	return r
}
