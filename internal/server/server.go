package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/homevista/assetopt/internal/cache"
	"github.com/homevista/assetopt/internal/config"
	"github.com/homevista/assetopt/internal/server/middleware"
	redisstore "github.com/homevista/assetopt/internal/store/redis"
	"github.com/homevista/assetopt/internal/warm"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *redisstore.Store
	registry   *cache.Registry
	warmer     *warm.Warmer
	cfg        *config.Config
}

// New creates a Server with all routes wired. ctx bounds background
// middleware state (rate-limiter cleanup).
func New(ctx context.Context, cfg *config.Config, store *redisstore.Store, registry *cache.Registry, warmer *warm.Warmer) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Admin-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router:   router,
		store:    store,
		registry: registry,
		warmer:   warmer,
		cfg:      cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Open group for the optimization endpoints browsers call directly.
	// 2. Admin-token group for cache maintenance.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

			openConfig := huma.DefaultConfig("Assetopt API", "1.0.0")
			openConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			openAPI := humachi.New(r, openConfig)
			registerOpenRoutes(openAPI, cfg, store)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminToken(cfg.Admin.Token))

			adminConfig := huma.DefaultConfig("Assetopt Admin API", "1.0.0")
			adminConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			adminAPI := humachi.New(r, adminConfig)
			registerAdminRoutes(adminAPI, registry, warmer)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
