package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/edgeid/internal/api/handler"
	mw "github.com/edvin/edgeid/internal/api/middleware"
	"github.com/edvin/edgeid/internal/cloudflare"
	"github.com/edvin/edgeid/internal/config"
	"github.com/edvin/edgeid/internal/core"
	"github.com/edvin/edgeid/internal/publicip"
	"github.com/edvin/edgeid/internal/runner"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	resolver handler.IPResolver
	corePool *pgxpool.Pool
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, coreDB *pgxpool.Pool, cfg *config.Config) *Server {
	cf := cloudflare.NewClient(cfg)
	services := core.NewServices(coreDB, cf, cf, runner.New(), cfg)

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: services,
		resolver: publicip.NewResolver(),
		corePool: coreDB,
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.cfg.APIKey))

		// Public IP discovery
		publicIP := handler.NewPublicIP(s.resolver)
		r.Get("/public-ip", publicIP.Get)

		// Settings
		settings := handler.NewSettings(s.services.Settings)
		r.Get("/settings", settings.Get)
		r.Put("/settings", settings.Update)

		// Domain aliases
		alias := handler.NewAlias(s.services.Alias)
		r.Get("/aliases", alias.List)
		r.Post("/aliases", alias.Create)
		r.Delete("/aliases/{id}", alias.Delete)

		// DNS sync
		dns := handler.NewDNS(s.services.DNS, s.services.Settings, s.resolver)
		r.Post("/dns/sync", dns.Sync)

		// Certificate packs
		cert := handler.NewCertificate(s.services.Certificate)
		r.Get("/certificates/packs", cert.ListPacks)
		r.Post("/certificates/packs", cert.Issue)

		// Tunnel connector
		connector := handler.NewConnector(s.services.Connector)
		r.Post("/connector/install", connector.Install)
		r.Post("/connector/status-checks", connector.StatusChecks)
		r.Post("/connector/commands", connector.RunCommand)
		r.Get("/connector/logs", connector.Logs)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.corePool.Ping(ctx); err != nil {
		checks["core_db"] = err.Error()
		healthy = false
	} else {
		checks["core_db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
