package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/analysis"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/cache"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/config"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/db"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/handlers"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/middleware"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/reconcile"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sults"
)

// Deps are the external collaborators the routes need. Contacts,
// Downloader, Cache and Sources may be nil, the affected endpoints then
// report themselves unconfigured instead of failing at startup.
type Deps struct {
	DB         *db.DB
	Contacts   sults.Source
	Downloader handlers.Downloader
	Cache      cache.Cache
	Sources    *config.SourcesConfig
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	analyzer := &handlers.Analyzer{
		Contacts: deps.Contacts,
		Params: analysis.Params{
			TopN:        s.Cfg.TopN,
			SummaryTopN: s.Cfg.SummaryTopN,
		},
		Reconcile: reconcile.Params{
			SampleThreshold: s.Cfg.SampleThreshold,
		},
	}

	uploadHandler := handlers.NewUploadHandler(analyzer, deps.DB, s.Cfg.MaxRows)
	driveHandler := handlers.NewDriveHandler(analyzer, deps.DB, deps.Downloader, deps.Cache, s.Cfg, deps.Sources)
	sultsHandler := handlers.NewSultsHandler(deps.Contacts)
	historyHandler := handlers.NewHistoryHandler(deps.DB)
	probeHandler := handlers.NewProbeHandler(deps.DB)
	dashboardHandler := handlers.NewDashboardHandler()

	// Probes and metrics are never behind auth.
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	requireAuth, optionalAuth := s.authChain(ctx, deps.DB)

	s.App.Get("/", optionalAuth, dashboardHandler.Index)
	s.App.Get("/login", dashboardHandler.Login)

	api := s.App.Group("/api", requireAuth)
	api.Post("/upload", uploadHandler.Upload)
	api.Get("/auto-upload", driveHandler.AutoUpload)
	api.Get("/google-ads", driveHandler.GoogleAds)
	api.Get("/sults/status", sultsHandler.Status)
	api.Get("/history", historyHandler.List)

	return nil
}

// authChain wires OIDC when configured. Without an issuer the service
// runs open, which suits local development and single-user deployments.
func (s *Server) authChain(ctx context.Context, database *db.DB) (require, optional fiber.Handler) {
	passthrough := func(c fiber.Ctx) error { return c.Next() }

	if s.Cfg.OIDCIssuer == "" {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
		return passthrough, passthrough
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		log.Printf("Warning: Failed to initialize OIDC auth: %v", err)
		log.Println("OIDC authentication is disabled. Set OIDC_* environment variables to enable.")
		return passthrough, passthrough
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	authMiddleware := middleware.NewAuthMiddleware(s.sessions, database)
	return authMiddleware.RequireAuth, authMiddleware.OptionalAuth
}
