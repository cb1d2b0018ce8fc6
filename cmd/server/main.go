package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/cache"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/config"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/db"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/drive"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/jobs"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/metrics"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/server"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sults"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	metrics.Init()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Cache: Redis when configured, in-memory otherwise
	var store cache.Cache
	if cfg.RedisURL != "" {
		store = cache.NewRedis(cfg.RedisURL)
		log.Println("Using Redis contact cache")
	} else {
		store = cache.NewMemory()
		log.Println("Using in-memory contact cache")
	}

	deps := server.Deps{DB: database, Cache: store}

	// Sults CRM integration
	var contactSource *sults.CachedSource
	if cfg.SultsToken != "" {
		client := sults.NewClient(cfg.SultsBaseURL, cfg.SultsToken)
		contactSource = sults.NewCachedSource(client, store, cfg.SultsCacheTTL, slog.Default())
		deps.Contacts = contactSource
	} else {
		log.Println("SULTS_TOKEN not set; reconciliation will run in degraded mode")
	}

	// Google Drive integration
	if creds, err := os.ReadFile(cfg.DriveCredentialsFile); err == nil {
		client, err := drive.NewClient(ctx, creds)
		if err != nil {
			log.Printf("Warning: Failed to initialize Drive client: %v", err)
		} else {
			deps.Downloader = client
		}
	} else {
		log.Printf("Drive credentials not found at %s; auto-upload endpoints disabled", cfg.DriveCredentialsFile)
	}

	// Optional Drive source registry
	sources, err := config.LoadSources()
	if err != nil {
		log.Printf("Warning: Failed to load sources file: %v", err)
	}
	deps.Sources = sources

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, deps); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Background contact snapshot refresh
	if contactSource != nil && cfg.RefreshInterval > 0 {
		refresher := jobs.NewRefresher(contactSource, cfg.RefreshInterval)
		go refresher.Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	<-ctx.Done()

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
