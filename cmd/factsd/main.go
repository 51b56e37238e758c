package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pysugar/code-facts/internal/api"
	"github.com/pysugar/code-facts/internal/config"
	"github.com/pysugar/code-facts/internal/db"
	"github.com/pysugar/code-facts/internal/gateway"
	"github.com/pysugar/code-facts/internal/providers/catalog"
	"github.com/pysugar/code-facts/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Provider descriptors. A broken providers file is not fatal.
	if err := catalog.InitFromEnvAndConfig(); err != nil {
		log.Printf("⚠️  Providers file ignored: %v", err)
	}

	// Initialize database
	database, err := db.InitDB(cfg.DBPath, db.ParseLogLevel(cfg.DBLogLevel))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	settings := db.NewSettings(database)
	factLog := db.NewFactLog(database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.SeedSettings(ctx, settings); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}

	gw := gateway.New(settings, factLog, gateway.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))

	router := api.NewRouter(api.Deps{
		Settings:      settings,
		FactLog:       factLog,
		Gateway:       gw,
		AdminPassword: cfg.AdminPassword,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 Code Facts %s starting on http://%s", version.Version, cfg.Addr())
	log.Printf("📚 Facts API: http://%s/api/facts", cfg.DisplayURL())
	log.Printf("🤖 Generate: POST http://%s/api/generate", cfg.DisplayURL())
	if cfg.AdminPassword != "" {
		log.Printf("🔒 /api is protected by basic auth")
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", srv.Addr, err)
	}
	if err := serve(ctx, srv, ln); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// serve runs srv on ln until ctx is cancelled, then waits for in-flight
// requests to drain before returning.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Printf("👋 Shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  Shutdown: %v", err)
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
