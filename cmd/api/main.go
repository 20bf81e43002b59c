// Package main is the entry point for the Tripfolio API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarques/tripfolio/backend/internal/config"
	"github.com/dmarques/tripfolio/backend/internal/export"
	"github.com/dmarques/tripfolio/backend/internal/gateway"
	"github.com/dmarques/tripfolio/backend/internal/handler"
	"github.com/dmarques/tripfolio/backend/internal/identity"
	"github.com/dmarques/tripfolio/backend/internal/logging"
	"github.com/dmarques/tripfolio/backend/internal/middleware"
	"github.com/dmarques/tripfolio/backend/internal/service"
	"github.com/dmarques/tripfolio/backend/internal/store"
	"github.com/dmarques/tripfolio/backend/migrations"
)

// maxRequestBody caps incoming request bodies. Every payload is a small
// JSON document; anything near this limit is not a legitimate client.
const maxRequestBody = 1 << 20 // 1 MiB

func main() {
	// --- Config and logger ------------------------------------------------
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// --- Store ------------------------------------------------------------
	// With a DATABASE_URL the documents live in Postgres and watch
	// notifications ride LISTEN/NOTIFY. Without one the server still runs,
	// but on an in-memory store that forgets everything on restart.
	var st store.DocumentStore
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		st = store.NewPostgres(pool)
	} else {
		slog.Warn("DATABASE_URL not set, documents will not survive a restart")
		st = store.NewMemory()
	}

	// --- Identity -----------------------------------------------------------
	// No signing secret means no identities can be issued; the server keeps
	// running in local-only mode where every request shares one identity.
	ids, err := identity.NewManager(cfg.AuthSecret, cfg.TokenTTL)
	if err != nil {
		slog.Warn("identity disabled, running local-only", "error", err)
		ids = nil
	}

	// --- Service ------------------------------------------------------------
	gw := gateway.New(st, cfg.AppID, logger)

	var exporter export.Exporter
	if cfg.ExportEnabled {
		exporter = export.NewPDF()
	} else {
		slog.Info("PDF export disabled")
	}

	trips := service.NewTripService(gw, exporter, logger)
	defer trips.Close()

	// --- Router -------------------------------------------------------------
	// Middleware order: RequestID → RealIP → SlogLogger → Recoverer →
	// metrics → CORS → body limit. Identity runs per-route inside the API
	// router so /healthz and /session stay public.
	api := handler.NewServer(trips, ids)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMetricsHandler())
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBody))

	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", api.Router(middleware.NewIdentityHandler(ids)))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending schema migrations. goose needs database/sql,
// so a short-lived pgx stdlib connection is opened just for this.
func migrate(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
