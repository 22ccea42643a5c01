// Package main is the entry point for the Blue Lotus Foods quote API.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/bluelotus-quotes/internal/config"
	"github.com/pkordes/bluelotus-quotes/internal/handler"
	"github.com/pkordes/bluelotus-quotes/internal/logging"
	"github.com/pkordes/bluelotus-quotes/internal/metrics"
	"github.com/pkordes/bluelotus-quotes/internal/middleware"
	"github.com/pkordes/bluelotus-quotes/internal/notify"
	"github.com/pkordes/bluelotus-quotes/internal/repo"
	"github.com/pkordes/bluelotus-quotes/internal/service"
	"github.com/pkordes/bluelotus-quotes/migrations"
)

// maxBodyBytes caps request bodies. A quote with many rows is still far below it.
const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.LoadAPI()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.New("bluelotus_api")

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		slog.Error("invalid database URL", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// An unreachable database is not fatal: requests fail until it comes back.
	if err := pingDB(pool, cfg.DBPingTimeout); err != nil {
		slog.Warn("database not reachable at startup", "error", err)
	} else {
		slog.Info("database connection established")
		if cfg.AutoMigrate {
			if err := migrate(context.Background(), pool); err != nil {
				slog.Error("failed to apply migrations", "error", err)
				os.Exit(1)
			}
		}
	}

	// --- Services ---------------------------------------------------------
	vendors := repo.NewVendorRepo(pool)
	dictionary := repo.NewDictionaryRepo(pool)
	fish := repo.NewFishRepo(pool)
	quotes := repo.NewQuoteRepo(pool)
	emailLogs := repo.NewEmailLogRepo(pool)

	renderer := notify.NewClient(cfg.EmailServiceURL, cfg.NotificationTimeout)
	dispatcher := service.NewDispatcher(quotes, emailLogs, renderer, service.DispatcherConfig{
		OwnerEmail: cfg.QuoteNotificationEmail,
		Timeout:    cfg.NotificationTimeout,
		Logger:     logger,
		Metrics:    m,
	})
	if cfg.QuoteNotificationEmail == "" {
		slog.Warn("QUOTE_NOTIFICATION_EMAIL not set; owner notifications will fail")
	}

	reference := service.NewReferenceService(vendors, dictionary, fish)
	quoteService := service.NewQuoteService(quotes, dispatcher, logger, m)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMetricsHandler(m))
	r.Use(middleware.NewCORSHandler(middleware.CORSOptions{
		Origins:          cfg.CORS.Origins,
		AllowCredentials: cfg.CORS.AllowCredentials,
		Methods:          cfg.CORS.Methods,
		Headers:          cfg.CORS.Headers,
	}))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", handler.NewServer(reference, quoteService, dispatcher).Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout must outlast a quote create, which waits for both emails.
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.NotificationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "email_service", cfg.EmailServiceURL)
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

// pingDB checks connectivity without letting startup hang on an
// unreachable database.
func pingDB(pool *pgxpool.Pool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return pool.Ping(ctx)
}

// migrate applies every pending migration. goose needs database/sql, so the
// pool is wrapped rather than opening a second connection.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	versions, err := migrations.Up(ctx, db)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "versions", versions)
	return nil
}
