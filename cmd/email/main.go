// Package main is the entry point for the Blue Lotus Foods email service.
// It renders quote PDFs and HTML bodies and delivers them over SMTP.
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
	_ "time/tzdata"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/bluelotus-quotes/internal/config"
	"github.com/pkordes/bluelotus-quotes/internal/emailhandler"
	"github.com/pkordes/bluelotus-quotes/internal/logging"
	"github.com/pkordes/bluelotus-quotes/internal/mailer"
	"github.com/pkordes/bluelotus-quotes/internal/metrics"
	"github.com/pkordes/bluelotus-quotes/internal/middleware"
)

const maxBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.LoadEmail()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.New("bluelotus_email")

	// --- Mailer -----------------------------------------------------------
	// Owner notifications are stamped in US Central time.
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		slog.Warn("timezone unavailable, using UTC", "error", err)
		loc = time.UTC
	}

	var sender mailer.Sender
	switch {
	case cfg.SimulationMode:
		slog.Info("email simulation mode enabled; SMTP is skipped")
	case !cfg.HasCredentials():
		slog.Warn("SMTP credentials missing; every send will report not configured")
	default:
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:      cfg.SMTPServer,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			UseTLS:    cfg.SMTPUseTLS,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
		})
	}

	svc := mailer.NewService(sender, mailer.Config{
		SimulationMode: cfg.SimulationMode,
		Configured:     cfg.HasCredentials(),
		Location:       loc,
	}, logger, m)

	// --- Router -----------------------------------------------------------
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMetricsHandler(m))
	r.Use(middleware.NewCORSHandler(middleware.CORSOptions{
		Origins: cfg.CORSOrigins,
		Methods: []string{"*"},
		Headers: []string{"*"},
	}))
	r.Use(middleware.NewMaxBodySizeHandler(maxBodyBytes))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", emailhandler.NewServer(svc).Routes())

	// --- HTTP Server ------------------------------------------------------
	// SMTP delivery plus PDF rendering can take a while; keep WriteTimeout generous.
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "simulation", cfg.SimulationMode)
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
