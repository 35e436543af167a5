// main starts the wellbeing site.
//
// STARTUP SEQUENCE:
//  1. Load configuration from the environment (.env and an optional YAML file)
//  2. Initialise the logger
//  3. Open the SQLite database and create missing tables
//  4. Build the SMTP sender, if SMTP_HOST is set
//  5. Register all HTTP routes and start the server
//  6. Block until SIGINT/SIGTERM, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	PORT=3000 ADMIN_PASS=change-me go run ./cmd/wellbeing-site
//
// or with a config file:
//
//	go run ./cmd/wellbeing-site --config=config/local.yaml
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

	"github.com/aanand-mishra/wellbeing-site/internal/config"
	"github.com/aanand-mishra/wellbeing-site/internal/http/router"
	"github.com/aanand-mishra/wellbeing-site/internal/mailer"
	"github.com/aanand-mishra/wellbeing-site/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting wellbeing-site",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	if cfg.Admin.Pass == "admin" {
		log.Warn("ADMIN_PASS is the default value; set it before exposing /admin")
	}

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Mail Transport ─────────────────────────────────────────────────
	// Without SMTP_HOST the sender is nil and /api/send-mail records
	// messages as "mocked".
	sender := mailer.New(cfg.SMTP)
	if sender == nil {
		log.Info("SMTP not configured; outgoing mail will be mocked")
	} else {
		log.Info("SMTP configured",
			slog.String("host", cfg.SMTP.Host),
			slog.Int("port", cfg.SMTP.Port),
			slog.Bool("secure", cfg.SMTP.Secure))
	}

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr(),
		Handler: router.New(cfg, storage, sender),

		ReadTimeout: 10 * time.Second,
		// Long enough for a slow SMTP handshake inside /api/send-mail.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", server.Addr))

		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 6. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
