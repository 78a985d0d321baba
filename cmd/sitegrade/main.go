package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/sitegrade/analyzer"
	"github.com/use-agent/sitegrade/api"
	"github.com/use-agent/sitegrade/config"
	"github.com/use-agent/sitegrade/fetcher"
	"github.com/use-agent/sitegrade/insights"
	"github.com/use-agent/sitegrade/schemafaq"
	"github.com/use-agent/sitegrade/session"
	"github.com/use-agent/sitegrade/store"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("sitegrade starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"db", cfg.Store.Path,
	)

	// ── 3. Open result store ────────────────────────────────────────
	results, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open result store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer results.Close()

	// ── 4. Wire the analysis pipeline ───────────────────────────────
	sessions := session.NewStore(cfg.Analyzer.SessionTTL)
	f := fetcher.New(cfg.Fetcher)
	classifier := schemafaq.New(cfg.Analyzer.EvidenceCap)

	// Remote recommendations are optional: with no base URL configured the
	// generator goes straight to the rule-based fallback.
	var llmClient *insights.Client
	if cfg.Insights.BaseURL != "" {
		llmClient = insights.NewClient(
			&http.Client{Timeout: cfg.Insights.Timeout},
			cfg.Insights.BaseURL,
			cfg.Insights.APIKey,
			cfg.Insights.Model,
		)
	}
	generator := insights.NewGenerator(llmClient, cfg.Insights)

	an := analyzer.New(f, classifier, generator, sessions, results, cfg.Analyzer, cfg.Webhook)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(an, sessions, results, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("sitegrade stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
