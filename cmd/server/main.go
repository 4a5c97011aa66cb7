package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aria-labs/tinyaria/internal/api"
	"github.com/aria-labs/tinyaria/internal/config"
	"github.com/aria-labs/tinyaria/internal/engine"
	"github.com/aria-labs/tinyaria/internal/predicate"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	configDir := flag.String("config", "configs", "Configuration directory")
	environment := flag.String("environment", "", "Environment overlay (development, production)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	cfg, err := config.Load(*configDir, *environment)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	// ── Compile the initial rule table ───────────────────────────────────────
	eng := engine.New(cfg.Subsystems, predicate.Builtins(), engine.CompileOptions{})
	text, err := os.ReadFile(cfg.RulesPath)
	if err != nil {
		slog.Error("failed to read rule document", "path", cfg.RulesPath, "err", err)
		os.Exit(1)
	}
	table, err := eng.Load(string(text))
	if err != nil {
		slog.Error("failed to compile rule document", "path", cfg.RulesPath, "err", err)
		os.Exit(1)
	}
	for _, w := range table.Warnings {
		slog.Warn("compile warning", "warning", w)
	}
	slog.Info("rule table compiled", "rules", len(table.Rules), "threshold", table.Threshold)

	// ── Recompile on rule-document changes ───────────────────────────────────
	stopWatch, err := config.WatchFile(cfg.RulesPath, func() {
		text, err := os.ReadFile(cfg.RulesPath)
		if err != nil {
			slog.Warn("reload skipped: read failed", "err", err)
			return
		}
		t, err := eng.Load(string(text))
		if err != nil {
			slog.Warn("reload skipped: compile failed, previous table retained", "err", err)
			return
		}
		for _, w := range t.Warnings {
			slog.Warn("compile warning", "warning", w)
		}
		slog.Info("rule table reloaded", "rules", len(t.Rules))
	})
	if err != nil {
		slog.Warn("rules watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(eng, cfg.RulesPath)
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	slog.Info("goodbye")
}
