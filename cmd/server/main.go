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

	"github.com/gyaneshwarpardhi/trackwire/internal/api"
	"github.com/gyaneshwarpardhi/trackwire/internal/config"
	"github.com/gyaneshwarpardhi/trackwire/internal/session"
	"github.com/gyaneshwarpardhi/trackwire/internal/tracker"
	"github.com/gyaneshwarpardhi/trackwire/internal/transport"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cfgPath := flag.String("config", "configs/trackwire.yaml", "Path to tracker YAML config")
	debug := flag.Bool("debug", false, "Log at debug level")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	loader, err := config.NewLoader(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	// ── Transport ─────────────────────────────────────────────────────────────
	out, closeOut, err := transport.Open(cfg.Transport.Output, cfg.Transport.Pretty)
	if err != nil {
		slog.Error("failed to open transport", "err", err)
		os.Exit(1)
	}
	defer closeOut()

	// ── Tracker ───────────────────────────────────────────────────────────────
	tr := tracker.New(session.New(), out, cfg)
	slog.Info("tracker ready", "sdk_version", cfg.SDK.SDKVersion, "currency", cfg.SDK.CurrencyCode, "output", cfg.Transport.Output)

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(newCfg *config.Config) {
		if newCfg.Transport != cfg.Transport {
			slog.Warn("transport settings changed; restart to apply", "output", newCfg.Transport.Output)
		}
		tr.Reconfigure(newCfg)
		slog.Info("tracker reconfigured", "version", newCfg.Version)
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("config watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.New(tr, loader),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", *addr)
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

	if tr.Session().SessionID() != "" {
		if _, err := tr.EndSession(shutCtx); err != nil {
			slog.Warn("failed to close session on shutdown", "err", err)
		}
	}
	slog.Info("goodbye")
}
