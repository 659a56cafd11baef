package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nomadflamingo/gymlog/internal/config"
	"github.com/nomadflamingo/gymlog/internal/ingest/gymlog"
	"github.com/nomadflamingo/gymlog/internal/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	os.Exit(run(*configPath, log))
}

// run returns the process exit code. Deferred cleanup such as closing the
// tsnet node happens before main exits.
func run(configPath string, log *slog.Logger) int {
	log.Info("gymlog server starting", "version", Version)

	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		return 1
	}

	provider := gymlog.NewProvider(log)
	srv := server.New(provider, cfg.Auth.APIKey, cfg.Server.MaxBodyBytes, log)
	if cfg.Auth.APIKey == "" {
		log.Warn("auth.api_key not set, parse endpoint is open")
	}

	// Start server on tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			return 1
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			return 1
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := cfg.Server.Addr()
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			return 1
		}
		log.Info("server starting", "addr", addr, "mode", "plain http")
	}

	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, httpSrv, listener, log); err != nil {
		log.Error("server error", "error", err)
		return 1
	}
	log.Info("server stopped")
	return 0
}

// serve runs httpSrv on l until ctx is done, then shuts it down gracefully.
// A Serve failure is returned instead of ending the process.
func serve(ctx context.Context, httpSrv *http.Server, l net.Listener, log *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		errc <- httpSrv.Serve(l)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "reason", context.Cause(ctx))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
