package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/vangers-srv/internal/config"
	"github.com/udisondev/vangers-srv/internal/metrics"
	"github.com/udisondev/vangers-srv/internal/vangerssrv"
)

const defaultConfigPath = "config/vangers-srv.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath := defaultConfigPath
	if p := os.Getenv("VANGERS_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	port := flag.String("port", "", "TCP port to listen on (overrides config and VANGERS_PORT)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if env := os.Getenv("VANGERS_PORT"); env != "" {
		cfg.Port = env
	}
	if *port != "" {
		cfg.Port = *port
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("vangers-srv starting", "port", cfg.Port, "max_connections", cfg.MaxConnections)

	m, reg := metrics.New()
	srv := vangerssrv.New(cfg, m)

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("listening on port %s: %w", cfg.Port, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			slog.Info("starting metrics server", "addr", cfg.MetricsAddr)
			if err := metrics.Serve(gctx, cfg.MetricsAddr, reg); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("accepting connections", "addr", ln.Addr())
		if err := srv.Run(gctx, ln); err != nil {
			return fmt.Errorf("session server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
