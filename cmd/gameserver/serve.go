package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/game/storage"
	"github.com/udisondev/ddongo/internal/gameserver"
	"github.com/udisondev/ddongo/internal/observe"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("ddon game server starting",
		"bind", cfg.BindAddress,
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"log_level", cfg.LogLevel)

	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	store, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	snapshots, closeCache, err := openSnapshotCache(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeCache()

	clientManager := gameserver.NewClientManager()
	engine := equip.NewEngine(store.persistence, storage.NewMover(store.items), gameserver.NewDispatcher(clientManager))
	engine.SetMetrics(metrics)

	handler := gameserver.NewHandler(clientManager, store.loader, engine, gameserver.NewEntityLocks())
	if snapshots != nil {
		engine.SetSnapshotSink(snapshots)
		handler.SetSnapshotStore(snapshots)
	}

	server, err := gameserver.NewServer(cfg, handler, clientManager)
	if err != nil {
		return fmt.Errorf("creating game server: %w", err)
	}
	server.SetMetrics(metrics)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Run(gctx); err != nil {
			return fmt.Errorf("game server: %w", err)
		}
		return nil
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("metrics endpoint started", "address", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("ddon game server stopped")
	return nil
}
