// Command gameserver runs the DDON equipment game server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/ddongo/internal/config"
)

const defaultConfigPath = "config/gameserver.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "gameserver",
	Short:         "DDON equipment game server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	path := defaultConfigPath
	if p := os.Getenv("DDON_CONFIG"); p != "" {
		path = p
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", path, "path to gameserver.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig loads the config and installs the default slog logger at the
// configured level.
func loadConfig() (config.GameServer, error) {
	cfg, err := config.LoadGameServer(configPath)
	if err != nil {
		return cfg, fmt.Errorf("loading game config: %w", err)
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return cfg, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})))
	return cfg, nil
}
