package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/ddongo/internal/cache"
	"github.com/udisondev/ddongo/internal/config"
	"github.com/udisondev/ddongo/internal/db"
	"github.com/udisondev/ddongo/internal/db/sqlite"
	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/game/storage"
	"github.com/udisondev/ddongo/internal/gameserver"
)

// backend — выбранное хранилище в виде интерфейсов, которые нужны engine и handler.
type backend struct {
	loader      gameserver.CharacterLoader
	persistence equip.Persistence
	items       storage.ItemStore
	close       func()
}

// openBackend connects the configured storage driver and applies migrations.
func openBackend(ctx context.Context, cfg config.GameServer) (*backend, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dsn := cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(ctx, dsn); err != nil {
			database.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected", "driver", cfg.StorageDriver)

		store := database.NewStore()
		return &backend{
			loader:      store,
			persistence: store,
			items:       store,
			close:       database.Close,
		}, nil

	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("database opened", "driver", cfg.StorageDriver, "path", cfg.SQLitePath)
		return &backend{
			loader:      store,
			persistence: store,
			items:       store,
			close:       func() { _ = store.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// openSnapshotCache connects Redis. Returns nil cache when Redis is not
// configured.
func openSnapshotCache(ctx context.Context, cfg config.RedisConfig) (*cache.SnapshotCache, func(), error) {
	if cfg.Addr == "" {
		return nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("pinging redis %s: %w", cfg.Addr, err)
	}

	snapshots, err := cache.NewSnapshotCache(rdb, cfg.SnapshotTTL)
	if err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	slog.Info("equip snapshot cache connected", "addr", cfg.Addr, "ttl", cfg.SnapshotTTL)
	return snapshots, func() { _ = rdb.Close() }, nil
}
