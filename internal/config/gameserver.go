package config

import (
	"fmt"
	"time"

	"github.com/udisondev/ddongo/internal/constants"
)

// StorageDriver selects the persistence backend.
type StorageDriver string

const (
	StoragePostgres StorageDriver = "postgres"
	StorageSQLite   StorageDriver = "sqlite"
)

// RedisConfig holds the equip snapshot cache connection.
// Empty Addr disables the cache.
type RedisConfig struct {
	Addr        string        `yaml:"addr" env:"ADDR"`
	Password    string        `yaml:"password" env:"PASSWORD"`
	DB          int           `yaml:"db" env:"DB"`
	SnapshotTTL time.Duration `yaml:"snapshot_ttl" env:"SNAPSHOT_TTL"`
}

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Network
	BindAddress string `yaml:"bind_address" env:"BIND_ADDRESS"`
	Port        int    `yaml:"port" env:"PORT"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// Persistence
	StorageDriver StorageDriver  `yaml:"storage_driver" env:"STORAGE_DRIVER"`
	Database      DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	SQLitePath    string         `yaml:"sqlite_path" env:"SQLITE_PATH"`

	Redis RedisConfig `yaml:"redis" envPrefix:"REDIS_"`

	// MetricsAddr — адрес /metrics; пусто — endpoint выключен.
	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`

	// Write queue / timeouts
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`     // per-write deadline (default: 5s)
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`       // idle client disconnect (default: 120s)
	SendQueueSize int           `yaml:"send_queue_size" env:"SEND_QUEUE_SIZE"` // per-client outbox capacity (default: 256)
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		BindAddress:   "0.0.0.0",
		Port:          constants.DefaultGameServerPort,
		LogLevel:      "info",
		StorageDriver: StorageSQLite,
		SQLitePath:    "ddon.db",
		WriteTimeout:  5 * time.Second,
		ReadTimeout:   120 * time.Second,
		SendQueueSize: 256,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "ddon",
			Password: "ddon",
			DBName:   "ddon",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			SnapshotTTL: time.Hour,
		},
	}
}

// Validate checks values the server cannot start with.
func (c GameServer) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.StorageDriver {
	case StoragePostgres:
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if c.SendQueueSize <= 0 {
		return fmt.Errorf("send_queue_size must be positive")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadGameServer loads game server config from a YAML file, then applies
// DDON_* environment overrides. If the file doesn't exist, defaults are used.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
