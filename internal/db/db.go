package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool and hands it to the repositories.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Store bundles the repositories the game server needs.
type Store struct {
	*EquipRepository
	*StorageItemRepository
	*CharacterRepository
}

// NewStore creates every repository over d's pool.
func (d *DB) NewStore() *Store {
	return &Store{
		EquipRepository:       NewEquipRepository(d.pool),
		StorageItemRepository: NewStorageItemRepository(d.pool),
		CharacterRepository:   NewCharacterRepository(d.pool),
	}
}
