// Package sqlite provides a single-node SQLite store with the same contracts
// as the PostgreSQL repositories: equip records, storage slots and the
// character loader.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/ddongo/internal/db/sqlite/migrations"
	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/game/storage"
	"github.com/udisondev/ddongo/internal/model"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store persists game state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ equip.Persistence = (*Store)(nil)
	_ storage.ItemStore = (*Store)(nil)
)

// Open opens a SQLite store at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := MemoryPath
	if path != MemoryPath {
		dsn = filepath.Clean(path)
	}
	dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// один writer; для :memory: ещё и одна общая база
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &Store{sqlDB: sqlDB}, nil
}

func migrate(ctx context.Context, sqlDB *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// DeleteEquipItem removes the record of one equip slot.
func (s *Store) DeleteEquipItem(ctx context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM equip_items WHERE common_id = ? AND job = ? AND equip_type = ? AND equip_slot = ?`,
		int64(commonID), int64(job), int64(equipType), int64(slot),
	)
	if err != nil {
		return fmt.Errorf("deleting equip item %d/%s/%s/%d: %w", commonID, job, equipType, slot, err)
	}
	return nil
}

// ReplaceEquipItem upserts the record of one equip slot.
func (s *Store) ReplaceEquipItem(ctx context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8, uid model.ItemUID) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO equip_items (common_id, job, equip_type, equip_slot, uid) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (common_id, job, equip_type, equip_slot) DO UPDATE SET uid = excluded.uid`,
		int64(commonID), int64(job), int64(equipType), int64(slot), string(uid),
	)
	if err != nil {
		return fmt.Errorf("replacing equip item %d/%s/%s/%d: %w", commonID, job, equipType, slot, err)
	}
	return nil
}

// DeleteEquipJobItem removes the record of one job-item slot.
func (s *Store) DeleteEquipJobItem(ctx context.Context, commonID uint32, job model.JobID, slot uint8) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM equip_job_items WHERE common_id = ? AND job = ? AND equip_slot = ?`,
		int64(commonID), int64(job), int64(slot),
	)
	if err != nil {
		return fmt.Errorf("deleting job item %d/%s/%d: %w", commonID, job, slot, err)
	}
	return nil
}

// ReplaceEquipJobItem upserts the record of one job-item slot.
func (s *Store) ReplaceEquipJobItem(ctx context.Context, commonID uint32, job model.JobID, slot uint8, uid model.ItemUID) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO equip_job_items (common_id, job, equip_slot, uid) VALUES (?, ?, ?, ?)
		 ON CONFLICT (common_id, job, equip_slot) DO UPDATE SET uid = excluded.uid`,
		int64(commonID), int64(job), int64(slot), string(uid),
	)
	if err != nil {
		return fmt.Errorf("replacing job item %d/%s/%d: %w", commonID, job, slot, err)
	}
	return nil
}

// SelectItemByUID loads one item. Returns equip.ErrNotFound (wrapped) if absent.
func (s *Store) SelectItemByUID(ctx context.Context, uid model.ItemUID) (*model.Item, error) {
	var itemID, color, plus int64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT item_id, color, plus_value FROM items WHERE uid = ?`, string(uid),
	).Scan(&itemID, &color, &plus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %s: %w", uid, equip.ErrNotFound)
		}
		return nil, fmt.Errorf("selecting item %s: %w", uid, err)
	}
	item, err := model.NewItem(uid, uint32(itemID))
	if err != nil {
		return nil, fmt.Errorf("creating item model: %w", err)
	}
	return item.WithAppearance(uint8(color), uint8(plus)), nil
}

// ReplaceStorageItem upserts one storage slot.
func (s *Store) ReplaceStorageItem(ctx context.Context, characterID uint32, storageType model.StorageType, slotNo uint16, uid model.ItemUID, num uint32) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO storage_items (character_id, storage_type, slot_no, uid, num) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (character_id, storage_type, slot_no) DO UPDATE SET uid = excluded.uid, num = excluded.num`,
		int64(characterID), int64(storageType), int64(slotNo), string(uid), int64(num),
	)
	if err != nil {
		return fmt.Errorf("replacing %s slot %d of character %d: %w", storageType, slotNo, characterID, err)
	}
	return nil
}

// DeleteStorageItem empties one storage slot.
func (s *Store) DeleteStorageItem(ctx context.Context, characterID uint32, storageType model.StorageType, slotNo uint16) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM storage_items WHERE character_id = ? AND storage_type = ? AND slot_no = ?`,
		int64(characterID), int64(storageType), int64(slotNo),
	)
	if err != nil {
		return fmt.Errorf("deleting %s slot %d of character %d: %w", storageType, slotNo, characterID, err)
	}
	return nil
}
