package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/ddongo/internal/game/storage"
	"github.com/udisondev/ddongo/internal/model"
)

// StorageItemRepository хранит содержимое слотов storage.
type StorageItemRepository struct {
	db *pgxpool.Pool
}

var _ storage.ItemStore = (*StorageItemRepository)(nil)

// NewStorageItemRepository создаёт новый StorageItemRepository.
func NewStorageItemRepository(db *pgxpool.Pool) *StorageItemRepository {
	return &StorageItemRepository{db: db}
}

// ReplaceStorageItem upserts one storage slot.
func (r *StorageItemRepository) ReplaceStorageItem(ctx context.Context, characterID uint32, storageType model.StorageType, slotNo uint16, uid model.ItemUID, num uint32) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO storage_items (character_id, storage_type, slot_no, uid, num)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (character_id, storage_type, slot_no) DO UPDATE
		 SET uid = EXCLUDED.uid, num = EXCLUDED.num`,
		int64(characterID), int16(storageType), int32(slotNo), string(uid), int64(num),
	)
	if err != nil {
		return fmt.Errorf("replacing %s slot %d of character %d: %w", storageType, slotNo, characterID, err)
	}
	return nil
}

// DeleteStorageItem empties one storage slot.
func (r *StorageItemRepository) DeleteStorageItem(ctx context.Context, characterID uint32, storageType model.StorageType, slotNo uint16) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM storage_items WHERE character_id = $1 AND storage_type = $2 AND slot_no = $3`,
		int64(characterID), int16(storageType), int32(slotNo),
	)
	if err != nil {
		return fmt.Errorf("deleting %s slot %d of character %d: %w", storageType, slotNo, characterID, err)
	}
	return nil
}
