package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/model"
)

// EquipRepository хранит equip и job-item записи (ключ — common_id + job).
type EquipRepository struct {
	db *pgxpool.Pool
}

var _ equip.Persistence = (*EquipRepository)(nil)

// NewEquipRepository создаёт новый EquipRepository.
func NewEquipRepository(db *pgxpool.Pool) *EquipRepository {
	return &EquipRepository{db: db}
}

// DeleteEquipItem removes the record of one equip slot. Missing rows are fine.
func (r *EquipRepository) DeleteEquipItem(ctx context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM equip_items
		 WHERE common_id = $1 AND job = $2 AND equip_type = $3 AND equip_slot = $4`,
		int64(commonID), int16(job), int16(equipType), int16(slot),
	)
	if err != nil {
		return fmt.Errorf("deleting equip item %d/%s/%s/%d: %w", commonID, job, equipType, slot, err)
	}
	return nil
}

// ReplaceEquipItem upserts the record of one equip slot.
func (r *EquipRepository) ReplaceEquipItem(ctx context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8, uid model.ItemUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO equip_items (common_id, job, equip_type, equip_slot, uid)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (common_id, job, equip_type, equip_slot) DO UPDATE SET uid = EXCLUDED.uid`,
		int64(commonID), int16(job), int16(equipType), int16(slot), string(uid),
	)
	if err != nil {
		return fmt.Errorf("replacing equip item %d/%s/%s/%d: %w", commonID, job, equipType, slot, err)
	}
	return nil
}

// DeleteEquipJobItem removes the record of one job-item slot.
func (r *EquipRepository) DeleteEquipJobItem(ctx context.Context, commonID uint32, job model.JobID, slot uint8) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM equip_job_items WHERE common_id = $1 AND job = $2 AND equip_slot = $3`,
		int64(commonID), int16(job), int16(slot),
	)
	if err != nil {
		return fmt.Errorf("deleting job item %d/%s/%d: %w", commonID, job, slot, err)
	}
	return nil
}

// ReplaceEquipJobItem upserts the record of one job-item slot.
func (r *EquipRepository) ReplaceEquipJobItem(ctx context.Context, commonID uint32, job model.JobID, slot uint8, uid model.ItemUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO equip_job_items (common_id, job, equip_slot, uid)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (common_id, job, equip_slot) DO UPDATE SET uid = EXCLUDED.uid`,
		int64(commonID), int16(job), int16(slot), string(uid),
	)
	if err != nil {
		return fmt.Errorf("replacing job item %d/%s/%d: %w", commonID, job, slot, err)
	}
	return nil
}

// SelectItemByUID loads one item. Returns equip.ErrNotFound (wrapped) if absent.
func (r *EquipRepository) SelectItemByUID(ctx context.Context, uid model.ItemUID) (*model.Item, error) {
	var (
		itemID      int64
		color, plus int16
	)
	err := r.db.QueryRow(ctx,
		`SELECT item_id, color, plus_value FROM items WHERE uid = $1`, string(uid),
	).Scan(&itemID, &color, &plus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
