package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/ddongo/internal/db/hydrate"
	"github.com/udisondev/ddongo/internal/model"
)

// CreateCharacter inserts a character row.
func (s *Store) CreateCharacter(ctx context.Context, row hydrate.CharacterRow) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO characters (character_id, common_id, name, job) VALUES (?, ?, ?, ?)`,
		int64(row.CharacterID), int64(row.CommonID), row.Name, int64(row.Job),
	)
	if err != nil {
		return fmt.Errorf("creating character %d: %w", row.CharacterID, err)
	}
	return nil
}

// CreatePawn inserts a pawn owned by characterID.
func (s *Store) CreatePawn(ctx context.Context, characterID uint32, row hydrate.PawnRow) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO pawns (pawn_id, character_id, common_id, name, job, slot_no) VALUES (?, ?, ?, ?, ?, ?)`,
		int64(row.PawnID), int64(characterID), int64(row.CommonID), row.Name, int64(row.Job), int64(row.SlotNo),
	)
	if err != nil {
		return fmt.Errorf("creating pawn %d of character %d: %w", row.PawnID, characterID, err)
	}
	return nil
}

// CreateItem inserts an item owned by characterID.
func (s *Store) CreateItem(ctx context.Context, characterID uint32, row hydrate.ItemRow) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO items (uid, character_id, item_id, color, plus_value) VALUES (?, ?, ?, ?, ?)`,
		string(row.UID), int64(characterID), int64(row.ItemID), int64(row.Color), int64(row.PlusValue),
	)
	if err != nil {
		return fmt.Errorf("creating item %s: %w", row.UID, err)
	}
	return nil
}

// LoadCharacter загружает персонажа со всеми pawn, storages и templates.
// Returns model.ErrCharacterNotFound (wrapped) if no such character.
func (s *Store) LoadCharacter(ctx context.Context, characterID uint32) (*model.Character, error) {
	var (
		rows          hydrate.Rows
		commonID, job int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT common_id, name, job FROM characters WHERE character_id = ?`, int64(characterID),
	).Scan(&commonID, &rows.Character.Name, &job)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("character %d: %w", characterID, model.ErrCharacterNotFound)
		}
		return nil, fmt.Errorf("querying character %d: %w", characterID, err)
	}
	rows.Character.CharacterID = characterID
	rows.Character.CommonID = uint32(commonID)
	rows.Character.Job = model.JobID(job)

	err = s.query(ctx, func(r *sql.Rows) error {
		var p hydrate.PawnRow
		var pawnID, pawnCommonID, pawnJob, slotNo int64
		if err := r.Scan(&pawnID, &pawnCommonID, &p.Name, &pawnJob, &slotNo); err != nil {
			return err
		}
		p.PawnID, p.CommonID, p.Job, p.SlotNo = uint32(pawnID), uint32(pawnCommonID), model.JobID(pawnJob), uint8(slotNo)
		rows.Pawns = append(rows.Pawns, p)
		return nil
	}, `SELECT pawn_id, common_id, name, job, slot_no FROM pawns WHERE character_id = ? ORDER BY slot_no`, int64(characterID))
	if err != nil {
		return nil, fmt.Errorf("loading pawns of character %d: %w", characterID, err)
	}

	err = s.query(ctx, func(r *sql.Rows) error {
		var uid string
		var itemID, color, plus int64
		if err := r.Scan(&uid, &itemID, &color, &plus); err != nil {
			return err
		}
		rows.Items = append(rows.Items, hydrate.ItemRow{
			UID: model.ItemUID(uid), ItemID: uint32(itemID), Color: uint8(color), PlusValue: uint8(plus),
		})
		return nil
	}, `SELECT uid, item_id, color, plus_value FROM items WHERE character_id = ?`, int64(characterID))
	if err != nil {
		return nil, fmt.Errorf("loading items of character %d: %w", characterID, err)
	}

	err = s.query(ctx, func(r *sql.Rows) error {
		var uid string
		var storageType, slotNo, num int64
		if err := r.Scan(&storageType, &slotNo, &uid, &num); err != nil {
			return err
		}
		rows.StorageItems = append(rows.StorageItems, hydrate.StorageItemRow{
			StorageType: model.StorageType(storageType), SlotNo: uint16(slotNo), UID: model.ItemUID(uid), Num: uint32(num),
		})
		return nil
	}, `SELECT storage_type, slot_no, uid, num FROM storage_items WHERE character_id = ?`, int64(characterID))
	if err != nil {
		return nil, fmt.Errorf("loading storage items of character %d: %w", characterID, err)
	}

	commonIDs := []any{commonID}
	for _, p := range rows.Pawns {
		commonIDs = append(commonIDs, int64(p.CommonID))
	}
	in := "(" + strings.TrimSuffix(strings.Repeat("?,", len(commonIDs)), ",") + ")"

	err = s.query(ctx, func(r *sql.Rows) error {
		var uid string
		var cid, cjob, equipType, slot int64
		if err := r.Scan(&cid, &cjob, &equipType, &slot, &uid); err != nil {
			return err
		}
		rows.EquipItems = append(rows.EquipItems, hydrate.EquipItemRow{
			CommonID: uint32(cid), Job: model.JobID(cjob), EquipType: model.EquipType(equipType), Slot: uint8(slot), UID: model.ItemUID(uid),
		})
		return nil
	}, `SELECT common_id, job, equip_type, equip_slot, uid FROM equip_items WHERE common_id IN `+in, commonIDs...)
	if err != nil {
		return nil, fmt.Errorf("loading equip items of character %d: %w", characterID, err)
	}

	err = s.query(ctx, func(r *sql.Rows) error {
		var uid string
		var cid, cjob, slot int64
		if err := r.Scan(&cid, &cjob, &slot, &uid); err != nil {
			return err
		}
		rows.JobItems = append(rows.JobItems, hydrate.JobItemRow{
			CommonID: uint32(cid), Job: model.JobID(cjob), Slot: uint8(slot), UID: model.ItemUID(uid),
		})
		return nil
	}, `SELECT common_id, job, equip_slot, uid FROM equip_job_items WHERE common_id IN `+in, commonIDs...)
	if err != nil {
		return nil, fmt.Errorf("loading job items of character %d: %w", characterID, err)
	}

	c, err := rows.Build()
	if err != nil {
		return nil, fmt.Errorf("assembling character %d: %w", characterID, err)
	}
	return c, nil
}

// query runs a SELECT and calls scan for every row.
func (s *Store) query(ctx context.Context, scan func(*sql.Rows) error, query string, args ...any) error {
	r, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer r.Close()
	for r.Next() {
		if err := scan(r); err != nil {
			return err
		}
	}
	return r.Err()
}
