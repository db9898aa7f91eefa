package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/ddongo/internal/db/hydrate"
	"github.com/udisondev/ddongo/internal/model"
)

// CharacterRepository управляет персонажами, их pawn и предметами в БД.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository создаёт новый CharacterRepository.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// CreateCharacter inserts a character row.
func (r *CharacterRepository) CreateCharacter(ctx context.Context, row hydrate.CharacterRow) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO characters (character_id, common_id, name, job) VALUES ($1, $2, $3, $4)`,
		int64(row.CharacterID), int64(row.CommonID), row.Name, int16(row.Job),
	)
	if err != nil {
		return fmt.Errorf("creating character %d: %w", row.CharacterID, err)
	}
	return nil
}

// CreatePawn inserts a pawn owned by characterID.
func (r *CharacterRepository) CreatePawn(ctx context.Context, characterID uint32, row hydrate.PawnRow) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pawns (pawn_id, character_id, common_id, name, job, slot_no)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		int64(row.PawnID), int64(characterID), int64(row.CommonID), row.Name, int16(row.Job), int16(row.SlotNo),
	)
	if err != nil {
		return fmt.Errorf("creating pawn %d of character %d: %w", row.PawnID, characterID, err)
	}
	return nil
}

// CreateItem inserts an item owned by characterID.
func (r *CharacterRepository) CreateItem(ctx context.Context, characterID uint32, row hydrate.ItemRow) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO items (uid, character_id, item_id, color, plus_value) VALUES ($1, $2, $3, $4, $5)`,
		string(row.UID), int64(characterID), int64(row.ItemID), int16(row.Color), int16(row.PlusValue),
	)
	if err != nil {
		return fmt.Errorf("creating item %s: %w", row.UID, err)
	}
	return nil
}

// LoadCharacter загружает персонажа со всеми pawn, storages и templates.
// Returns model.ErrCharacterNotFound (wrapped) if no such character.
func (r *CharacterRepository) LoadCharacter(ctx context.Context, characterID uint32) (*model.Character, error) {
	var rows hydrate.Rows

	var (
		id, commonID int64
		job          int16
	)
	err := r.db.QueryRow(ctx,
		`SELECT character_id, common_id, name, job FROM characters WHERE character_id = $1`,
		int64(characterID),
	).Scan(&id, &commonID, &rows.Character.Name, &job)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("character %d: %w", characterID, model.ErrCharacterNotFound)
		}
		return nil, fmt.Errorf("querying character %d: %w", characterID, err)
	}
	rows.Character.CharacterID = uint32(id)
	rows.Character.CommonID = uint32(commonID)
	rows.Character.Job = model.JobID(job)

	if rows.Pawns, err = r.loadPawns(ctx, characterID); err != nil {
		return nil, err
	}
	if rows.Items, err = r.loadItems(ctx, characterID); err != nil {
		return nil, err
	}
	if rows.StorageItems, err = r.loadStorageItems(ctx, characterID); err != nil {
		return nil, err
	}

	commonIDs := []int64{commonID}
	for _, p := range rows.Pawns {
		commonIDs = append(commonIDs, int64(p.CommonID))
	}
	if rows.EquipItems, err = r.loadEquipItems(ctx, commonIDs); err != nil {
		return nil, err
	}
	if rows.JobItems, err = r.loadJobItems(ctx, commonIDs); err != nil {
		return nil, err
	}

	c, err := rows.Build()
	if err != nil {
		return nil, fmt.Errorf("assembling character %d: %w", characterID, err)
	}
	return c, nil
}

func (r *CharacterRepository) loadPawns(ctx context.Context, characterID uint32) ([]hydrate.PawnRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pawn_id, common_id, name, job, slot_no FROM pawns
		 WHERE character_id = $1 ORDER BY slot_no`,
		int64(characterID),
	)
	if err != nil {
		return nil, fmt.Errorf("querying pawns of character %d: %w", characterID, err)
	}
	defer rows.Close()

	var pawns []hydrate.PawnRow
	for rows.Next() {
		var (
			pawnID, commonID int64
			name             string
			job, slotNo      int16
		)
		if err := rows.Scan(&pawnID, &commonID, &name, &job, &slotNo); err != nil {
			return nil, fmt.Errorf("scanning pawn row: %w", err)
		}
		pawns = append(pawns, hydrate.PawnRow{
			PawnID:   uint32(pawnID),
			CommonID: uint32(commonID),
			Name:     name,
			Job:      model.JobID(job),
			SlotNo:   uint8(slotNo),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pawn rows: %w", err)
	}
	return pawns, nil
}

func (r *CharacterRepository) loadItems(ctx context.Context, characterID uint32) ([]hydrate.ItemRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT uid, item_id, color, plus_value FROM items WHERE character_id = $1`,
		int64(characterID),
	)
	if err != nil {
		return nil, fmt.Errorf("querying items of character %d: %w", characterID, err)
	}
	defer rows.Close()

	// Pre-allocate: bags + box обычно заполнены частично.
	items := make([]hydrate.ItemRow, 0, 64)
	for rows.Next() {
		var (
			uid         string
			itemID      int64
			color, plus int16
		)
		if err := rows.Scan(&uid, &itemID, &color, &plus); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, hydrate.ItemRow{
			UID:       model.ItemUID(uid),
			ItemID:    uint32(itemID),
			Color:     uint8(color),
			PlusValue: uint8(plus),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return items, nil
}

func (r *CharacterRepository) loadStorageItems(ctx context.Context, characterID uint32) ([]hydrate.StorageItemRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT storage_type, slot_no, uid, num FROM storage_items WHERE character_id = $1`,
		int64(characterID),
	)
	if err != nil {
		return nil, fmt.Errorf("querying storage items of character %d: %w", characterID, err)
	}
	defer rows.Close()

	var out []hydrate.StorageItemRow
	for rows.Next() {
		var (
			storageType int16
			slotNo      int32
			uid         string
			num         int64
		)
		if err := rows.Scan(&storageType, &slotNo, &uid, &num); err != nil {
			return nil, fmt.Errorf("scanning storage item row: %w", err)
		}
		out = append(out, hydrate.StorageItemRow{
			StorageType: model.StorageType(storageType),
			SlotNo:      uint16(slotNo),
			UID:         model.ItemUID(uid),
			Num:         uint32(num),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating storage item rows: %w", err)
	}
	return out, nil
}

func (r *CharacterRepository) loadEquipItems(ctx context.Context, commonIDs []int64) ([]hydrate.EquipItemRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT common_id, job, equip_type, equip_slot, uid FROM equip_items WHERE common_id = ANY($1)`,
		commonIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("querying equip items: %w", err)
	}
	defer rows.Close()

	var out []hydrate.EquipItemRow
	for rows.Next() {
		var (
			commonID             int64
			job, equipType, slot int16
			uid                  string
		)
		if err := rows.Scan(&commonID, &job, &equipType, &slot, &uid); err != nil {
			return nil, fmt.Errorf("scanning equip item row: %w", err)
		}
		out = append(out, hydrate.EquipItemRow{
			CommonID:  uint32(commonID),
			Job:       model.JobID(job),
			EquipType: model.EquipType(equipType),
			Slot:      uint8(slot),
			UID:       model.ItemUID(uid),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating equip item rows: %w", err)
	}
	return out, nil
}

func (r *CharacterRepository) loadJobItems(ctx context.Context, commonIDs []int64) ([]hydrate.JobItemRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT common_id, job, equip_slot, uid FROM equip_job_items WHERE common_id = ANY($1)`,
		commonIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("querying job items: %w", err)
	}
	defer rows.Close()

	var out []hydrate.JobItemRow
	for rows.Next() {
		var (
			commonID  int64
			job, slot int16
			uid       string
		)
		if err := rows.Scan(&commonID, &job, &slot, &uid); err != nil {
			return nil, fmt.Errorf("scanning job item row: %w", err)
		}
		out = append(out, hydrate.JobItemRow{
			CommonID: uint32(commonID),
			Job:      model.JobID(job),
			Slot:     uint8(slot),
			UID:      model.ItemUID(uid),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job item rows: %w", err)
	}
	return out, nil
}
