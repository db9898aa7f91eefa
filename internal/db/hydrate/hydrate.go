// Package hydrate assembles a *model.Character from persisted rows.
// Both the PostgreSQL and the SQLite stores read rows and hand them here,
// so the in-memory shape does not depend on the backend.
package hydrate

import (
	"fmt"
	"sort"

	"github.com/udisondev/ddongo/internal/model"
)

// CharacterRow — строка characters.
type CharacterRow struct {
	CharacterID uint32
	CommonID    uint32
	Name        string
	Job         model.JobID
}

// PawnRow — строка pawns. SlotNo orders pawns (1-based).
type PawnRow struct {
	PawnID   uint32
	CommonID uint32
	Name     string
	Job      model.JobID
	SlotNo   uint8
}

// ItemRow — строка items.
type ItemRow struct {
	UID       model.ItemUID
	ItemID    uint32
	Color     uint8
	PlusValue uint8
}

// StorageItemRow — строка storage_items.
type StorageItemRow struct {
	StorageType model.StorageType
	SlotNo      uint16
	UID         model.ItemUID
	Num         uint32
}

// EquipItemRow — строка equip_items.
type EquipItemRow struct {
	CommonID  uint32
	Job       model.JobID
	EquipType model.EquipType
	Slot      uint8
	UID       model.ItemUID
}

// JobItemRow — строка equip_job_items.
type JobItemRow struct {
	CommonID uint32
	Job      model.JobID
	Slot     uint8
	UID      model.ItemUID
}

// Rows is everything persisted about one character and its pawns.
type Rows struct {
	Character    CharacterRow
	Pawns        []PawnRow
	Items        []ItemRow
	StorageItems []StorageItemRow
	EquipItems   []EquipItemRow
	JobItems     []JobItemRow
}

// Build creates the character, its pawns, storages and templates.
// Every referenced UID must be present in Items; the same *model.Item is
// shared between a storage slot and the templates referencing it.
func (r Rows) Build() (*model.Character, error) {
	items := make(map[model.ItemUID]*model.Item, len(r.Items))
	for _, row := range r.Items {
		item, err := model.NewItem(row.UID, row.ItemID)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", row.UID, err)
		}
		items[row.UID] = item.WithAppearance(row.Color, row.PlusValue)
	}
	lookup := func(uid model.ItemUID) (*model.Item, error) {
		item, ok := items[uid]
		if !ok {
			return nil, fmt.Errorf("item %q referenced but not loaded", uid)
		}
		return item, nil
	}

	c, err := model.NewCharacter(r.Character.CharacterID, r.Character.CommonID, r.Character.Name,
		r.Character.Job, model.NewDefaultStorages())
	if err != nil {
		return nil, err
	}

	pawns := append([]PawnRow(nil), r.Pawns...)
	sort.Slice(pawns, func(i, j int) bool { return pawns[i].SlotNo < pawns[j].SlotNo })

	templates := map[uint32]*model.EquipmentTemplate{c.CommonID(): c.EquipmentTemplate()}
	for _, p := range pawns {
		pawn, err := c.AddPawn(p.PawnID, p.CommonID, p.Name, p.Job)
		if err != nil {
			return nil, fmt.Errorf("pawn %d: %w", p.PawnID, err)
		}
		templates[pawn.CommonID()] = pawn.EquipmentTemplate()
	}

	for _, row := range r.StorageItems {
		item, err := lookup(row.UID)
		if err != nil {
			return nil, err
		}
		s := c.Storages().Get(row.StorageType)
		if s == nil {
			return nil, fmt.Errorf("character %d has no %s", c.CharacterID(), row.StorageType)
		}
		if err := s.SetSlot(row.SlotNo, item, row.Num); err != nil {
			return nil, fmt.Errorf("%s slot %d: %w", row.StorageType, row.SlotNo, err)
		}
	}

	for _, row := range r.EquipItems {
		t, ok := templates[row.CommonID]
		if !ok {
			return nil, fmt.Errorf("equip item for unknown common id %d", row.CommonID)
		}
		item, err := lookup(row.UID)
		if err != nil {
			return nil, err
		}
		if err := t.SetEquipItem(item, row.Job, row.EquipType, row.Slot); err != nil {
			return nil, fmt.Errorf("equip item %s: %w", row.UID, err)
		}
	}

	for _, row := range r.JobItems {
		t, ok := templates[row.CommonID]
		if !ok {
			return nil, fmt.Errorf("job item for unknown common id %d", row.CommonID)
		}
		item, err := lookup(row.UID)
		if err != nil {
			return nil, err
		}
		if err := t.SetJobItem(item, row.Job, row.Slot); err != nil {
			return nil, fmt.Errorf("job item %s: %w", row.UID, err)
		}
	}

	return c, nil
}
