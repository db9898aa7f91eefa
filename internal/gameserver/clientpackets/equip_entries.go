package clientpackets

import (
	"fmt"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/packet"
	"github.com/udisondev/ddongo/internal/model"
)

// MaxEquipEntries ограничивает batch: больше записей, чем слотов в окне
// одной entity, клиент прислать не может.
const MaxEquipEntries = model.EquipWindowSize

// MaxJobItemEntries ограничивает job-item batch.
const MaxJobItemEntries = 16

// readUID reads a UTF-16LE item UID. Пустая строка — unequip.
func readUID(r *packet.Reader) (equip.OptionalUID, error) {
	s, err := r.ReadString()
	if err != nil {
		return equip.OptionalUID{}, err
	}
	if s == "" {
		return equip.NoUID(), nil
	}
	return equip.SomeUID(model.ItemUID(s)), nil
}

func readCount(r *packet.Reader, limit int) (int, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return 0, fmt.Errorf("reading count: %w", err)
	}
	if int(n) > limit {
		return 0, fmt.Errorf("entry count %d exceeds %d", n, limit)
	}
	return int(n), nil
}

// readEquipChanges reads count (short) followed by entries:
//   - uid (string) — пусто для unequip
//   - equipType (byte) — 1=performance, 2=visual
//   - equipSlot (byte) — 1..15
func readEquipChanges(r *packet.Reader) ([]equip.EquipChange, error) {
	n, err := readCount(r, MaxEquipEntries)
	if err != nil {
		return nil, err
	}

	changes := make([]equip.EquipChange, 0, n)
	for i := range n {
		uid, err := readUID(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: reading uid: %w", i, err)
		}
		typ, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("entry %d: reading equipType: %w", i, err)
		}
		equipType := model.EquipType(typ)
		if !equipType.Valid() {
			return nil, fmt.Errorf("entry %d: unknown equipType %d", i, typ)
		}
		slot, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("entry %d: reading equipSlot: %w", i, err)
		}
		changes = append(changes, equip.EquipChange{Item: uid, EquipType: equipType, CategorySlot: slot})
	}
	return changes, nil
}

// readJobItemChanges reads count (short) followed by entries:
//   - uid (string) — пусто для снятия
//   - equipSlot (byte)
func readJobItemChanges(r *packet.Reader) ([]equip.JobItemChange, error) {
	n, err := readCount(r, MaxJobItemEntries)
	if err != nil {
		return nil, err
	}

	changes := make([]equip.JobItemChange, 0, n)
	for i := range n {
		uid, err := readUID(r)
		if err != nil {
			return nil, fmt.Errorf("entry %d: reading uid: %w", i, err)
		}
		slot, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("entry %d: reading equipSlot: %w", i, err)
		}
		changes = append(changes, equip.JobItemChange{Slot: slot, Item: uid})
	}
	return changes, nil
}
