package clientpackets

import (
	"fmt"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/packet"
)

const (
	// OpcodeChangeEquipBySlot is the opcode for ChangeEquipBySlot (C2S 0x28).
	OpcodeChangeEquipBySlot = 0x28
	// OpcodeUnequipByUID is the opcode for UnequipByUID (C2S 0x29).
	OpcodeUnequipByUID = 0x29
)

// ChangeEquipBySlot — одна запись по flat slot number: 1..30 персонаж,
// далее блоки по 30 на каждого pawn.
type ChangeEquipBySlot struct {
	Item       equip.OptionalUID
	FlatSlotNo uint16
}

// ParseChangeEquipBySlot parses ChangeEquipBySlot packet.
// Packet structure (body after opcode):
//   - uid (string) — пусто для unequip
//   - flatSlotNo (short)
func ParseChangeEquipBySlot(data []byte) (*ChangeEquipBySlot, error) {
	r := packet.NewReader(data)

	uid, err := readUID(r)
	if err != nil {
		return nil, fmt.Errorf("reading uid: %w", err)
	}
	slotNo, err := r.ReadUint16()
	if err != nil {
		return nil, fmt.Errorf("reading flatSlotNo: %w", err)
	}
	return &ChangeEquipBySlot{Item: uid, FlatSlotNo: slotNo}, nil
}

// UnequipByUID снимает предмет, найденный по UID в окне экипировки.
// PawnID 0 — персонаж.
type UnequipByUID struct {
	PawnID uint32
	UID    equip.OptionalUID
}

// ParseUnequipByUID parses UnequipByUID packet.
// Packet structure (body after opcode):
//   - pawnID (int32) — 0 для персонажа
//   - uid (string), не пустой
func ParseUnequipByUID(data []byte) (*UnequipByUID, error) {
	r := packet.NewReader(data)

	pawnID, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading pawnID: %w", err)
	}
	uid, err := readUID(r)
	if err != nil {
		return nil, fmt.Errorf("reading uid: %w", err)
	}
	if !uid.Valid {
		return nil, fmt.Errorf("uid is required")
	}
	return &UnequipByUID{PawnID: pawnID, UID: uid}, nil
}
