package clientpackets

import (
	"fmt"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/packet"
)

const (
	// OpcodeChangeCharacterEquip is the opcode for ChangeCharacterEquip (C2S 0x20).
	OpcodeChangeCharacterEquip = 0x20
	// OpcodeChangePawnEquip is the opcode for ChangePawnEquip (C2S 0x22).
	OpcodeChangePawnEquip = 0x22
)

// ChangeCharacterEquip — batch смены экипировки персонажа.
type ChangeCharacterEquip struct {
	Changes []equip.EquipChange
}

// ParseChangeCharacterEquip parses ChangeCharacterEquip packet.
// Packet structure (body after opcode):
//   - count (short), entries (see readEquipChanges)
func ParseChangeCharacterEquip(data []byte) (*ChangeCharacterEquip, error) {
	changes, err := readEquipChanges(packet.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading equip changes: %w", err)
	}
	return &ChangeCharacterEquip{Changes: changes}, nil
}

// ChangePawnEquip — batch смены экипировки pawn.
type ChangePawnEquip struct {
	PawnID  uint32
	Changes []equip.EquipChange
}

// ParseChangePawnEquip parses ChangePawnEquip packet.
// Packet structure (body after opcode):
//   - pawnID (int32)
//   - count (short), entries
func ParseChangePawnEquip(data []byte) (*ChangePawnEquip, error) {
	r := packet.NewReader(data)

	pawnID, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading pawnID: %w", err)
	}
	changes, err := readEquipChanges(r)
	if err != nil {
		return nil, fmt.Errorf("reading equip changes: %w", err)
	}
	return &ChangePawnEquip{PawnID: pawnID, Changes: changes}, nil
}
