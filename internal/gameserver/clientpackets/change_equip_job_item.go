package clientpackets

import (
	"fmt"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/packet"
)

const (
	// OpcodeChangeCharacterEquipJobItem is the opcode for ChangeCharacterEquipJobItem (C2S 0x24).
	OpcodeChangeCharacterEquipJobItem = 0x24
	// OpcodeChangePawnEquipJobItem is the opcode for ChangePawnEquipJobItem (C2S 0x26).
	OpcodeChangePawnEquipJobItem = 0x26
)

// ChangeCharacterEquipJobItem — batch job items персонажа.
type ChangeCharacterEquipJobItem struct {
	Changes []equip.JobItemChange
}

// ParseChangeCharacterEquipJobItem parses ChangeCharacterEquipJobItem packet.
// Packet structure (body after opcode):
//   - count (short), entries: uid (string), equipSlot (byte)
func ParseChangeCharacterEquipJobItem(data []byte) (*ChangeCharacterEquipJobItem, error) {
	changes, err := readJobItemChanges(packet.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading job item changes: %w", err)
	}
	return &ChangeCharacterEquipJobItem{Changes: changes}, nil
}

// ChangePawnEquipJobItem — batch job items pawn.
type ChangePawnEquipJobItem struct {
	PawnID  uint32
	Changes []equip.JobItemChange
}

// ParseChangePawnEquipJobItem parses ChangePawnEquipJobItem packet.
// Packet structure (body after opcode):
//   - pawnID (int32)
//   - count (short), entries
func ParseChangePawnEquipJobItem(data []byte) (*ChangePawnEquipJobItem, error) {
	r := packet.NewReader(data)

	pawnID, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading pawnID: %w", err)
	}
	changes, err := readJobItemChanges(r)
	if err != nil {
		return nil, fmt.Errorf("reading job item changes: %w", err)
	}
	return &ChangePawnEquipJobItem{PawnID: pawnID, Changes: changes}, nil
}
