package serverpackets

import (
	"github.com/udisondev/ddongo/internal/gameserver/packet"
	"github.com/udisondev/ddongo/internal/model"
)

const (
	OpcodeChangeCharacterEquipJobItemRes = 0x24
	OpcodeChangeCharacterEquipJobItemNtc = 0x25
	OpcodeChangePawnEquipJobItemRes      = 0x26
	OpcodeChangePawnEquipJobItemNtc      = 0x27
)

// ChangeCharacterEquipJobItemRes (S2C 0x24) — текущий список job items
// персонажа после batch.
type ChangeCharacterEquipJobItemRes struct {
	JobItems []model.JobItemEntry
}

// Write serializes the response.
//
//	opcode (byte) = 0x24
//	count (short), entries: uid (string), itemID (int32), slot (byte)
func (p *ChangeCharacterEquipJobItemRes) Write() ([]byte, error) {
	w := packet.NewWriter(3 + len(p.JobItems)*equipItemSize)
	_ = w.WriteByte(OpcodeChangeCharacterEquipJobItemRes)
	writeJobItemList(w, p.JobItems)
	return w.Bytes(), nil
}

// ChangeCharacterEquipJobItemNtc (S2C 0x25) — рассылка по party.
type ChangeCharacterEquipJobItemNtc struct {
	CharacterID uint32
	JobItems    []model.JobItemEntry
}

// Write serializes the notice.
//
//	opcode (byte) = 0x25
//	characterID (int32)
//	count (short), entries
func (p *ChangeCharacterEquipJobItemNtc) Write() ([]byte, error) {
	w := packet.NewWriter(7 + len(p.JobItems)*equipItemSize)
	_ = w.WriteByte(OpcodeChangeCharacterEquipJobItemNtc)
	w.WriteInt(int32(p.CharacterID))
	writeJobItemList(w, p.JobItems)
	return w.Bytes(), nil
}

// ChangePawnEquipJobItemRes (S2C 0x26).
type ChangePawnEquipJobItemRes struct {
	PawnID   uint32
	JobItems []model.JobItemEntry
}

// Write serializes the response.
//
//	opcode (byte) = 0x26
//	pawnID (int32)
//	count (short), entries
func (p *ChangePawnEquipJobItemRes) Write() ([]byte, error) {
	w := packet.NewWriter(7 + len(p.JobItems)*equipItemSize)
	_ = w.WriteByte(OpcodeChangePawnEquipJobItemRes)
	w.WriteInt(int32(p.PawnID))
	writeJobItemList(w, p.JobItems)
	return w.Bytes(), nil
}

// ChangePawnEquipJobItemNtc (S2C 0x27). CharacterID — владелец pawn.
type ChangePawnEquipJobItemNtc struct {
	CharacterID uint32
	PawnID      uint32
	JobItems    []model.JobItemEntry
}

// Write serializes the notice.
//
//	opcode (byte) = 0x27
//	characterID (int32)
//	pawnID (int32)
//	count (short), entries
func (p *ChangePawnEquipJobItemNtc) Write() ([]byte, error) {
	w := packet.NewWriter(11 + len(p.JobItems)*equipItemSize)
	_ = w.WriteByte(OpcodeChangePawnEquipJobItemNtc)
	w.WriteInt(int32(p.CharacterID))
	w.WriteInt(int32(p.PawnID))
	writeJobItemList(w, p.JobItems)
	return w.Bytes(), nil
}
