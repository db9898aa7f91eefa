package serverpackets

import (
	"github.com/udisondev/ddongo/internal/gameserver/packet"
	"github.com/udisondev/ddongo/internal/model"
)

const (
	// OpcodeChangeCharacterEquipRes acknowledges a character equip batch.
	OpcodeChangeCharacterEquipRes = 0x20
	// OpcodeChangeCharacterEquipNtc broadcasts a character's equipment.
	OpcodeChangeCharacterEquipNtc = 0x21
	// OpcodeChangePawnEquipRes acknowledges a pawn equip batch.
	OpcodeChangePawnEquipRes = 0x22
	// OpcodeChangePawnEquipNtc broadcasts a pawn's equipment.
	OpcodeChangePawnEquipNtc = 0x23
)

// ChangeCharacterEquipRes (S2C 0x20) — ответ на ChangeCharacterEquip.
// Отправляется после ItemUpdateCharacterNtc.
type ChangeCharacterEquipRes struct{}

// Write serializes ChangeCharacterEquipRes.
//
//	opcode (byte) = 0x20
//	result (int32) — 0
func (p *ChangeCharacterEquipRes) Write() ([]byte, error) {
	w := packet.NewWriter(5)
	_ = w.WriteByte(OpcodeChangeCharacterEquipRes)
	w.WriteInt(0)
	return w.Bytes(), nil
}

// ChangePawnEquipRes (S2C 0x22) — ответ на ChangePawnEquip.
type ChangePawnEquipRes struct {
	PawnID uint32
}

// Write serializes ChangePawnEquipRes.
//
//	opcode (byte) = 0x22
//	result (int32) — 0
//	pawnID (int32)
func (p *ChangePawnEquipRes) Write() ([]byte, error) {
	w := packet.NewWriter(9)
	_ = w.WriteByte(OpcodeChangePawnEquipRes)
	w.WriteInt(0)
	w.WriteInt(int32(p.PawnID))
	return w.Bytes(), nil
}

// ChangeCharacterEquipNtc (S2C 0x21) — полная экипировка персонажа,
// рассылается всем подключённым клиентам.
type ChangeCharacterEquipNtc struct {
	CharacterID uint32
	Performance []model.EquippedItem
	Visual      []model.EquippedItem
}

// Write serializes ChangeCharacterEquipNtc.
//
//	opcode (byte) = 0x21
//	characterID (int32)
//	performanceCount (short), performance items
//	visualCount (short), visual items
func (p *ChangeCharacterEquipNtc) Write() ([]byte, error) {
	w := packet.NewWriter(9 + (len(p.Performance)+len(p.Visual))*equipItemSize)
	_ = w.WriteByte(OpcodeChangeCharacterEquipNtc)
	w.WriteInt(int32(p.CharacterID))
	writeEquipList(w, p.Performance)
	writeEquipList(w, p.Visual)
	return w.Bytes(), nil
}

// ChangePawnEquipNtc (S2C 0x23) — полная экипировка pawn.
type ChangePawnEquipNtc struct {
	CharacterID uint32
	PawnID      uint32
	Performance []model.EquippedItem
	Visual      []model.EquippedItem
}

// Write serializes ChangePawnEquipNtc.
//
//	opcode (byte) = 0x23
//	characterID (int32) — владелец
//	pawnID (int32)
//	performanceCount (short), performance items
//	visualCount (short), visual items
func (p *ChangePawnEquipNtc) Write() ([]byte, error) {
	w := packet.NewWriter(13 + (len(p.Performance)+len(p.Visual))*equipItemSize)
	_ = w.WriteByte(OpcodeChangePawnEquipNtc)
	w.WriteInt(int32(p.CharacterID))
	w.WriteInt(int32(p.PawnID))
	writeEquipList(w, p.Performance)
	writeEquipList(w, p.Visual)
	return w.Bytes(), nil
}

// NewEquipNtc builds the broadcast message matching the snapshot's entity kind.
func NewEquipNtc(s model.EquipSnapshot) Packet {
	if s.Kind == model.EntityKindPawn {
		return &ChangePawnEquipNtc{
			CharacterID: s.CharacterID,
			PawnID:      s.PawnID,
			Performance: s.Performance,
			Visual:      s.Visual,
		}
	}
	return &ChangeCharacterEquipNtc{
		CharacterID: s.CharacterID,
		Performance: s.Performance,
		Visual:      s.Visual,
	}
}
