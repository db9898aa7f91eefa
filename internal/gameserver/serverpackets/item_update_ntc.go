package serverpackets

import (
	"github.com/udisondev/ddongo/internal/gameserver/packet"
	"github.com/udisondev/ddongo/internal/model"
)

// OpcodeItemUpdateCharacterNtc is the opcode for ItemUpdateCharacterNtc (S2C 0x10).
const OpcodeItemUpdateCharacterNtc = 0x10

// ItemNoticeType tells the client why its storages changed.
type ItemNoticeType uint16

const (
	ItemNoticeDefault         ItemNoticeType = 0
	ItemNoticeChangeEquip     ItemNoticeType = 1
	ItemNoticeChangePawnEquip ItemNoticeType = 2
)

// ItemUpdateCharacterNtc (S2C 0x10) sends slot deltas accumulated by one
// storage operation. Must reach the client before the request's Res packet.
type ItemUpdateCharacterNtc struct {
	UpdateType ItemNoticeType
	Deltas     []model.ItemDelta
}

// Write serializes ItemUpdateCharacterNtc.
//
//	opcode (byte) = 0x10
//	updateType (short)
//	count (short)
//	for each delta:
//	  storageType (byte)
//	  slotNo (short)
//	  uid (string) — пришедший предмет, либо ушедший при num=0
//	  itemID (int32)
//	  num (int32) — количество после операции
//	  change (int32) — +num пришло, -num ушло
func (p *ItemUpdateCharacterNtc) Write() ([]byte, error) {
	w := packet.NewWriter(5 + len(p.Deltas)*(equipItemSize+4))
	_ = w.WriteByte(OpcodeItemUpdateCharacterNtc)
	w.WriteShort(int16(p.UpdateType))
	w.WriteShort(int16(len(p.Deltas)))
	for _, d := range p.Deltas {
		_ = w.WriteByte(byte(d.StorageType))
		w.WriteShort(int16(d.SlotNo))
		w.WriteString(string(d.UID))
		w.WriteInt(int32(d.ItemID))
		w.WriteInt(int32(d.Num))
		w.WriteInt(d.Change)
	}
	return w.Bytes(), nil
}
