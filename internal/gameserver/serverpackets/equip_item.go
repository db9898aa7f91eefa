package serverpackets

import (
	"github.com/udisondev/ddongo/internal/gameserver/packet"
	"github.com/udisondev/ddongo/internal/model"
)

// writeEquipItem serializes one equipped item.
//
//	uid (string)
//	itemID (int32)
//	color (byte)
//	plusValue (byte)
//	equipType (byte) — 1=performance, 2=visual
//	equipSlot (byte) — 1..15
func writeEquipItem(w *packet.Writer, e model.EquippedItem) {
	w.WriteString(string(e.Item.UID()))
	w.WriteInt(int32(e.Item.ItemID()))
	_ = w.WriteByte(e.Item.Color())
	_ = w.WriteByte(e.Item.PlusValue())
	_ = w.WriteByte(byte(e.EquipType))
	_ = w.WriteByte(e.EquipSlot)
}

// writeEquipList writes count (short) followed by items.
func writeEquipList(w *packet.Writer, items []model.EquippedItem) {
	w.WriteShort(int16(len(items)))
	for _, e := range items {
		writeEquipItem(w, e)
	}
}

// writeJobItemList writes count (short) followed by (uid, itemID, slot) entries.
func writeJobItemList(w *packet.Writer, items []model.JobItemEntry) {
	w.WriteShort(int16(len(items)))
	for _, e := range items {
		w.WriteString(string(e.Item.UID()))
		w.WriteInt(int32(e.Item.ItemID()))
		_ = w.WriteByte(e.EquipSlot)
	}
}

// equipItemSize estimates one entry: 8-char uid + terminator + fixed part.
const equipItemSize = 18 + 8
