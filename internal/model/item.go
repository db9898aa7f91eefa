package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemUID — глобально уникальный идентификатор экземпляра предмета.
// Один UID живёт ровно в одном месте: слот storage или equip slot.
type ItemUID string

// NewItemUID generates a fresh UID for a newly created item.
// Client UIDs are 8 characters; the first uuid block is used.
func NewItemUID() ItemUID {
	return ItemUID(uuid.NewString()[:8])
}

// Item — конкретный экземпляр предмета.
// Immutable после создания: местоположение и количество хранит Storage.
type Item struct {
	uid    ItemUID
	itemID uint32 // Template ID (item catalog)
	color  uint8
	plus   uint8
}

// NewItem создаёт предмет с валидацией.
func NewItem(uid ItemUID, itemID uint32) (*Item, error) {
	if uid == "" {
		return nil, fmt.Errorf("item uid cannot be empty")
	}
	if itemID == 0 {
		return nil, fmt.Errorf("item id cannot be zero")
	}
	return &Item{uid: uid, itemID: itemID}, nil
}

// MustNewItem is NewItem for fixtures and seed data. Panics on invalid input.
func MustNewItem(uid ItemUID, itemID uint32) *Item {
	item, err := NewItem(uid, itemID)
	if err != nil {
		panic(err)
	}
	return item
}

// UID возвращает уникальный идентификатор.
func (i *Item) UID() ItemUID {
	return i.uid
}

// ItemID возвращает template ID.
func (i *Item) ItemID() uint32 {
	return i.itemID
}

// Color returns the dye color index (0 = undyed).
func (i *Item) Color() uint8 {
	return i.color
}

// PlusValue returns the refinement bonus.
func (i *Item) PlusValue() uint8 {
	return i.plus
}

// WithAppearance returns a copy of the item with color and plus value set.
// Used by loaders; items stay immutable once placed in storage.
func (i *Item) WithAppearance(color, plus uint8) *Item {
	cp := *i
	cp.color = color
	cp.plus = plus
	return &cp
}

// String implements fmt.Stringer.
func (i *Item) String() string {
	return fmt.Sprintf("%s <%d>", i.uid, i.itemID)
}

// ItemDelta describes the final state of one storage slot touched by a move.
// Change is +num when an item arrived in the slot, -num when it left and
// the slot is now empty (Num == 0, UID and ItemID name the departed item).
type ItemDelta struct {
	StorageType StorageType
	SlotNo      uint16
	UID         ItemUID
	ItemID      uint32
	Num         uint32 // количество в слоте после операции
	Change      int32
}
