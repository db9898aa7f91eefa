package model

import "fmt"

// Equipment — окно шириной EquipWindowSize в equipment storage владельца.
// Слоты окна 1..15 — Performance, 16..30 — Visual.
// Персонаж использует CharacterEquipment с offset 0, pawn — PawnEquipment
// с offset pawnIndex*EquipWindowSize.
type Equipment struct {
	storage *Storage
	offset  uint16
}

// NewEquipment creates a window over storage starting after offset slots.
func NewEquipment(storage *Storage, offset uint16) (*Equipment, error) {
	if storage == nil {
		return nil, fmt.Errorf("equipment storage cannot be nil")
	}
	if int(offset)+EquipWindowSize > int(storage.Size()) {
		return nil, fmt.Errorf("equipment window %d..%d exceeds %s size %d",
			offset+1, int(offset)+EquipWindowSize, storage.Type(), storage.Size())
	}
	return &Equipment{storage: storage, offset: offset}, nil
}

// Storage returns the backing storage.
func (e *Equipment) Storage() *Storage {
	return e.storage
}

// StorageType returns the backing storage tag.
func (e *Equipment) StorageType() StorageType {
	return e.storage.Type()
}

// Offset returns the number of backing slots preceding the window.
func (e *Equipment) Offset() uint16 {
	return e.offset
}

// StorageSlot maps (equipType, categorySlot) to the absolute slot number in
// the backing storage.
func (e *Equipment) StorageSlot(equipType EquipType, categorySlot uint8) (uint16, error) {
	if err := validateEquipSlot(equipType, categorySlot); err != nil {
		return 0, err
	}
	slot := e.offset + uint16(categorySlot)
	if equipType == EquipTypeVisual {
		slot += TotalEquipSlots
	}
	return slot, nil
}

// WindowSlot returns the content of window-relative slot 1..EquipWindowSize.
func (e *Equipment) WindowSlot(local uint16) StorageSlot {
	if local < 1 || local > EquipWindowSize {
		return StorageSlot{}
	}
	return e.storage.Slot(e.offset + local)
}

// Items returns the equipped items of one category, read from storage.
func (e *Equipment) Items(equipType EquipType) []EquippedItem {
	var base uint16
	if equipType == EquipTypeVisual {
		base = TotalEquipSlots
	}
	items := make([]EquippedItem, 0, TotalEquipSlots)
	for i := uint16(1); i <= TotalEquipSlots; i++ {
		slot := e.storage.Slot(e.offset + base + i)
		if slot.Item != nil {
			items = append(items, EquippedItem{EquipType: equipType, EquipSlot: uint8(i), Item: slot.Item})
		}
	}
	return items
}
