package model

import (
	"fmt"
	"sort"
	"sync"
)

// StorageSlot is the content of one storage slot. Empty slots have nil Item.
type StorageSlot struct {
	Item *Item
	Num  uint32
}

// Empty reports whether the slot holds nothing.
func (s StorageSlot) Empty() bool {
	return s.Item == nil
}

// Storage — упорядоченный контейнер слотов одного типа (bag, box, equipment).
// Слоты нумеруются с 1. Thread-safe.
type Storage struct {
	typ   StorageType
	slots []StorageSlot // index 0 == slot 1

	mu sync.RWMutex
}

// NewStorage создаёт пустой storage заданного размера.
func NewStorage(typ StorageType, size uint16) *Storage {
	return &Storage{
		typ:   typ,
		slots: make([]StorageSlot, size),
	}
}

// Type returns the storage tag.
func (s *Storage) Type() StorageType {
	return s.typ
}

// Size returns slot capacity.
func (s *Storage) Size() uint16 {
	return uint16(len(s.slots))
}

// Slot возвращает содержимое слота (пустой StorageSlot для out-of-range).
func (s *Storage) Slot(slotNo uint16) StorageSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.inRange(slotNo) {
		return StorageSlot{}
	}
	return s.slots[slotNo-1]
}

// SetSlot кладёт item в слот, перезаписывая содержимое.
//
// Parameters:
//   - slotNo: 1-based slot number
//   - item: предмет (nil очищает слот)
//   - num: количество (игнорируется для nil)
func (s *Storage) SetSlot(slotNo uint16, item *Item, num uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inRange(slotNo) {
		return fmt.Errorf("%s: invalid slot %d (must be 1..%d)", s.typ, slotNo, len(s.slots))
	}
	if item == nil {
		s.slots[slotNo-1] = StorageSlot{}
		return nil
	}
	if num == 0 {
		return fmt.Errorf("%s: slot %d: num must be > 0", s.typ, slotNo)
	}
	s.slots[slotNo-1] = StorageSlot{Item: item, Num: num}
	return nil
}

// ClearSlot empties a slot and returns what it held.
func (s *Storage) ClearSlot(slotNo uint16) StorageSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inRange(slotNo) {
		return StorageSlot{}
	}
	prev := s.slots[slotNo-1]
	s.slots[slotNo-1] = StorageSlot{}
	return prev
}

// FindByUID возвращает номер слота с предметом uid.
func (s *Storage) FindByUID(uid ItemUID) (uint16, bool) {
	return s.FindByUIDInRange(uid, 1, uint16(len(s.slots)))
}

// FindByUIDInRange searches slots from..to inclusive.
func (s *Storage) FindByUIDInRange(uid ItemUID, from, to uint16) (uint16, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if from < 1 {
		from = 1
	}
	if int(to) > len(s.slots) {
		to = uint16(len(s.slots))
	}
	for slotNo := from; slotNo >= 1 && slotNo <= to; slotNo++ {
		if it := s.slots[slotNo-1].Item; it != nil && it.UID() == uid {
			return slotNo, true
		}
	}
	return 0, false
}

// FirstFreeSlot returns the lowest empty slot number.
func (s *Storage) FirstFreeSlot() (uint16, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, slot := range s.slots {
		if slot.Item == nil {
			return uint16(i + 1), true
		}
	}
	return 0, false
}

// Count returns the number of occupied slots.
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, slot := range s.slots {
		if slot.Item != nil {
			n++
		}
	}
	return n
}

// StoredItem is a snapshot entry returned by Items.
type StoredItem struct {
	SlotNo uint16
	Item   *Item
	Num    uint32
}

// Items возвращает snapshot всех занятых слотов (копия).
func (s *Storage) Items() []StoredItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]StoredItem, 0, len(s.slots))
	for i, slot := range s.slots {
		if slot.Item != nil {
			items = append(items, StoredItem{SlotNo: uint16(i + 1), Item: slot.Item, Num: slot.Num})
		}
	}
	return items
}

func (s *Storage) inRange(slotNo uint16) bool {
	return slotNo >= 1 && int(slotNo) <= len(s.slots)
}

// Storages — набор storage одного персонажа, по типу.
type Storages struct {
	mu       sync.RWMutex
	storages map[StorageType]*Storage
}

// NewStorages creates an empty set.
func NewStorages() *Storages {
	return &Storages{storages: make(map[StorageType]*Storage, len(defaultStorageSizes))}
}

// NewDefaultStorages creates every storage a new character owns, with default sizes.
func NewDefaultStorages() *Storages {
	s := NewStorages()
	for typ, size := range defaultStorageSizes {
		s.Add(NewStorage(typ, size))
	}
	return s
}

// Add registers (or replaces) a storage.
func (s *Storages) Add(storage *Storage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storages[storage.Type()] = storage
}

// Get returns storage by type (nil if the character has none).
func (s *Storages) Get(typ StorageType) *Storage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storages[typ]
}

// Types returns registered storage types in ascending order.
func (s *Storages) Types() []StorageType {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]StorageType, 0, len(s.storages))
	for typ := range s.storages {
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// FindItemByUID ищет предмет в перечисленных storages (в порядке списка).
func (s *Storages) FindItemByUID(candidates []StorageType, uid ItemUID) (StorageType, uint16, bool) {
	for _, typ := range candidates {
		storage := s.Get(typ)
		if storage == nil {
			continue
		}
		if slotNo, ok := storage.FindByUID(uid); ok {
			return typ, slotNo, true
		}
	}
	return 0, 0, false
}
