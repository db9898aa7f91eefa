package model

import (
	"fmt"
	"sort"
	"sync"
)

// EquippedItem is one (category, slot) entry of an equip snapshot.
type EquippedItem struct {
	EquipType EquipType
	EquipSlot uint8
	Item      *Item
}

// JobItemEntry is one job-item slot entry.
type JobItemEntry struct {
	EquipSlot uint8
	Item      *Item
}

// jobEquipment — экипировка одной профессии.
type jobEquipment struct {
	performance [TotalEquipSlots]*Item
	visual      [TotalEquipSlots]*Item
	jobItems    map[uint8]*Item
}

// EquipmentTemplate — per-job mapping (category, slot) → Item плюс отдельный
// per-job mapping job-item slot → Item. Смена профессии не трогает
// экипировку других профессий. Является кэшем persisted записей.
// Thread-safe.
type EquipmentTemplate struct {
	mu   sync.RWMutex
	jobs map[JobID]*jobEquipment
}

// NewEquipmentTemplate creates an empty template.
func NewEquipmentTemplate() *EquipmentTemplate {
	return &EquipmentTemplate{jobs: make(map[JobID]*jobEquipment)}
}

// SetEquipItem ставит (или очищает при item == nil) equip slot для профессии.
//
// Parameters:
//   - item: предмет или nil
//   - job: профессия
//   - equipType: Performance или Visual
//   - slot: 1..TotalEquipSlots
func (t *EquipmentTemplate) SetEquipItem(item *Item, job JobID, equipType EquipType, slot uint8) error {
	if err := validateEquipSlot(equipType, slot); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	je := t.job(job)
	if equipType == EquipTypeVisual {
		je.visual[slot-1] = item
	} else {
		je.performance[slot-1] = item
	}
	return nil
}

// EquipItem returns the item at (job, equipType, slot) or nil.
func (t *EquipmentTemplate) EquipItem(job JobID, equipType EquipType, slot uint8) *Item {
	if validateEquipSlot(equipType, slot) != nil {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	je, ok := t.jobs[job]
	if !ok {
		return nil
	}
	if equipType == EquipTypeVisual {
		return je.visual[slot-1]
	}
	return je.performance[slot-1]
}

// EquipItems returns occupied slots of one category for a job, ordered by slot.
func (t *EquipmentTemplate) EquipItems(job JobID, equipType EquipType) []EquippedItem {
	t.mu.RLock()
	defer t.mu.RUnlock()

	je, ok := t.jobs[job]
	if !ok {
		return nil
	}
	slots := &je.performance
	if equipType == EquipTypeVisual {
		slots = &je.visual
	}
	items := make([]EquippedItem, 0, TotalEquipSlots)
	for i, item := range slots {
		if item != nil {
			items = append(items, EquippedItem{EquipType: equipType, EquipSlot: uint8(i + 1), Item: item})
		}
	}
	return items
}

// SetJobItem ставит (или очищает при item == nil) job-item slot для профессии.
func (t *EquipmentTemplate) SetJobItem(item *Item, job JobID, slot uint8) error {
	if slot == 0 {
		return fmt.Errorf("invalid job item slot 0")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	je := t.job(job)
	if item == nil {
		delete(je.jobItems, slot)
		return nil
	}
	je.jobItems[slot] = item
	return nil
}

// JobItem returns the job item at slot or nil.
func (t *EquipmentTemplate) JobItem(job JobID, slot uint8) *Item {
	t.mu.RLock()
	defer t.mu.RUnlock()

	je, ok := t.jobs[job]
	if !ok {
		return nil
	}
	return je.jobItems[slot]
}

// JobItems возвращает все job items профессии, отсортированные по слоту.
func (t *EquipmentTemplate) JobItems(job JobID) []JobItemEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	je, ok := t.jobs[job]
	if !ok {
		return []JobItemEntry{}
	}
	entries := make([]JobItemEntry, 0, len(je.jobItems))
	for slot, item := range je.jobItems {
		entries = append(entries, JobItemEntry{EquipSlot: slot, Item: item})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].EquipSlot < entries[j].EquipSlot })
	return entries
}

// job returns (creating on demand) the per-job record. Caller holds t.mu.
func (t *EquipmentTemplate) job(job JobID) *jobEquipment {
	je, ok := t.jobs[job]
	if !ok {
		je = &jobEquipment{jobItems: make(map[uint8]*Item)}
		t.jobs[job] = je
	}
	return je
}

func validateEquipSlot(equipType EquipType, slot uint8) error {
	if !equipType.Valid() {
		return fmt.Errorf("invalid equip type %d", equipType)
	}
	if slot < 1 || slot > TotalEquipSlots {
		return fmt.Errorf("invalid equip slot %d (must be 1..%d)", slot, TotalEquipSlots)
	}
	return nil
}
