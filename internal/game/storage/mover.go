// Package storage moves items between a character's storages and mirrors
// every touched slot into the storage item store.
package storage

import (
	"context"
	"fmt"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/model"
)

// ItemStore persists storage slot contents.
type ItemStore interface {
	ReplaceStorageItem(ctx context.Context, characterID uint32, storageType model.StorageType, slotNo uint16, uid model.ItemUID, num uint32) error
	DeleteStorageItem(ctx context.Context, characterID uint32, storageType model.StorageType, slotNo uint16) error
}

// Mover implements equip.Storage over model.Storages.
// Caller serializes operations on the same owner.
type Mover struct {
	store ItemStore
}

var _ equip.Storage = (*Mover)(nil)

// NewMover creates a mover persisting through store.
func NewMover(store ItemStore) *Mover {
	return &Mover{store: store}
}

// FindItemLocation returns the first slot among candidates holding uid.
func (m *Mover) FindItemLocation(owner *model.Character, uid model.ItemUID, candidates []model.StorageType) (equip.Location, error) {
	typ, slotNo, ok := owner.Storages().FindItemByUID(candidates, uid)
	if !ok {
		return equip.Location{}, fmt.Errorf("item %s not in %v: %w", uid, candidates, equip.ErrNotFound)
	}
	slot := owner.Storages().Get(typ).Slot(slotNo)
	return equip.Location{StorageType: typ, SlotNo: slotNo, Item: slot.Item, Num: slot.Num}, nil
}

// FirstFreeDestination returns the first candidate with an empty slot.
func (m *Mover) FirstFreeDestination(owner *model.Character, candidates []model.StorageType) (model.StorageType, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no destination storages: %w", equip.ErrInvalidInput)
	}
	for _, typ := range candidates {
		s := owner.Storages().Get(typ)
		if s == nil {
			continue
		}
		if _, ok := s.FirstFreeSlot(); ok {
			return typ, nil
		}
	}
	return 0, fmt.Errorf("destinations %v: %w", candidates, equip.ErrStorageFull)
}

// MoveItem moves the whole stack at (from, fromSlot) to (to, toSlot).
// toSlot 0 picks the first free slot of to. An occupied destination swaps
// its content into the source slot. Moving onto itself is a no-op.
//
// Предметы уникальны по UID, поэтому частичный перенос стека запрещён:
// num должен совпадать с количеством в слоте.
func (m *Mover) MoveItem(
	ctx context.Context,
	owner *model.Character,
	from model.StorageType,
	fromSlot uint16,
	num uint32,
	to model.StorageType,
	toSlot uint16,
) ([]model.ItemDelta, error) {
	src := owner.Storages().Get(from)
	if src == nil {
		return nil, fmt.Errorf("character %d has no %s: %w", owner.CharacterID(), from, equip.ErrInvalidInput)
	}
	dst := owner.Storages().Get(to)
	if dst == nil {
		return nil, fmt.Errorf("character %d has no %s: %w", owner.CharacterID(), to, equip.ErrInvalidInput)
	}

	moving := src.Slot(fromSlot)
	if moving.Empty() {
		return nil, fmt.Errorf("%s slot %d is empty: %w", from, fromSlot, equip.ErrNotFound)
	}
	if num != moving.Num {
		return nil, fmt.Errorf("moving %d of %d units from %s slot %d: %w",
			num, moving.Num, from, fromSlot, equip.ErrInvalidInput)
	}

	if toSlot == 0 {
		free, ok := dst.FirstFreeSlot()
		if !ok {
			return nil, fmt.Errorf("%s: %w", to, equip.ErrStorageFull)
		}
		toSlot = free
	}
	if toSlot > dst.Size() {
		return nil, fmt.Errorf("%s slot %d out of range: %w", to, toSlot, equip.ErrInvalidInput)
	}
	if from == to && fromSlot == toSlot {
		return nil, nil
	}

	displaced := dst.Slot(toSlot)
	characterID := owner.CharacterID()

	// сначала store, потом память: при ошибке store память не расходится с БД
	if err := m.store.ReplaceStorageItem(ctx, characterID, to, toSlot, moving.Item.UID(), moving.Num); err != nil {
		return nil, fmt.Errorf("persisting %s slot %d: %w", to, toSlot, err)
	}
	if displaced.Empty() {
		if err := m.store.DeleteStorageItem(ctx, characterID, from, fromSlot); err != nil {
			return nil, fmt.Errorf("persisting %s slot %d: %w", from, fromSlot, err)
		}
	} else {
		if err := m.store.ReplaceStorageItem(ctx, characterID, from, fromSlot, displaced.Item.UID(), displaced.Num); err != nil {
			return nil, fmt.Errorf("persisting %s slot %d: %w", from, fromSlot, err)
		}
	}

	if err := dst.SetSlot(toSlot, moving.Item, moving.Num); err != nil {
		return nil, err
	}
	if err := src.SetSlot(fromSlot, displaced.Item, displaced.Num); err != nil {
		return nil, err
	}

	srcDelta := model.ItemDelta{
		StorageType: from,
		SlotNo:      fromSlot,
		UID:         moving.Item.UID(),
		ItemID:      moving.Item.ItemID(),
		Num:         0,
		Change:      -int32(moving.Num),
	}
	if !displaced.Empty() {
		srcDelta = model.ItemDelta{
			StorageType: from,
			SlotNo:      fromSlot,
			UID:         displaced.Item.UID(),
			ItemID:      displaced.Item.ItemID(),
			Num:         displaced.Num,
			Change:      int32(displaced.Num),
		}
	}
	dstDelta := model.ItemDelta{
		StorageType: to,
		SlotNo:      toSlot,
		UID:         moving.Item.UID(),
		ItemID:      moving.Item.ItemID(),
		Num:         moving.Num,
		Change:      int32(moving.Num),
	}
	return []model.ItemDelta{srcDelta, dstDelta}, nil
}
