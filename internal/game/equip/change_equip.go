package equip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

// ChangeEquip applies a regular-equip batch to target.
//
// Unequipped items go to the first storage in destinations that has a free
// slot. Equipped items are taken from model.EquipmentSources. After the batch
// the accumulated slot deltas go to the requester, then ack runs, then the
// full equip snapshot goes to every connected client.
//
// Parameters:
//   - noticeType: тип ItemUpdateCharacterNtc
//   - destinations: storages для снятых предметов, по приоритету
//   - ack: отправка Res клиенту; вызывается строго после update notice
func (e *Engine) ChangeEquip(
	ctx context.Context,
	r Requester,
	target model.Entity,
	changes []EquipChange,
	noticeType serverpackets.ItemNoticeType,
	destinations []model.StorageType,
	ack func() error,
) (err error) {
	ctx, finish := e.startBatch(ctx, "equip", target, len(changes))
	defer func() { finish(err) }()

	owner, err := resolveOwner(r, target)
	if err != nil {
		return err
	}

	var deltas []model.ItemDelta
	for i, change := range changes {
		entryDeltas, err := e.applyEquip(ctx, owner, target, change, destinations)
		if err != nil {
			return fmt.Errorf("equip entry %d (%s slot %d): %w", i, change.EquipType, change.CategorySlot, err)
		}
		deltas = append(deltas, entryDeltas...)
	}

	notice := &serverpackets.ItemUpdateCharacterNtc{UpdateType: noticeType, Deltas: deltas}
	if err = e.dispatcher.SendToRequester(r, notice); err != nil {
		return fmt.Errorf("sending item update notice: %w", err)
	}
	if ack != nil {
		if err = ack(); err != nil {
			return fmt.Errorf("acknowledging equip change: %w", err)
		}
	}

	snapshot := model.SnapshotOf(target)
	if err = e.dispatcher.SendToAllConnected(serverpackets.NewEquipNtc(snapshot)); err != nil {
		return fmt.Errorf("broadcasting equip snapshot: %w", err)
	}
	if e.sink != nil {
		// кэш вторичен: batch уже применён и разослан
		if sinkErr := e.sink.StoreSnapshot(ctx, snapshot); sinkErr != nil {
			slog.Warn("storing equip snapshot", append(logAttrs(target), "error", sinkErr)...)
		}
	}

	slog.Info("equipment changed", append(logAttrs(target), "entries", len(changes), "deltas", len(deltas))...)
	return nil
}

// applyEquip applies one entry and returns the storage deltas it produced.
func (e *Engine) applyEquip(
	ctx context.Context,
	owner *model.Character,
	target model.Entity,
	change EquipChange,
	destinations []model.StorageType,
) ([]model.ItemDelta, error) {
	eq := target.Equipment()
	storageSlot, err := eq.StorageSlot(change.EquipType, change.CategorySlot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if !change.Item.Valid {
		return e.unequip(ctx, owner, target, change, storageSlot, destinations)
	}
	return e.equip(ctx, owner, target, change, storageSlot)
}

func (e *Engine) unequip(
	ctx context.Context,
	owner *model.Character,
	target model.Entity,
	change EquipChange,
	storageSlot uint16,
	destinations []model.StorageType,
) ([]model.ItemDelta, error) {
	job := target.Job()
	eq := target.Equipment()

	if err := target.EquipmentTemplate().SetEquipItem(nil, job, change.EquipType, change.CategorySlot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := e.persistence.DeleteEquipItem(ctx, target.CommonID(), job, change.EquipType, change.CategorySlot); err != nil {
		return nil, fmt.Errorf("deleting equip record: %w", err)
	}

	occupant := eq.Storage().Slot(storageSlot)
	if occupant.Empty() {
		return nil, fmt.Errorf("nothing equipped at %s slot %d: %w", eq.StorageType(), storageSlot, ErrNotFound)
	}

	dest, err := e.storage.FirstFreeDestination(owner, destinations)
	if err != nil {
		return nil, err
	}
	deltas, err := e.storage.MoveItem(ctx, owner, eq.StorageType(), storageSlot, 1, dest, 0)
	if err != nil {
		return nil, fmt.Errorf("moving %s to %s: %w", occupant.Item.UID(), dest, err)
	}

	debugEntry(target, "item unequipped",
		"equipType", change.EquipType, "slot", change.CategorySlot,
		"uid", occupant.Item.UID(), "destination", dest)
	return deltas, nil
}

func (e *Engine) equip(
	ctx context.Context,
	owner *model.Character,
	target model.Entity,
	change EquipChange,
	storageSlot uint16,
) ([]model.ItemDelta, error) {
	job := target.Job()
	eq := target.Equipment()
	uid := change.Item.UID

	loc, err := e.sourceLocation(owner, eq, uid, storageSlot)
	if err != nil {
		return nil, err
	}

	if err := target.EquipmentTemplate().SetEquipItem(loc.Item, job, change.EquipType, change.CategorySlot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := e.persistence.ReplaceEquipItem(ctx, target.CommonID(), job, change.EquipType, change.CategorySlot, uid); err != nil {
		return nil, fmt.Errorf("replacing equip record: %w", err)
	}

	deltas, err := e.storage.MoveItem(ctx, owner, loc.StorageType, loc.SlotNo, 1, eq.StorageType(), storageSlot)
	if err != nil {
		return nil, fmt.Errorf("moving %s from %s: %w", uid, loc.StorageType, err)
	}

	debugEntry(target, "item equipped",
		"equipType", change.EquipType, "slot", change.CategorySlot,
		"uid", uid, "itemID", loc.Item.ItemID(), "source", loc.StorageType)
	return deltas, nil
}

// sourceLocation finds the item to equip. An item already in the target slot
// is a re-equip; an item elsewhere in the same window is rejected.
func (e *Engine) sourceLocation(owner *model.Character, eq *model.Equipment, uid model.ItemUID, storageSlot uint16) (Location, error) {
	current := eq.Storage().Slot(storageSlot)
	if current.Item != nil && current.Item.UID() == uid {
		return Location{
			StorageType: eq.StorageType(),
			SlotNo:      storageSlot,
			Item:        current.Item,
			Num:         current.Num,
		}, nil
	}

	from, to := eq.Offset()+1, eq.Offset()+model.EquipWindowSize
	if slotNo, ok := eq.Storage().FindByUIDInRange(uid, from, to); ok {
		return Location{}, fmt.Errorf("item %s already equipped at %s slot %d: %w",
			uid, eq.StorageType(), slotNo, ErrInvalidInput)
	}

	loc, err := e.storage.FindItemLocation(owner, uid, model.EquipmentSources)
	if err != nil {
		return Location{}, fmt.Errorf("locating item %s: %w", uid, err)
	}
	return loc, nil
}
