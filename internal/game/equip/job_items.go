package equip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

// ChangeJobItems applies a job-item batch to target for its current job.
// The resulting job-item list goes to the requester, then to the
// requester's party.
func (e *Engine) ChangeJobItems(ctx context.Context, r Requester, target model.Entity, changes []JobItemChange) (err error) {
	ctx, finish := e.startBatch(ctx, "job_items", target, len(changes))
	defer func() { finish(err) }()

	if _, err = resolveOwner(r, target); err != nil {
		return err
	}

	job := target.Job()
	template := target.EquipmentTemplate()

	for i, change := range changes {
		if err = e.applyJobItem(ctx, target, job, template, change); err != nil {
			return fmt.Errorf("job item entry %d (slot %d): %w", i, change.Slot, err)
		}
	}

	items := template.JobItems(job)
	res, ntc := jobItemPackets(target, items)

	if err = e.dispatcher.SendToRequester(r, res); err != nil {
		return fmt.Errorf("sending job item response: %w", err)
	}
	if err = e.dispatcher.SendToParty(r, ntc); err != nil {
		return fmt.Errorf("sending job item notice to party: %w", err)
	}

	slog.Info("job items changed", append(logAttrs(target), "entries", len(changes), "jobItems", len(items))...)
	return nil
}

func (e *Engine) applyJobItem(ctx context.Context, target model.Entity, job model.JobID, template *model.EquipmentTemplate, change JobItemChange) error {
	if !change.Item.Valid {
		if err := template.SetJobItem(nil, job, change.Slot); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if err := e.persistence.DeleteEquipJobItem(ctx, target.CommonID(), job, change.Slot); err != nil {
			return fmt.Errorf("deleting job item record: %w", err)
		}
		debugEntry(target, "job item removed", "slot", change.Slot)
		return nil
	}

	item, err := e.persistence.SelectItemByUID(ctx, change.Item.UID)
	if err != nil {
		return fmt.Errorf("selecting item %s: %w", change.Item.UID, err)
	}
	if err := template.SetJobItem(item, job, change.Slot); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := e.persistence.ReplaceEquipJobItem(ctx, target.CommonID(), job, change.Slot, item.UID()); err != nil {
		return fmt.Errorf("replacing job item record: %w", err)
	}
	debugEntry(target, "job item set", "slot", change.Slot, "uid", item.UID(), "itemID", item.ItemID())
	return nil
}

// jobItemPackets builds the direct response and the party notice for target.
func jobItemPackets(target model.Entity, items []model.JobItemEntry) (res, ntc serverpackets.Packet) {
	if target.Kind() == model.EntityKindPawn {
		res = &serverpackets.ChangePawnEquipJobItemRes{PawnID: target.PawnID(), JobItems: items}
		ntc = &serverpackets.ChangePawnEquipJobItemNtc{
			CharacterID: target.CharacterID(),
			PawnID:      target.PawnID(),
			JobItems:    items,
		}
		return res, ntc
	}
	res = &serverpackets.ChangeCharacterEquipJobItemRes{JobItems: items}
	ntc = &serverpackets.ChangeCharacterEquipJobItemNtc{CharacterID: target.CharacterID(), JobItems: items}
	return res, ntc
}
