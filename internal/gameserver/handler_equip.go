package gameserver

import (
	"context"
	"fmt"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/clientpackets"
	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

// unequipDestinations — куда уходят снятые предметы, по приоритету.
var unequipDestinations = []model.StorageType{
	model.StorageItemBagEquipment,
	model.StorageBox,
	model.StorageBoxExpansion,
}

// handleChangeCharacterEquip processes ChangeCharacterEquip (opcode 0x20).
func (h *Handler) handleChangeCharacterEquip(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseChangeCharacterEquip(data)
	if err != nil {
		return false, fmt.Errorf("parsing ChangeCharacterEquip: %w", err)
	}
	return h.changeEquip(ctx, client, clientpackets.OpcodeChangeCharacterEquip, client.Character(), staticChanges(pkt.Changes))
}

// handleChangePawnEquip processes ChangePawnEquip (opcode 0x22).
func (h *Handler) handleChangePawnEquip(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseChangePawnEquip(data)
	if err != nil {
		return false, fmt.Errorf("parsing ChangePawnEquip: %w", err)
	}
	pawn, err := ownedPawn(client.Character(), pkt.PawnID)
	if err != nil {
		return h.reject(client, clientpackets.OpcodeChangePawnEquip, err)
	}
	return h.changeEquip(ctx, client, clientpackets.OpcodeChangePawnEquip, pawn, staticChanges(pkt.Changes))
}

// handleChangeCharacterEquipJobItem processes ChangeCharacterEquipJobItem (opcode 0x24).
func (h *Handler) handleChangeCharacterEquipJobItem(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseChangeCharacterEquipJobItem(data)
	if err != nil {
		return false, fmt.Errorf("parsing ChangeCharacterEquipJobItem: %w", err)
	}
	return h.changeJobItems(ctx, client, clientpackets.OpcodeChangeCharacterEquipJobItem, client.Character(), pkt.Changes)
}

// handleChangePawnEquipJobItem processes ChangePawnEquipJobItem (opcode 0x26).
func (h *Handler) handleChangePawnEquipJobItem(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseChangePawnEquipJobItem(data)
	if err != nil {
		return false, fmt.Errorf("parsing ChangePawnEquipJobItem: %w", err)
	}
	pawn, err := ownedPawn(client.Character(), pkt.PawnID)
	if err != nil {
		return h.reject(client, clientpackets.OpcodeChangePawnEquipJobItem, err)
	}
	return h.changeJobItems(ctx, client, clientpackets.OpcodeChangePawnEquipJobItem, pawn, pkt.Changes)
}

// handleChangeEquipBySlot processes ChangeEquipBySlot (opcode 0x28).
// The flat slot number picks the entity (character or n-th pawn), category
// and category slot.
func (h *Handler) handleChangeEquipBySlot(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseChangeEquipBySlot(data)
	if err != nil {
		return false, fmt.Errorf("parsing ChangeEquipBySlot: %w", err)
	}

	fs, err := equip.ResolveFlatSlot(pkt.FlatSlotNo)
	if err != nil {
		return h.reject(client, clientpackets.OpcodeChangeEquipBySlot, err)
	}
	c := client.Character()
	var target model.Entity = c
	if fs.Block > 0 {
		pawn := c.PawnAt(fs.Block)
		if pawn == nil {
			return h.reject(client, clientpackets.OpcodeChangeEquipBySlot,
				fmt.Errorf("flat slot %d: no pawn at position %d: %w", pkt.FlatSlotNo, fs.Block, equip.ErrInvalidInput))
		}
		target = pawn
	}

	change := equip.EquipChange{Item: pkt.Item, EquipType: fs.EquipType, CategorySlot: fs.Slot}
	return h.changeEquip(ctx, client, clientpackets.OpcodeChangeEquipBySlot, target, staticChanges([]equip.EquipChange{change}))
}

// handleUnequipByUID processes UnequipByUID (opcode 0x29).
func (h *Handler) handleUnequipByUID(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseUnequipByUID(data)
	if err != nil {
		return false, fmt.Errorf("parsing UnequipByUID: %w", err)
	}

	c := client.Character()
	var target model.Entity = c
	if pkt.PawnID != 0 {
		pawn, err := ownedPawn(c, pkt.PawnID)
		if err != nil {
			return h.reject(client, clientpackets.OpcodeUnequipByUID, err)
		}
		target = pawn
	}

	// поиск под тем же lock, что и batch: слот не должен смениться между ними
	locate := func() ([]equip.EquipChange, error) {
		equipType, slot, err := equip.LocateEquippedItem(target, pkt.UID.UID)
		if err != nil {
			return nil, err
		}
		return []equip.EquipChange{{Item: equip.NoUID(), EquipType: equipType, CategorySlot: slot}}, nil
	}
	return h.changeEquip(ctx, client, clientpackets.OpcodeUnequipByUID, target, locate)
}

// changeEquip runs one regular-equip batch under the entity lock.
// changes is evaluated after the lock is taken.
func (h *Handler) changeEquip(
	ctx context.Context,
	client *GameClient,
	opcode byte,
	target model.Entity,
	changes func() ([]equip.EquipChange, error),
) (bool, error) {
	unlock := h.locks.Lock(target)
	err := func() error {
		list, err := changes()
		if err != nil {
			return err
		}
		ack := func() error { return client.SendPacket(equipRes(target)) }
		return h.engine.ChangeEquip(ctx, client, target, list, noticeType(target), unequipDestinations, ack)
	}()
	unlock()

	if err != nil {
		return h.reject(client, opcode, err)
	}
	return true, nil
}

// changeJobItems runs one job-item batch under the entity lock.
func (h *Handler) changeJobItems(ctx context.Context, client *GameClient, opcode byte, target model.Entity, changes []equip.JobItemChange) (bool, error) {
	unlock := h.locks.Lock(target)
	err := h.engine.ChangeJobItems(ctx, client, target, changes)
	unlock()

	if err != nil {
		return h.reject(client, opcode, err)
	}
	return true, nil
}

func staticChanges(list []equip.EquipChange) func() ([]equip.EquipChange, error) {
	return func() ([]equip.EquipChange, error) { return list, nil }
}

func ownedPawn(c *model.Character, pawnID uint32) (*model.Pawn, error) {
	pawn := c.Pawn(pawnID)
	if pawn == nil {
		return nil, fmt.Errorf("pawn %d is not owned by character %d: %w", pawnID, c.CharacterID(), equip.ErrInvalidInput)
	}
	return pawn, nil
}

func noticeType(target model.Entity) serverpackets.ItemNoticeType {
	if target.Kind() == model.EntityKindPawn {
		return serverpackets.ItemNoticeChangePawnEquip
	}
	return serverpackets.ItemNoticeChangeEquip
}

func equipRes(target model.Entity) serverpackets.Packet {
	if target.Kind() == model.EntityKindPawn {
		return &serverpackets.ChangePawnEquipRes{PawnID: target.PawnID()}
	}
	return &serverpackets.ChangeCharacterEquipRes{}
}
