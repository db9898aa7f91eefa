package equip

import (
	"fmt"

	"github.com/udisondev/ddongo/internal/model"
)

// Flat slot numbering: 1..30 — персонаж, далее блоки по EquipWindowSize на
// каждого pawn. Внутри блока 1..15 — Performance, 16..30 — Visual.

// FlatSlot is a flat slot number reduced to its parts.
type FlatSlot struct {
	// Block — 0 для персонажа, k >= 1 для k-го pawn владельца.
	Block     int
	EquipType model.EquipType
	// Slot — 1..TotalEquipSlots внутри категории.
	Slot uint8
}

// ResolveFlatSlot splits a flat slot number into block, category and local slot.
func ResolveFlatSlot(slotNo uint16) (FlatSlot, error) {
	if slotNo < 1 {
		return FlatSlot{}, fmt.Errorf("flat slot %d: %w", slotNo, ErrInvalidInput)
	}
	block := int(slotNo-1) / model.EquipWindowSize
	relative := slotNo - uint16(block*model.EquipWindowSize)
	return FlatSlot{
		Block:     block,
		EquipType: classifyRelative(relative),
		Slot:      FoldToLocalCategorySlot(relative),
	}, nil
}

// ClassifyFlatSlot returns the category of a flat slot number. Slots past the
// character's block are classified by their position inside the pawn block:
// 46 is the pawn's first Visual slot. Folding to 1..15 first and classifying
// the folded number would always yield Performance for pawn slots; здесь
// сознательно не так.
func ClassifyFlatSlot(slotNo uint16) (model.EquipType, error) {
	fs, err := ResolveFlatSlot(slotNo)
	if err != nil {
		return 0, err
	}
	return fs.EquipType, nil
}

// ResolvePawnLocalSlot reduces a flat slot number to its 1..15 category slot.
func ResolvePawnLocalSlot(slotNo uint16) (uint8, error) {
	fs, err := ResolveFlatSlot(slotNo)
	if err != nil {
		return 0, err
	}
	return fs.Slot, nil
}

// FoldToLocalCategorySlot folds a slot already inside one entity's 1..30
// window to 1..15.
func FoldToLocalCategorySlot(slotNo uint16) uint8 {
	if slotNo > model.TotalEquipSlots {
		return uint8(slotNo - model.TotalEquipSlots)
	}
	return uint8(slotNo)
}

func classifyRelative(relative uint16) model.EquipType {
	if relative > model.TotalEquipSlots {
		return model.EquipTypeVisual
	}
	return model.EquipTypePerformance
}
