package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCharacter(t *testing.T) {
	tests := []struct {
		name        string
		characterID uint32
		storages    *Storages
		wantErr     bool
	}{
		{"valid", 1, NewDefaultStorages(), false},
		{"zero id", 0, NewDefaultStorages(), true},
		{"nil storages", 1, nil, true},
		{"no equipment storage", 1, NewStorages(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCharacter(tt.characterID, 100, "Arisen", JobFighter, tt.storages)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, EntityKindCharacter, c.Kind())
			assert.Equal(t, uint32(100), c.CommonID())
			assert.Equal(t, uint32(0), c.PawnID())
			assert.Equal(t, StorageCharacterEquipment, c.Equipment().StorageType())
			assert.Equal(t, uint16(0), c.Equipment().Offset())
		})
	}
}

func TestCharacter_AddPawn(t *testing.T) {
	c := newTestPartyCharacter(t, 1, "Arisen")

	first, err := c.AddPawn(10, 110, "Rook", JobWarrior)
	require.NoError(t, err)
	second, err := c.AddPawn(11, 111, "Mira", JobSorcerer)
	require.NoError(t, err)

	assert.Equal(t, EntityKindPawn, first.Kind())
	assert.Equal(t, uint32(1), first.CharacterID())
	assert.Equal(t, StoragePawnEquipment, first.Equipment().StorageType())
	assert.Equal(t, uint16(0), first.Equipment().Offset())
	assert.Equal(t, uint16(EquipWindowSize), second.Equipment().Offset())

	assert.Equal(t, first, c.PawnAt(1))
	assert.Equal(t, second, c.PawnAt(2))
	assert.Nil(t, c.PawnAt(0))
	assert.Nil(t, c.PawnAt(3))
	assert.Equal(t, second, c.Pawn(11))
	assert.Nil(t, c.Pawn(99))

	_, err = c.AddPawn(10, 110, "Rook", JobWarrior)
	assert.Error(t, err, "duplicate pawn id")

	_, err = c.AddPawn(12, 112, "Extra", JobFighter)
	assert.Error(t, err, "pawn equipment storage has no window left")
	assert.Len(t, c.Pawns(), DefaultMaxPawns)
}

func TestEntity_KeyAndSnapshot(t *testing.T) {
	c := newTestPartyCharacter(t, 7, "Arisen")
	pawn, err := c.AddPawn(70, 170, "Rook", JobFighter)
	require.NoError(t, err)

	assert.Equal(t, EntityKey{Kind: EntityKindCharacter, ID: 7}, KeyOf(c))
	assert.Equal(t, EntityKey{Kind: EntityKindPawn, ID: 70}, KeyOf(pawn))

	ring := MustNewItem("ring0001", 5)
	require.NoError(t, c.Storages().Get(StoragePawnEquipment).SetSlot(TotalEquipSlots+4, ring, 1))

	snap := SnapshotOf(pawn)
	assert.Equal(t, EntityKindPawn, snap.Kind)
	assert.Equal(t, uint32(7), snap.CharacterID)
	assert.Equal(t, uint32(70), snap.PawnID)
	assert.Empty(t, snap.Performance)
	assert.Equal(t, []EquippedItem{{EquipType: EquipTypeVisual, EquipSlot: 4, Item: ring}}, snap.Visual)

	assert.Empty(t, SnapshotOf(c).Visual)
}

func TestCharacter_SetJob(t *testing.T) {
	c := newTestPartyCharacter(t, 1, "Arisen")
	sword := MustNewItem("sword001", 1)
	require.NoError(t, c.EquipmentTemplate().SetEquipItem(sword, JobFighter, EquipTypePerformance, 1))

	c.SetJob(JobSorcerer)
	assert.Equal(t, JobSorcerer, c.Job())
	assert.Equal(t, sword, c.EquipmentTemplate().EquipItem(JobFighter, EquipTypePerformance, 1))
}
