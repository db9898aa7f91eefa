package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SetSlot(t *testing.T) {
	s := NewStorage(StorageItemBagEquipment, 3)
	sword := MustNewItem("sword001", 100)

	tests := []struct {
		name    string
		slotNo  uint16
		item    *Item
		num     uint32
		wantErr bool
	}{
		{"first slot", 1, sword, 1, false},
		{"last slot", 3, sword, 2, false},
		{"slot zero", 0, sword, 1, true},
		{"past end", 4, sword, 1, true},
		{"zero num", 2, sword, 0, true},
		{"clear with nil", 1, nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetSlot(tt.slotNo, tt.item, tt.num)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			got := s.Slot(tt.slotNo)
			assert.Equal(t, tt.item, got.Item)
			if tt.item != nil {
				assert.Equal(t, tt.num, got.Num)
			}
		})
	}
}

func TestStorage_FindAndFree(t *testing.T) {
	s := NewStorage(StorageBox, 4)
	a := MustNewItem("aaaa0001", 1)
	b := MustNewItem("bbbb0002", 2)
	require.NoError(t, s.SetSlot(1, a, 1))
	require.NoError(t, s.SetSlot(3, b, 5))

	slotNo, ok := s.FindByUID("bbbb0002")
	require.True(t, ok)
	assert.Equal(t, uint16(3), slotNo)

	_, ok = s.FindByUID("missing")
	assert.False(t, ok)

	_, ok = s.FindByUIDInRange("bbbb0002", 1, 2)
	assert.False(t, ok, "out of search range")

	free, ok := s.FirstFreeSlot()
	require.True(t, ok)
	assert.Equal(t, uint16(2), free)

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []StoredItem{
		{SlotNo: 1, Item: a, Num: 1},
		{SlotNo: 3, Item: b, Num: 5},
	}, s.Items())

	prev := s.ClearSlot(3)
	assert.Equal(t, b, prev.Item)
	assert.True(t, s.Slot(3).Empty())
}

func TestStorage_FirstFreeSlot_Full(t *testing.T) {
	s := NewStorage(StorageItemBagEquipment, 1)
	require.NoError(t, s.SetSlot(1, MustNewItem("full0001", 1), 1))

	_, ok := s.FirstFreeSlot()
	assert.False(t, ok)
}

func TestStorages_FindItemByUID(t *testing.T) {
	storages := NewDefaultStorages()
	item := MustNewItem("boxitem1", 7)
	require.NoError(t, storages.Get(StorageBox).SetSlot(12, item, 1))

	typ, slotNo, ok := storages.FindItemByUID(EquipmentSources, "boxitem1")
	require.True(t, ok)
	assert.Equal(t, StorageBox, typ)
	assert.Equal(t, uint16(12), slotNo)

	_, _, ok = storages.FindItemByUID([]StorageType{StorageItemBagEquipment}, "boxitem1")
	assert.False(t, ok, "not among candidates")
}

func TestNewDefaultStorages_Layout(t *testing.T) {
	storages := NewDefaultStorages()

	assert.Len(t, storages.Types(), len(defaultStorageSizes))
	assert.Equal(t, uint16(EquipWindowSize), storages.Get(StorageCharacterEquipment).Size())
	assert.Equal(t, uint16(EquipWindowSize*DefaultMaxPawns), storages.Get(StoragePawnEquipment).Size())
	assert.Nil(t, NewStorages().Get(StorageBox))
}
