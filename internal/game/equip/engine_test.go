package equip_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/game/equip/mocks"
	"github.com/udisondev/ddongo/internal/game/storage"
	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
	"github.com/udisondev/ddongo/internal/observe"
)

// --- fakes ---

type equipKey struct {
	commonID  uint32
	job       model.JobID
	equipType model.EquipType
	slot      uint8
}

type jobItemKey struct {
	commonID uint32
	job      model.JobID
	slot     uint8
}

// memPersistence — in-memory equip records plus an item catalog.
type memPersistence struct {
	mu       sync.Mutex
	equip    map[equipKey]model.ItemUID
	jobItems map[jobItemKey]model.ItemUID
	items    map[model.ItemUID]*model.Item
}

func newMemPersistence() *memPersistence {
	return &memPersistence{
		equip:    make(map[equipKey]model.ItemUID),
		jobItems: make(map[jobItemKey]model.ItemUID),
		items:    make(map[model.ItemUID]*model.Item),
	}
}

func (p *memPersistence) DeleteEquipItem(_ context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.equip, equipKey{commonID, job, equipType, slot})
	return nil
}

func (p *memPersistence) ReplaceEquipItem(_ context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8, uid model.ItemUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.equip[equipKey{commonID, job, equipType, slot}] = uid
	return nil
}

func (p *memPersistence) DeleteEquipJobItem(_ context.Context, commonID uint32, job model.JobID, slot uint8) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.jobItems, jobItemKey{commonID, job, slot})
	return nil
}

func (p *memPersistence) ReplaceEquipJobItem(_ context.Context, commonID uint32, job model.JobID, slot uint8, uid model.ItemUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobItems[jobItemKey{commonID, job, slot}] = uid
	return nil
}

func (p *memPersistence) SelectItemByUID(_ context.Context, uid model.ItemUID) (*model.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	item, ok := p.items[uid]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", uid, equip.ErrNotFound)
	}
	return item, nil
}

// nopItemStore — storage slot persistence is covered by the storage package.
type nopItemStore struct{}

func (nopItemStore) ReplaceStorageItem(context.Context, uint32, model.StorageType, uint16, model.ItemUID, uint32) error {
	return nil
}

func (nopItemStore) DeleteStorageItem(context.Context, uint32, model.StorageType, uint16) error {
	return nil
}

type moveCall struct {
	from model.StorageType
	to   model.StorageType
	num  uint32
}

// countingStorage records every MoveItem issued by the engine.
type countingStorage struct {
	equip.Storage
	moves []moveCall
}

func (s *countingStorage) MoveItem(ctx context.Context, owner *model.Character, from model.StorageType, fromSlot uint16, num uint32, to model.StorageType, toSlot uint16) ([]model.ItemDelta, error) {
	s.moves = append(s.moves, moveCall{from: from, to: to, num: num})
	return s.Storage.MoveItem(ctx, owner, from, fromSlot, num, to, toSlot)
}

type sent struct {
	target string
	pkt    serverpackets.Packet
}

// recordingDispatcher records packets in send order.
type recordingDispatcher struct {
	log *[]string
	out []sent
}

func (d *recordingDispatcher) record(target string, pkt serverpackets.Packet) error {
	d.out = append(d.out, sent{target, pkt})
	if d.log != nil {
		*d.log = append(*d.log, target)
	}
	return nil
}

func (d *recordingDispatcher) SendToRequester(_ equip.Requester, pkt serverpackets.Packet) error {
	return d.record("requester", pkt)
}

func (d *recordingDispatcher) SendToParty(_ equip.Requester, pkt serverpackets.Packet) error {
	return d.record("party", pkt)
}

func (d *recordingDispatcher) SendToAllConnected(pkt serverpackets.Packet) error {
	return d.record("all", pkt)
}

func (d *recordingDispatcher) targets() []string {
	out := make([]string, 0, len(d.out))
	for _, s := range d.out {
		out = append(out, s.target)
	}
	return out
}

type requester struct{ c *model.Character }

func (r requester) Character() *model.Character { return r.c }

// --- fixture ---

type fixture struct {
	owner       *model.Character
	pawn        *model.Pawn
	persistence *memPersistence
	storage     *countingStorage
	dispatcher  *recordingDispatcher
	engine      *equip.Engine
	req         requester
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	owner, err := model.NewCharacter(1, 100, "Arisen", model.JobFighter, model.NewDefaultStorages())
	require.NoError(t, err)
	pawn, err := owner.AddPawn(10, 110, "Rook", model.JobWarrior)
	require.NoError(t, err)

	f := &fixture{
		owner:       owner,
		pawn:        pawn,
		persistence: newMemPersistence(),
		storage:     &countingStorage{Storage: storage.NewMover(nopItemStore{})},
		dispatcher:  &recordingDispatcher{},
		req:         requester{owner},
	}
	f.engine = equip.NewEngine(f.persistence, f.storage, f.dispatcher)
	return f
}

func (f *fixture) put(t *testing.T, typ model.StorageType, slotNo uint16, uid model.ItemUID) *model.Item {
	t.Helper()
	item := model.MustNewItem(uid, 1000+uint32(slotNo))
	require.NoError(t, f.owner.Storages().Get(typ).SetSlot(slotNo, item, 1))
	f.persistence.items[uid] = item
	return item
}

func (f *fixture) changeEquip(target model.Entity, destinations []model.StorageType, changes ...equip.EquipChange) error {
	return f.engine.ChangeEquip(context.Background(), f.req, target, changes,
		serverpackets.ItemNoticeChangeEquip, destinations, func() error { return nil })
}

func equipTo(uid model.ItemUID, equipType model.EquipType, slot uint8) equip.EquipChange {
	return equip.EquipChange{Item: equip.SomeUID(uid), EquipType: equipType, CategorySlot: slot}
}

func unequipFrom(equipType model.EquipType, slot uint8) equip.EquipChange {
	return equip.EquipChange{Item: equip.NoUID(), EquipType: equipType, CategorySlot: slot}
}

var bagOnly = []model.StorageType{model.StorageItemBagEquipment}

// --- regular equip ---

func TestChangeEquip_UnequipToBag(t *testing.T) {
	f := newFixture(t)
	x1 := f.put(t, model.StorageItemBagEquipment, 1, "X1")
	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("X1", model.EquipTypePerformance, 3)))
	f.dispatcher.out = nil

	err := f.changeEquip(f.owner, bagOnly, unequipFrom(model.EquipTypePerformance, 3))
	require.NoError(t, err)

	assert.Nil(t, f.owner.EquipmentTemplate().EquipItem(model.JobFighter, model.EquipTypePerformance, 3))
	assert.Empty(t, f.persistence.equip)
	assert.Equal(t, x1, f.owner.Storages().Get(model.StorageItemBagEquipment).Slot(1).Item)

	require.NotEmpty(t, f.dispatcher.out)
	notice, ok := f.dispatcher.out[0].pkt.(*serverpackets.ItemUpdateCharacterNtc)
	require.True(t, ok)
	assert.Equal(t, serverpackets.ItemNoticeChangeEquip, notice.UpdateType)
	assert.Equal(t, []model.ItemDelta{
		{StorageType: model.StorageCharacterEquipment, SlotNo: 3, UID: "X1", ItemID: x1.ItemID(), Num: 0, Change: -1},
		{StorageType: model.StorageItemBagEquipment, SlotNo: 1, UID: "X1", ItemID: x1.ItemID(), Num: 1, Change: 1},
	}, notice.Deltas)
}

func TestChangeEquip_EquipFromSources(t *testing.T) {
	tests := []struct {
		name   string
		source model.StorageType
	}{
		{"item bag", model.StorageItemBagEquipment},
		{"storage box", model.StorageBox},
		{"storage box expansion", model.StorageBoxExpansion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			helm := f.put(t, tt.source, 7, "helm0001")

			require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("helm0001", model.EquipTypeVisual, 2)))

			assert.Equal(t, helm, f.owner.EquipmentTemplate().EquipItem(model.JobFighter, model.EquipTypeVisual, 2))
			assert.Equal(t, model.ItemUID("helm0001"),
				f.persistence.equip[equipKey{100, model.JobFighter, model.EquipTypeVisual, 2}])
			assert.Equal(t, helm, f.owner.Storages().Get(model.StorageCharacterEquipment).Slot(17).Item)
			assert.True(t, f.owner.Storages().Get(tt.source).Slot(7).Empty())
		})
	}
}

func TestChangeEquip_EquipTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	sword := f.put(t, model.StorageItemBagEquipment, 1, "sword001")
	change := equipTo("sword001", model.EquipTypePerformance, 1)

	require.NoError(t, f.changeEquip(f.owner, bagOnly, change))
	recordsAfterFirst := maps(f.persistence.equip)
	equipAfterFirst := f.owner.Storages().Get(model.StorageCharacterEquipment).Items()
	bagAfterFirst := f.owner.Storages().Get(model.StorageItemBagEquipment).Items()

	require.NoError(t, f.changeEquip(f.owner, bagOnly, change))

	assert.Equal(t, sword, f.owner.EquipmentTemplate().EquipItem(model.JobFighter, model.EquipTypePerformance, 1))
	assert.Equal(t, recordsAfterFirst, f.persistence.equip)
	assert.Len(t, f.persistence.equip, 1)
	assert.Equal(t, equipAfterFirst, f.owner.Storages().Get(model.StorageCharacterEquipment).Items())
	assert.Equal(t, bagAfterFirst, f.owner.Storages().Get(model.StorageItemBagEquipment).Items())
}

func TestChangeEquip_RoundTripRestoresLocation(t *testing.T) {
	f := newFixture(t)
	for i := uint16(1); i <= 3; i++ {
		f.put(t, model.StorageItemBagEquipment, i, model.ItemUID(fmt.Sprintf("fill%04d", i)))
	}
	ring := f.put(t, model.StorageItemBagEquipment, 4, "ring0001")

	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("ring0001", model.EquipTypePerformance, 9)))
	require.NoError(t, f.changeEquip(f.owner, bagOnly, unequipFrom(model.EquipTypePerformance, 9)))

	slot := f.owner.Storages().Get(model.StorageItemBagEquipment).Slot(4)
	assert.Equal(t, ring, slot.Item)
	assert.Equal(t, uint32(1), slot.Num)
	assert.Empty(t, f.persistence.equip)
	assert.Equal(t, 0, f.owner.Storages().Get(model.StorageCharacterEquipment).Count())
}

func TestChangeEquip_OneMovePerEntry(t *testing.T) {
	f := newFixture(t)
	f.put(t, model.StorageItemBagEquipment, 1, "aaaa0001")
	f.put(t, model.StorageBox, 1, "bbbb0001")

	err := f.changeEquip(f.owner, bagOnly,
		equipTo("aaaa0001", model.EquipTypePerformance, 1),
		equipTo("bbbb0001", model.EquipTypeVisual, 1),
		unequipFrom(model.EquipTypePerformance, 1),
		// слот освобождён предыдущей записью этого же batch
		equipTo("aaaa0001", model.EquipTypePerformance, 1),
	)
	require.NoError(t, err)

	require.Len(t, f.storage.moves, 4)
	for _, m := range f.storage.moves {
		assert.Equal(t, uint32(1), m.num)
	}
}

func TestChangeEquip_UnequipFallsBackToNextDestination(t *testing.T) {
	f := newFixture(t)
	cape := f.put(t, model.StorageBox, 1, "cape0001")
	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("cape0001", model.EquipTypeVisual, 4)))

	bag := f.owner.Storages().Get(model.StorageItemBagEquipment)
	for i := uint16(1); i <= bag.Size(); i++ {
		f.put(t, model.StorageItemBagEquipment, i, model.NewItemUID())
	}

	destinations := []model.StorageType{model.StorageItemBagEquipment, model.StorageBox}
	require.NoError(t, f.changeEquip(f.owner, destinations, unequipFrom(model.EquipTypeVisual, 4)))
	assert.Equal(t, cape, f.owner.Storages().Get(model.StorageBox).Slot(1).Item)

	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("cape0001", model.EquipTypeVisual, 4)))
	err := f.changeEquip(f.owner, bagOnly, unequipFrom(model.EquipTypeVisual, 4))
	assert.ErrorIs(t, err, equip.ErrStorageFull)
}

func TestChangeEquip_SwapWithEquippedItem(t *testing.T) {
	f := newFixture(t)
	oldSword := f.put(t, model.StorageItemBagEquipment, 1, "oldsword")
	newSword := f.put(t, model.StorageItemBagEquipment, 2, "newsword")
	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("oldsword", model.EquipTypePerformance, 1)))

	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("newsword", model.EquipTypePerformance, 1)))

	assert.Equal(t, newSword, f.owner.Equipment().WindowSlot(1).Item)
	assert.Equal(t, oldSword, f.owner.Storages().Get(model.StorageItemBagEquipment).Slot(2).Item)
	assert.Equal(t, newSword, f.owner.EquipmentTemplate().EquipItem(model.JobFighter, model.EquipTypePerformance, 1))
}

func TestChangeEquip_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *fixture)
		change  equip.EquipChange
		wantErr error
	}{
		{
			name:    "item not in sources",
			change:  equipTo("missing1", model.EquipTypePerformance, 1),
			wantErr: equip.ErrNotFound,
		},
		{
			name: "item in key items is not a source",
			setup: func(t *testing.T, f *fixture) {
				f.put(t, model.StorageKeyItems, 1, "keyitem1")
			},
			change:  equipTo("keyitem1", model.EquipTypePerformance, 1),
			wantErr: equip.ErrNotFound,
		},
		{
			name:    "unequip empty slot",
			change:  unequipFrom(model.EquipTypeVisual, 5),
			wantErr: equip.ErrNotFound,
		},
		{
			name: "item equipped in another slot",
			setup: func(t *testing.T, f *fixture) {
				f.put(t, model.StorageItemBagEquipment, 1, "ring0001")
				require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("ring0001", model.EquipTypePerformance, 9)))
			},
			change:  equipTo("ring0001", model.EquipTypePerformance, 10),
			wantErr: equip.ErrInvalidInput,
		},
		{
			name:    "slot out of range",
			change:  equipTo("whatever", model.EquipTypePerformance, 16),
			wantErr: equip.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(t, f)
			}
			f.dispatcher.out = nil

			err := f.changeEquip(f.owner, bagOnly, tt.change)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.dispatcher.out, "failed batch sends nothing")
		})
	}
}

func TestChangeEquip_NotTransactional(t *testing.T) {
	f := newFixture(t)
	sword := f.put(t, model.StorageItemBagEquipment, 1, "sword001")

	err := f.changeEquip(f.owner, bagOnly,
		equipTo("sword001", model.EquipTypePerformance, 1),
		equipTo("missing1", model.EquipTypePerformance, 2),
	)
	require.ErrorIs(t, err, equip.ErrNotFound)

	assert.Equal(t, sword, f.owner.Equipment().WindowSlot(1).Item, "first entry stays applied")
	assert.Len(t, f.persistence.equip, 1)
}

func TestChangeEquip_NoticeThenAckThenBroadcast(t *testing.T) {
	f := newFixture(t)
	var order []string
	f.dispatcher.log = &order
	f.put(t, model.StorageItemBagEquipment, 1, "sword001")

	err := f.engine.ChangeEquip(context.Background(), f.req, f.owner,
		[]equip.EquipChange{equipTo("sword001", model.EquipTypePerformance, 1)},
		serverpackets.ItemNoticeChangeEquip, bagOnly,
		func() error {
			order = append(order, "ack")
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"requester", "ack", "all"}, order)
}

func TestChangeEquip_AckErrorStopsBroadcast(t *testing.T) {
	f := newFixture(t)
	f.put(t, model.StorageItemBagEquipment, 1, "sword001")

	err := f.engine.ChangeEquip(context.Background(), f.req, f.owner,
		[]equip.EquipChange{equipTo("sword001", model.EquipTypePerformance, 1)},
		serverpackets.ItemNoticeChangeEquip, bagOnly,
		func() error { return assert.AnError })
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"requester"}, f.dispatcher.targets())
}

func TestChangeEquip_BroadcastSnapshot(t *testing.T) {
	t.Run("character", func(t *testing.T) {
		f := newFixture(t)
		helm := f.put(t, model.StorageItemBagEquipment, 1, "helm0001")
		cape := f.put(t, model.StorageItemBagEquipment, 2, "cape0001")

		require.NoError(t, f.changeEquip(f.owner, bagOnly,
			equipTo("helm0001", model.EquipTypePerformance, 3),
			equipTo("cape0001", model.EquipTypeVisual, 8),
		))

		last := f.dispatcher.out[len(f.dispatcher.out)-1]
		assert.Equal(t, "all", last.target)
		assert.Equal(t, &serverpackets.ChangeCharacterEquipNtc{
			CharacterID: 1,
			Performance: []model.EquippedItem{{EquipType: model.EquipTypePerformance, EquipSlot: 3, Item: helm}},
			Visual:      []model.EquippedItem{{EquipType: model.EquipTypeVisual, EquipSlot: 8, Item: cape}},
		}, last.pkt)
	})

	t.Run("pawn", func(t *testing.T) {
		f := newFixture(t)
		helm := f.put(t, model.StorageItemBagEquipment, 1, "helm0001")

		err := f.engine.ChangeEquip(context.Background(), f.req, f.pawn,
			[]equip.EquipChange{equipTo("helm0001", model.EquipTypePerformance, 3)},
			serverpackets.ItemNoticeChangePawnEquip, bagOnly, nil)
		require.NoError(t, err)

		assert.Equal(t, helm, f.owner.Storages().Get(model.StoragePawnEquipment).Slot(3).Item)
		assert.Equal(t, helm, f.pawn.EquipmentTemplate().EquipItem(model.JobWarrior, model.EquipTypePerformance, 3))
		assert.Nil(t, f.owner.EquipmentTemplate().EquipItem(model.JobFighter, model.EquipTypePerformance, 3))
		assert.Equal(t, model.ItemUID("helm0001"),
			f.persistence.equip[equipKey{110, model.JobWarrior, model.EquipTypePerformance, 3}])

		last := f.dispatcher.out[len(f.dispatcher.out)-1]
		assert.Equal(t, "all", last.target)
		assert.Equal(t, &serverpackets.ChangePawnEquipNtc{
			CharacterID: 1,
			PawnID:      10,
			Performance: []model.EquippedItem{{EquipType: model.EquipTypePerformance, EquipSlot: 3, Item: helm}},
			Visual:      []model.EquippedItem{},
		}, last.pkt)
	})
}

func TestChangeEquip_ForeignPawnRejected(t *testing.T) {
	f := newFixture(t)
	stranger, err := model.NewCharacter(2, 200, "Stranger", model.JobHunter, model.NewDefaultStorages())
	require.NoError(t, err)
	theirPawn, err := stranger.AddPawn(20, 220, "Theirs", model.JobHunter)
	require.NoError(t, err)

	err = f.changeEquip(theirPawn, bagOnly, unequipFrom(model.EquipTypePerformance, 1))
	assert.ErrorIs(t, err, equip.ErrInvalidInput)
}

func TestChangeEquip_SnapshotSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	sink := mocks.NewMockSnapshotSink(ctrl)
	f.engine.SetSnapshotSink(sink)
	f.put(t, model.StorageItemBagEquipment, 1, "sword001")

	sink.EXPECT().
		StoreSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s model.EquipSnapshot) error {
			assert.Equal(t, model.EntityKindCharacter, s.Kind)
			assert.Len(t, s.Performance, 1)
			return assert.AnError
		})

	// ошибка кэша не ломает batch
	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("sword001", model.EquipTypePerformance, 1)))
}

// --- dispatch targets ---

func TestDispatchTargets_DifferByOperation(t *testing.T) {
	t.Run("job items go to party", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(t)
		dispatcher := mocks.NewMockDispatcher(ctrl)
		engine := equip.NewEngine(f.persistence, f.storage, dispatcher)
		f.put(t, model.StorageItemBagJob, 1, "lant0001")

		dispatcher.EXPECT().SendToRequester(f.req, gomock.Any()).Return(nil)
		dispatcher.EXPECT().SendToParty(f.req, gomock.Any()).Return(nil)
		dispatcher.EXPECT().SendToAllConnected(gomock.Any()).Times(0)

		require.NoError(t, engine.ChangeJobItems(context.Background(), f.req, f.owner,
			[]equip.JobItemChange{{Slot: 1, Item: equip.SomeUID("lant0001")}}))
	})

	t.Run("regular equip goes to everyone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(t)
		dispatcher := mocks.NewMockDispatcher(ctrl)
		engine := equip.NewEngine(f.persistence, f.storage, dispatcher)
		f.put(t, model.StorageItemBagEquipment, 1, "sword001")

		gomock.InOrder(
			dispatcher.EXPECT().SendToRequester(f.req, gomock.AssignableToTypeOf(&serverpackets.ItemUpdateCharacterNtc{})).Return(nil),
			dispatcher.EXPECT().SendToAllConnected(gomock.AssignableToTypeOf(&serverpackets.ChangeCharacterEquipNtc{})).Return(nil),
		)
		dispatcher.EXPECT().SendToParty(gomock.Any(), gomock.Any()).Times(0)

		require.NoError(t, engine.ChangeEquip(context.Background(), f.req, f.owner,
			[]equip.EquipChange{equipTo("sword001", model.EquipTypePerformance, 1)},
			serverpackets.ItemNoticeChangeEquip, bagOnly, nil))
	})
}

// --- job items ---

func TestChangeJobItems_SetAndClear(t *testing.T) {
	f := newFixture(t)
	lantern := f.put(t, model.StorageItemBagJob, 1, "lant0001")
	charm := f.put(t, model.StorageItemBagJob, 2, "chrm0001")

	err := f.engine.ChangeJobItems(context.Background(), f.req, f.owner, []equip.JobItemChange{
		{Slot: 2, Item: equip.SomeUID("chrm0001")},
		{Slot: 1, Item: equip.SomeUID("lant0001")},
	})
	require.NoError(t, err)

	want := []model.JobItemEntry{{EquipSlot: 1, Item: lantern}, {EquipSlot: 2, Item: charm}}
	assert.Equal(t, want, f.owner.EquipmentTemplate().JobItems(model.JobFighter))
	assert.Len(t, f.persistence.jobItems, 2)

	require.Len(t, f.dispatcher.out, 2)
	assert.Equal(t, sent{"requester", &serverpackets.ChangeCharacterEquipJobItemRes{JobItems: want}}, f.dispatcher.out[0])
	assert.Equal(t, sent{"party", &serverpackets.ChangeCharacterEquipJobItemNtc{CharacterID: 1, JobItems: want}}, f.dispatcher.out[1])

	f.dispatcher.out = nil
	require.NoError(t, f.engine.ChangeJobItems(context.Background(), f.req, f.owner, []equip.JobItemChange{
		{Slot: 1, Item: equip.NoUID()},
	}))
	assert.Equal(t, []model.JobItemEntry{{EquipSlot: 2, Item: charm}}, f.owner.EquipmentTemplate().JobItems(model.JobFighter))
	assert.Equal(t, map[jobItemKey]model.ItemUID{{100, model.JobFighter, 2}: "chrm0001"}, f.persistence.jobItems)
}

func TestChangeJobItems_Pawn(t *testing.T) {
	f := newFixture(t)
	lantern := f.put(t, model.StorageItemBagJob, 1, "lant0001")

	require.NoError(t, f.engine.ChangeJobItems(context.Background(), f.req, f.pawn, []equip.JobItemChange{
		{Slot: 1, Item: equip.SomeUID("lant0001")},
	}))

	want := []model.JobItemEntry{{EquipSlot: 1, Item: lantern}}
	require.Len(t, f.dispatcher.out, 2)
	assert.Equal(t, &serverpackets.ChangePawnEquipJobItemRes{PawnID: 10, JobItems: want}, f.dispatcher.out[0].pkt)
	assert.Equal(t, &serverpackets.ChangePawnEquipJobItemNtc{CharacterID: 1, PawnID: 10, JobItems: want}, f.dispatcher.out[1].pkt)
	assert.Equal(t, model.ItemUID("lant0001"), f.persistence.jobItems[jobItemKey{110, model.JobWarrior, 1}])
	assert.Empty(t, f.owner.EquipmentTemplate().JobItems(model.JobFighter))
}

func TestChangeJobItems_UnknownItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	persistence := mocks.NewMockPersistence(ctrl)
	dispatcher := mocks.NewMockDispatcher(ctrl)
	engine := equip.NewEngine(persistence, f.storage, dispatcher)

	persistence.EXPECT().
		SelectItemByUID(gomock.Any(), model.ItemUID("missing1")).
		Return(nil, fmt.Errorf("item missing1: %w", equip.ErrNotFound))

	err := engine.ChangeJobItems(context.Background(), f.req, f.owner, []equip.JobItemChange{
		{Slot: 1, Item: equip.SomeUID("missing1")},
	})
	assert.ErrorIs(t, err, equip.ErrNotFound)
}

func TestChangeJobItems_PersistenceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(t)
	persistence := mocks.NewMockPersistence(ctrl)
	engine := equip.NewEngine(persistence, f.storage, mocks.NewMockDispatcher(ctrl))

	persistence.EXPECT().
		DeleteEquipJobItem(gomock.Any(), uint32(100), model.JobFighter, uint8(3)).
		Return(assert.AnError)

	err := engine.ChangeJobItems(context.Background(), f.req, f.owner, []equip.JobItemChange{
		{Slot: 3, Item: equip.NoUID()},
	})
	assert.ErrorIs(t, err, assert.AnError)
}

// --- lookup by identity ---

func TestLocateEquippedItem(t *testing.T) {
	f := newFixture(t)
	f.put(t, model.StorageItemBagEquipment, 1, "helm0001")
	f.put(t, model.StorageItemBagEquipment, 2, "cape0001")
	require.NoError(t, f.engine.ChangeEquip(context.Background(), f.req, f.pawn, []equip.EquipChange{
		equipTo("helm0001", model.EquipTypePerformance, 6),
		equipTo("cape0001", model.EquipTypeVisual, 15),
	}, serverpackets.ItemNoticeChangePawnEquip, bagOnly, nil))

	equipType, slot, err := equip.LocateEquippedItem(f.pawn, "cape0001")
	require.NoError(t, err)
	assert.Equal(t, model.EquipTypeVisual, equipType)
	assert.Equal(t, uint8(15), slot)

	equipType, slot, err = equip.LocateEquippedItem(f.pawn, "helm0001")
	require.NoError(t, err)
	assert.Equal(t, model.EquipTypePerformance, equipType)
	assert.Equal(t, uint8(6), slot)

	_, _, err = equip.LocateEquippedItem(f.owner, "helm0001")
	assert.ErrorIs(t, err, equip.ErrNotFound, "pawn gear is not in the character window")
}

// --- metrics ---

func TestEngine_RecordsBatchMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(mp)
	require.NoError(t, err)

	f := newFixture(t)
	f.engine.SetMetrics(metrics)
	f.put(t, model.StorageItemBagEquipment, 1, "sword001")

	require.NoError(t, f.changeEquip(f.owner, bagOnly, equipTo("sword001", model.EquipTypePerformance, 1)))
	require.Error(t, f.changeEquip(f.pawn, bagOnly, unequipFrom(model.EquipTypeVisual, 1)))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	got := map[attribute.Distinct]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "equip.errors" && m.Name != "equip.batches" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				got[dp.Attributes.Equivalent()] += dp.Value
			}
		}
	}

	okBatch := attribute.NewSet(attribute.String("entity", "character"), attribute.String("op", "equip"), attribute.String("status", "ok"))
	failedBatch := attribute.NewSet(attribute.String("entity", "pawn"), attribute.String("op", "equip"), attribute.String("status", "error"))
	notFound := attribute.NewSet(attribute.String("kind", "not_found"), attribute.String("op", "equip"))
	assert.Equal(t, int64(1), got[okBatch.Equivalent()])
	assert.Equal(t, int64(1), got[failedBatch.Equivalent()])
	assert.Equal(t, int64(1), got[notFound.Equivalent()])
}

func maps[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
