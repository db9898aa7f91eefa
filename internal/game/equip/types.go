package equip

import (
	"context"

	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

//go:generate mockgen -destination=mocks/mock_equip.go -package=mocks github.com/udisondev/ddongo/internal/game/equip Dispatcher,Persistence,Requester,SnapshotSink,Storage

// OptionalUID is an item UID that may be absent. Absent means unequip.
type OptionalUID struct {
	UID   model.ItemUID
	Valid bool
}

// SomeUID wraps a present UID.
func SomeUID(uid model.ItemUID) OptionalUID {
	return OptionalUID{UID: uid, Valid: true}
}

// NoUID is the unequip marker.
func NoUID() OptionalUID {
	return OptionalUID{}
}

// JobItemChange — одна запись job-item batch.
type JobItemChange struct {
	Slot uint8
	Item OptionalUID
}

// EquipChange — одна запись regular-equip batch.
type EquipChange struct {
	Item         OptionalUID
	EquipType    model.EquipType
	CategorySlot uint8
}

// Location is where an item currently sits.
type Location struct {
	StorageType model.StorageType
	SlotNo      uint16
	Item        *model.Item
	Num         uint32
}

// Persistence mirrors template changes into the record store.
// commonID is the entity's CommonID.
type Persistence interface {
	DeleteEquipItem(ctx context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8) error
	ReplaceEquipItem(ctx context.Context, commonID uint32, job model.JobID, equipType model.EquipType, slot uint8, uid model.ItemUID) error
	DeleteEquipJobItem(ctx context.Context, commonID uint32, job model.JobID, slot uint8) error
	ReplaceEquipJobItem(ctx context.Context, commonID uint32, job model.JobID, slot uint8, uid model.ItemUID) error
	// SelectItemByUID returns ErrNotFound (wrapped) when the item does not exist.
	SelectItemByUID(ctx context.Context, uid model.ItemUID) (*model.Item, error)
}

// Storage moves items between the owner's storages.
type Storage interface {
	// FindItemLocation searches candidates in order. ErrNotFound if absent.
	FindItemLocation(owner *model.Character, uid model.ItemUID, candidates []model.StorageType) (Location, error)
	// MoveItem moves num units; toSlot 0 picks the first free slot.
	// Returns one delta per touched slot.
	MoveItem(ctx context.Context, owner *model.Character, from model.StorageType, fromSlot uint16, num uint32, to model.StorageType, toSlot uint16) ([]model.ItemDelta, error)
	// FirstFreeDestination returns the first candidate with a free slot.
	// ErrStorageFull if every candidate is full.
	FirstFreeDestination(owner *model.Character, candidates []model.StorageType) (model.StorageType, error)
}

// Requester is the connection that issued a batch.
type Requester interface {
	Character() *model.Character
}

// Dispatcher delivers server packets.
type Dispatcher interface {
	SendToRequester(r Requester, pkt serverpackets.Packet) error
	// SendToParty sends to every member of the requester's party, or to the
	// requester alone when not in a party.
	SendToParty(r Requester, pkt serverpackets.Packet) error
	SendToAllConnected(pkt serverpackets.Packet) error
}

// SnapshotSink receives the equip snapshot after every broadcast.
type SnapshotSink interface {
	StoreSnapshot(ctx context.Context, s model.EquipSnapshot) error
}
