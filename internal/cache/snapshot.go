// Package cache keeps the latest equip snapshot of every online entity in
// Redis for readers outside the game process. The game server itself always
// sends gear from memory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/model"
)

const snapshotKeyPrefix = "equip:snapshot:"

// ErrMiss is returned when no snapshot is cached for the entity.
var ErrMiss = errors.New("snapshot not cached")

// SnapshotCache stores equip snapshots as JSON strings.
type SnapshotCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ equip.SnapshotSink = (*SnapshotCache)(nil)

// NewSnapshotCache creates a cache over client. ttl 0 keeps keys forever.
func NewSnapshotCache(client redis.Cmdable, ttl time.Duration) (*SnapshotCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	return &SnapshotCache{client: client, ttl: ttl}, nil
}

// SnapshotKey returns the Redis key of an entity's snapshot,
// e.g. equip:snapshot:pawn:10.
func SnapshotKey(key model.EntityKey) string {
	return fmt.Sprintf("%s%s:%d", snapshotKeyPrefix, strings.ToLower(key.Kind.String()), key.ID)
}

type itemData struct {
	UID    model.ItemUID `json:"uid"`
	ItemID uint32        `json:"item_id"`
	Color  uint8         `json:"color,omitempty"`
	Plus   uint8         `json:"plus,omitempty"`
	Slot   uint8         `json:"slot"`
}

// snapshotData is what gets serialized to Redis.
type snapshotData struct {
	Kind        model.EntityKind `json:"kind"`
	CharacterID uint32           `json:"character_id"`
	PawnID      uint32           `json:"pawn_id,omitempty"`
	Performance []itemData       `json:"performance"`
	Visual      []itemData       `json:"visual"`
}

// StoreSnapshot implements equip.SnapshotSink.
func (c *SnapshotCache) StoreSnapshot(ctx context.Context, s model.EquipSnapshot) error {
	data := snapshotData{
		Kind:        s.Kind,
		CharacterID: s.CharacterID,
		PawnID:      s.PawnID,
		Performance: toItemData(s.Performance),
		Visual:      toItemData(s.Visual),
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	key := SnapshotKey(snapshotEntityKey(s))
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("storing snapshot %s: %w", key, err)
	}
	return nil
}

// LoadSnapshot returns the cached snapshot of key or ErrMiss.
func (c *SnapshotCache) LoadSnapshot(ctx context.Context, key model.EntityKey) (model.EquipSnapshot, error) {
	redisKey := SnapshotKey(key)
	raw, err := c.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.EquipSnapshot{}, fmt.Errorf("%s: %w", redisKey, ErrMiss)
		}
		return model.EquipSnapshot{}, fmt.Errorf("loading snapshot %s: %w", redisKey, err)
	}

	var data snapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return model.EquipSnapshot{}, fmt.Errorf("unmarshaling snapshot %s: %w", redisKey, err)
	}

	performance, err := fromItemData(data.Performance, model.EquipTypePerformance)
	if err != nil {
		return model.EquipSnapshot{}, fmt.Errorf("snapshot %s: %w", redisKey, err)
	}
	visual, err := fromItemData(data.Visual, model.EquipTypeVisual)
	if err != nil {
		return model.EquipSnapshot{}, fmt.Errorf("snapshot %s: %w", redisKey, err)
	}

	return model.EquipSnapshot{
		Kind:        data.Kind,
		CharacterID: data.CharacterID,
		PawnID:      data.PawnID,
		Performance: performance,
		Visual:      visual,
	}, nil
}

// Forget drops the cached snapshots of keys. Missing keys are ignored.
func (c *SnapshotCache) Forget(ctx context.Context, keys ...model.EntityKey) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		redisKeys = append(redisKeys, SnapshotKey(k))
	}
	if err := c.client.Del(ctx, redisKeys...).Err(); err != nil {
		return fmt.Errorf("deleting snapshots: %w", err)
	}
	return nil
}

func snapshotEntityKey(s model.EquipSnapshot) model.EntityKey {
	if s.Kind == model.EntityKindPawn {
		return model.EntityKey{Kind: model.EntityKindPawn, ID: s.PawnID}
	}
	return model.EntityKey{Kind: model.EntityKindCharacter, ID: s.CharacterID}
}

func toItemData(items []model.EquippedItem) []itemData {
	out := make([]itemData, 0, len(items))
	for _, it := range items {
		out = append(out, itemData{
			UID:    it.Item.UID(),
			ItemID: it.Item.ItemID(),
			Color:  it.Item.Color(),
			Plus:   it.Item.PlusValue(),
			Slot:   it.EquipSlot,
		})
	}
	return out
}

func fromItemData(data []itemData, equipType model.EquipType) ([]model.EquippedItem, error) {
	out := make([]model.EquippedItem, 0, len(data))
	for _, d := range data {
		item, err := model.NewItem(d.UID, d.ItemID)
		if err != nil {
			return nil, err
		}
		out = append(out, model.EquippedItem{
			EquipType: equipType,
			EquipSlot: d.Slot,
			Item:      item.WithAppearance(d.Color, d.Plus),
		})
	}
	return out, nil
}
