package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/clientpackets"
	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

// CharacterLoader loads a character with pawns, storages and templates.
// Used for dependency injection to keep handler testable.
type CharacterLoader interface {
	// LoadCharacter returns model.ErrCharacterNotFound (wrapped) if absent.
	LoadCharacter(ctx context.Context, characterID uint32) (*model.Character, error)
}

// SnapshotStore is the equip snapshot cache as seen by the handler.
// The handler writes the entering character's snapshots and drops them on
// disconnect; entities held by this process are always sent from memory.
type SnapshotStore interface {
	StoreSnapshot(ctx context.Context, s model.EquipSnapshot) error
	Forget(ctx context.Context, keys ...model.EntityKey) error
}

// Handler processes game client packets.
type Handler struct {
	clientManager *ClientManager
	loader        CharacterLoader
	engine        *equip.Engine
	locks         *EntityLocks

	snapshots SnapshotStore // optional
}

// NewHandler creates a new packet handler for game clients.
func NewHandler(clientManager *ClientManager, loader CharacterLoader, engine *equip.Engine, locks *EntityLocks) *Handler {
	return &Handler{
		clientManager: clientManager,
		loader:        loader,
		engine:        engine,
		locks:         locks,
	}
}

// SetSnapshotStore enables snapshot cache upkeep on EnterWorld and disconnect. Optional.
func (h *Handler) SetSnapshotStore(s SnapshotStore) {
	h.snapshots = s
}

// HandlePacket dispatches a packet payload to the appropriate handler.
// Returns keepOpen=false when the connection must be closed.
// Rejected requests are answered with ErrorRes and keep the connection open.
func (h *Handler) HandlePacket(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	if len(data) == 0 {
		return false, fmt.Errorf("empty packet data")
	}

	opcode := data[0]
	body := data[1:]
	state := client.State()

	switch state {
	case ClientStateConnected:
		switch opcode {
		case clientpackets.OpcodeEnterWorld:
			return h.handleEnterWorld(ctx, client, body)
		default:
			slog.Warn("invalid opcode for state CONNECTED",
				"opcode", fmt.Sprintf("0x%02X", opcode),
				"client", client.IP())
			return false, nil
		}

	case ClientStateInGame:
		switch opcode {
		case clientpackets.OpcodeChangeCharacterEquip:
			return h.handleChangeCharacterEquip(ctx, client, body)
		case clientpackets.OpcodeChangePawnEquip:
			return h.handleChangePawnEquip(ctx, client, body)
		case clientpackets.OpcodeChangeCharacterEquipJobItem:
			return h.handleChangeCharacterEquipJobItem(ctx, client, body)
		case clientpackets.OpcodeChangePawnEquipJobItem:
			return h.handleChangePawnEquipJobItem(ctx, client, body)
		case clientpackets.OpcodeChangeEquipBySlot:
			return h.handleChangeEquipBySlot(ctx, client, body)
		case clientpackets.OpcodeUnequipByUID:
			return h.handleUnequipByUID(ctx, client, body)
		default:
			slog.Warn("unknown packet opcode",
				"opcode", fmt.Sprintf("0x%02X", opcode),
				"state", state,
				"client", client.IP())
			return true, client.SendPacket(&serverpackets.ErrorRes{RequestOpcode: opcode, Code: serverpackets.ErrorCodeUnknownPacket})
		}

	default:
		return false, fmt.Errorf("invalid state: %v", state)
	}
}

// handleEnterWorld processes the EnterWorld packet (opcode 0x01).
// Binds the character to the connection, sends EnterWorldRes and the current
// equipment of every character in the world (the newcomer included).
func (h *Handler) handleEnterWorld(ctx context.Context, client *GameClient, data []byte) (bool, error) {
	pkt, err := clientpackets.ParseEnterWorld(data)
	if err != nil {
		return false, fmt.Errorf("parsing EnterWorld: %w", err)
	}

	c, err := h.loader.LoadCharacter(ctx, pkt.CharacterID)
	if err != nil {
		if errors.Is(err, model.ErrCharacterNotFound) {
			return h.reject(client, clientpackets.OpcodeEnterWorld, err)
		}
		return false, fmt.Errorf("loading character %d: %w", pkt.CharacterID, err)
	}

	if !h.clientManager.BindCharacter(c.CharacterID(), client) {
		slog.Warn("character already in world",
			"characterID", c.CharacterID(),
			"client", client.IP())
		return true, client.SendPacket(&serverpackets.ErrorRes{
			RequestOpcode: clientpackets.OpcodeEnterWorld,
			Code:          serverpackets.ErrorCodeAlreadyInWorld,
		})
	}
	client.SetCharacter(c)
	client.SetState(ClientStateInGame)

	res := &serverpackets.EnterWorldRes{
		CharacterID: c.CharacterID(),
		Name:        c.Name(),
		Job:         c.Job(),
	}
	for _, p := range c.Pawns() {
		res.Pawns = append(res.Pawns, serverpackets.PawnEntry{PawnID: p.PawnID(), Name: p.Name(), Job: p.Job()})
	}
	if err := client.SendPacket(res); err != nil {
		return false, fmt.Errorf("sending EnterWorldRes: %w", err)
	}

	slog.Info("character entered world",
		"characterID", c.CharacterID(),
		"name", c.Name(),
		"pawns", len(res.Pawns),
		"client", client.IP())

	h.refreshSnapshots(ctx, c)
	if err := h.sendWorldEquipment(client); err != nil {
		return false, err
	}
	return true, nil
}

// sendWorldEquipment sends equip snapshots of every in-game character and
// its pawns, read from their live equipment windows.
func (h *Handler) sendWorldEquipment(client *GameClient) error {
	for _, other := range h.clientManager.InGameClients() {
		c := other.Character()
		if c == nil {
			continue
		}
		for _, e := range entitiesOf(c) {
			if err := client.SendPacket(serverpackets.NewEquipNtc(model.SnapshotOf(e))); err != nil {
				return fmt.Errorf("sending equipment of %s %d: %w", e.Kind(), model.KeyOf(e).ID, err)
			}
		}
	}
	return nil
}

// refreshSnapshots overwrites cached snapshots of c and its pawns with the
// state just loaded from the database. Keys left by a crashed session or a
// failed cache write are replaced here.
func (h *Handler) refreshSnapshots(ctx context.Context, c *model.Character) {
	if h.snapshots == nil {
		return
	}
	for _, e := range entitiesOf(c) {
		if err := h.snapshots.StoreSnapshot(ctx, model.SnapshotOf(e)); err != nil {
			slog.Warn("refreshing equip snapshot",
				"entity", e.Kind(),
				"id", model.KeyOf(e).ID,
				"error", err)
		}
	}
}

func entitiesOf(c *model.Character) []model.Entity {
	entities := []model.Entity{c}
	for _, p := range c.Pawns() {
		entities = append(entities, p)
	}
	return entities
}

// OnDisconnect drops cached snapshots of the client's character and pawns.
func (h *Handler) OnDisconnect(ctx context.Context, client *GameClient) {
	c := client.Character()
	if c == nil || h.snapshots == nil {
		return
	}
	var keys []model.EntityKey
	for _, e := range entitiesOf(c) {
		keys = append(keys, model.KeyOf(e))
	}
	if err := h.snapshots.Forget(ctx, keys...); err != nil {
		slog.Warn("forgetting equip snapshots", "characterID", c.CharacterID(), "error", err)
	}
}

// reject answers a failed request with ErrorRes. The connection stays open.
func (h *Handler) reject(client *GameClient, opcode byte, cause error) (bool, error) {
	code := errorCode(cause)
	attrs := []any{
		"opcode", fmt.Sprintf("0x%02X", opcode),
		"code", code,
		"client", client.IP(),
		"error", cause,
	}
	if c := client.Character(); c != nil {
		attrs = append(attrs, "characterID", c.CharacterID())
	}
	if code == serverpackets.ErrorCodeInternal {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}

	if err := client.SendPacket(&serverpackets.ErrorRes{RequestOpcode: opcode, Code: code}); err != nil {
		return false, fmt.Errorf("sending ErrorRes: %w", err)
	}
	return true, nil
}

// errorCode maps a request failure to the ErrorRes code.
func errorCode(err error) uint32 {
	switch {
	case errors.Is(err, equip.ErrNotFound), errors.Is(err, model.ErrCharacterNotFound):
		return serverpackets.ErrorCodeNotFound
	case errors.Is(err, equip.ErrInvalidInput):
		return serverpackets.ErrorCodeInvalidInput
	case errors.Is(err, equip.ErrStorageFull):
		return serverpackets.ErrorCodeStorageFull
	default:
		return serverpackets.ErrorCodeInternal
	}
}
