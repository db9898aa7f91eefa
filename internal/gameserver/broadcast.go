package gameserver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/ddongo/internal/game/equip"
	"github.com/udisondev/ddongo/internal/gameserver/serverpackets"
	"github.com/udisondev/ddongo/internal/model"
)

// Dispatcher delivers equip packets to connected clients.
// Requester delivery failures are returned; fan-out failures are logged and
// skipped so one slow client does not block the rest.
type Dispatcher struct {
	clients *ClientManager
}

var _ equip.Dispatcher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher over the client registry.
func NewDispatcher(clients *ClientManager) *Dispatcher {
	return &Dispatcher{clients: clients}
}

// SendToRequester sends pkt to the connection that issued the request.
func (d *Dispatcher) SendToRequester(r equip.Requester, pkt serverpackets.Packet) error {
	client, err := d.requesterClient(r)
	if err != nil {
		return err
	}
	return client.SendPacket(pkt)
}

// SendToParty sends pkt to every party member of the requester's character,
// or only to the requester when the character is not in a party.
func (d *Dispatcher) SendToParty(r equip.Requester, pkt serverpackets.Packet) error {
	c := r.Character()
	if c == nil {
		return fmt.Errorf("requester has no character")
	}
	party := c.Party()
	if party == nil {
		return d.SendToRequester(r, pkt)
	}

	sent := 0
	for _, member := range party.Members() {
		client := d.clientFor(r, member)
		if client == nil {
			continue // offline
		}
		if err := client.SendPacket(pkt); err != nil {
			slog.Warn("failed to send to party member",
				"partyID", party.ID(),
				"characterID", member.CharacterID(),
				"packet", fmt.Sprintf("%T", pkt),
				"error", err)
			continue
		}
		sent++
	}
	slog.Debug("party broadcast", "partyID", party.ID(), "packet", fmt.Sprintf("%T", pkt), "sent", sent)
	return nil
}

// SendToAllConnected sends pkt to every client that has entered the world.
func (d *Dispatcher) SendToAllConnected(pkt serverpackets.Packet) error {
	sent := 0
	for _, client := range d.clients.InGameClients() {
		if err := client.SendPacket(pkt); err != nil {
			slog.Warn("failed to broadcast to client",
				"client", client.IP(),
				"packet", fmt.Sprintf("%T", pkt),
				"error", err)
			continue
		}
		sent++
	}
	slog.Debug("global broadcast", "packet", fmt.Sprintf("%T", pkt), "sent", sent)
	return nil
}

// requesterClient resolves the requester's connection. A *GameClient is its
// own connection; other requesters are looked up by character.
func (d *Dispatcher) requesterClient(r equip.Requester) (*GameClient, error) {
	if client, ok := r.(*GameClient); ok {
		return client, nil
	}
	c := r.Character()
	if c == nil {
		return nil, errors.New("requester has no character")
	}
	client := d.clients.ClientByCharacter(c.CharacterID())
	if client == nil {
		return nil, fmt.Errorf("character %d is not connected", c.CharacterID())
	}
	return client, nil
}

func (d *Dispatcher) clientFor(r equip.Requester, member *model.Character) *GameClient {
	if client, ok := r.(*GameClient); ok && r.Character() == member {
		return client
	}
	return d.clients.ClientByCharacter(member.CharacterID())
}
