package gameserver

import (
	"context"
	"log/slog"
)

// OnDisconnection cleans up after a closed connection: the client leaves the
// registry (freeing its character for a new EnterWorld) and cached equip
// snapshots of its character are dropped.
//
// Equip state needs no save here: every batch persists entry by entry.
func OnDisconnection(ctx context.Context, client *GameClient, clients *ClientManager, handler *Handler) {
	clients.Unregister(client)
	client.SetState(ClientStateDisconnected)

	c := client.Character()
	if c == nil {
		// never entered world
		return
	}
	handler.OnDisconnect(ctx, client)

	slog.Info("character left world",
		"characterID", c.CharacterID(),
		"name", c.Name(),
		"client", client.IP())
}
