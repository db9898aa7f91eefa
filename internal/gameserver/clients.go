package gameserver

import (
	"sync"
)

// ClientManager manages all connected game clients.
// Provides registration, lookup by character and iteration.
// Thread-safe for concurrent access.
type ClientManager struct {
	mu      sync.RWMutex
	clients map[*GameClient]struct{}

	// byCharacter maps characterID to the client that entered with it.
	// Synced in BindCharacter/Unregister.
	byCharacter map[uint32]*GameClient
}

// NewClientManager creates a new client manager.
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:     make(map[*GameClient]struct{}, 256),
		byCharacter: make(map[uint32]*GameClient, 256),
	}
}

// Register adds a client to the manager. Called on accept.
func (cm *ClientManager) Register(client *GameClient) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.clients[client] = struct{}{}
}

// Unregister removes a client and its character binding.
// Called when the connection closes.
func (cm *ClientManager) Unregister(client *GameClient) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	delete(cm.clients, client)
	if c := client.Character(); c != nil && cm.byCharacter[c.CharacterID()] == client {
		delete(cm.byCharacter, c.CharacterID())
	}
}

// BindCharacter indexes client by characterID.
// Returns false if another connection already holds that character.
func (cm *ClientManager) BindCharacter(characterID uint32, client *GameClient) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if other, ok := cm.byCharacter[characterID]; ok && other != client {
		return false
	}
	cm.byCharacter[characterID] = client
	return true
}

// ClientByCharacter returns the client for characterID.
// Returns nil if not found.
func (cm *ClientManager) ClientByCharacter(characterID uint32) *GameClient {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.byCharacter[characterID]
}

// Count returns total number of connected clients.
func (cm *ClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// InGameCount returns number of clients with a bound character.
func (cm *ClientManager) InGameCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.byCharacter)
}

// ForEachClient iterates over all connected clients.
// If fn returns false, iteration stops.
// fn must not call Register/Unregister.
func (cm *ClientManager) ForEachClient(fn func(*GameClient) bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	for client := range cm.clients {
		if !fn(client) {
			return
		}
	}
}

// InGameClients returns a snapshot of clients with a bound character.
// Used by broadcasts that must not hold the lock while sending.
func (cm *ClientManager) InGameClients() []*GameClient {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	out := make([]*GameClient, 0, len(cm.byCharacter))
	for _, client := range cm.byCharacter {
		out = append(out, client)
	}
	return out
}
