package model

import (
	"fmt"
	"sync"
)

// MaxPartyMembers is the maximum number of characters in one party.
const MaxPartyMembers = 4

// Party represents a group of characters playing together.
// Thread-safe: all methods acquire internal mutex.
type Party struct {
	mu      sync.RWMutex
	id      uint32
	leader  *Character
	members []*Character // leader всегда первый элемент
}

// NewParty creates a party with the given leader.
// Leader is automatically added as first member.
func NewParty(id uint32, leader *Character) *Party {
	p := &Party{
		id:      id,
		leader:  leader,
		members: make([]*Character, 0, MaxPartyMembers),
	}
	p.members = append(p.members, leader)
	return p
}

// ID returns immutable party ID.
func (p *Party) ID() uint32 {
	return p.id
}

// Leader returns current party leader.
func (p *Party) Leader() *Character {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.leader
}

// Members returns a snapshot copy of party members slice.
// Safe to iterate without holding the lock.
func (p *Party) Members() []*Character {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]*Character, len(p.members))
	copy(result, p.members)
	return result
}

// MemberCount returns the number of members in party.
func (p *Party) MemberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.members)
}

// IsMember checks if a character with given id is in this party.
func (p *Party) IsMember(characterID uint32) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, m := range p.members {
		if m.CharacterID() == characterID {
			return true
		}
	}
	return false
}

// AddMember adds a character to the party.
// Returns error if party is full or character is already a member.
func (p *Party) AddMember(c *Character) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.members) >= MaxPartyMembers {
		return fmt.Errorf("party full (max %d members)", MaxPartyMembers)
	}

	for _, m := range p.members {
		if m.CharacterID() == c.CharacterID() {
			return fmt.Errorf("character %s already in party", c.Name())
		}
	}

	p.members = append(p.members, c)
	return nil
}

// RemoveMember removes a character from the party.
// If the leader leaves, the next member becomes leader.
// Returns true if the party should be disbanded (fewer than 2 members remaining).
func (p *Party) RemoveMember(characterID uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := -1
	for i, m := range p.members {
		if m.CharacterID() == characterID {
			idx = i
			break
		}
	}

	if idx < 0 {
		return false
	}

	p.members = append(p.members[:idx], p.members[idx+1:]...)

	// Лидер ушел -- передаем лидерство следующему
	if p.leader.CharacterID() == characterID && len(p.members) > 0 {
		p.leader = p.members[0]
	}

	return len(p.members) < 2
}
