package model

import (
	"errors"
	"fmt"
	"sync"
)

// ErrCharacterNotFound is returned by loaders when no character has the id.
var ErrCharacterNotFound = errors.New("character not found")

// Character — игровой персонаж. Владеет storages (в том числе equipment
// storage своих pawn) и пулом pawn.
type Character struct {
	characterID uint32
	commonID    uint32
	name        string

	template  *EquipmentTemplate
	equipment *Equipment
	storages  *Storages

	// mu защищает job, pawns, party
	mu    sync.RWMutex
	job   JobID
	pawns []*Pawn
	party *Party
}

// NewCharacter создаёт персонажа поверх готовых storages.
// Storages должны содержать StorageCharacterEquipment.
func NewCharacter(characterID, commonID uint32, name string, job JobID, storages *Storages) (*Character, error) {
	if characterID == 0 {
		return nil, fmt.Errorf("character id cannot be zero")
	}
	if storages == nil {
		return nil, fmt.Errorf("storages cannot be nil")
	}
	equipment, err := NewEquipment(storages.Get(StorageCharacterEquipment), 0)
	if err != nil {
		return nil, fmt.Errorf("character %d equipment: %w", characterID, err)
	}
	return &Character{
		characterID: characterID,
		commonID:    commonID,
		name:        name,
		job:         job,
		template:    NewEquipmentTemplate(),
		equipment:   equipment,
		storages:    storages,
	}, nil
}

func (c *Character) sealedEntity() {}

// Kind implements Entity.
func (c *Character) Kind() EntityKind { return EntityKindCharacter }

// CommonID implements Entity.
func (c *Character) CommonID() uint32 { return c.commonID }

// CharacterID implements Entity.
func (c *Character) CharacterID() uint32 { return c.characterID }

// PawnID implements Entity. Always 0 for characters.
func (c *Character) PawnID() uint32 { return 0 }

// Name returns the character name.
func (c *Character) Name() string { return c.name }

// EquipmentTemplate implements Entity.
func (c *Character) EquipmentTemplate() *EquipmentTemplate { return c.template }

// Equipment implements Entity.
func (c *Character) Equipment() *Equipment { return c.equipment }

// Storages returns every storage the character owns.
func (c *Character) Storages() *Storages { return c.storages }

// Job implements Entity.
func (c *Character) Job() JobID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.job
}

// SetJob changes the current job. Other jobs' templates are kept.
func (c *Character) SetJob(job JobID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.job = job
}

// AddPawn appends a pawn to the character's pool.
// The pawn's equipment window is placed at its pool index.
func (c *Character) AddPawn(pawnID, commonID uint32, name string, job JobID) (*Pawn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.pawns {
		if p.pawnID == pawnID {
			return nil, fmt.Errorf("pawn %d already owned by character %d", pawnID, c.characterID)
		}
	}

	index := len(c.pawns)
	equipment, err := NewEquipment(c.storages.Get(StoragePawnEquipment), uint16(index*EquipWindowSize))
	if err != nil {
		return nil, fmt.Errorf("pawn %d equipment: %w", pawnID, err)
	}
	pawn := &Pawn{
		pawnID:      pawnID,
		commonID:    commonID,
		characterID: c.characterID,
		name:        name,
		job:         job,
		template:    NewEquipmentTemplate(),
		equipment:   equipment,
	}
	c.pawns = append(c.pawns, pawn)
	return pawn, nil
}

// Pawns returns a snapshot of the pawn pool in slot order.
func (c *Character) Pawns() []*Pawn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*Pawn, len(c.pawns))
	copy(result, c.pawns)
	return result
}

// Pawn returns an owned pawn by id (nil if not found).
func (c *Character) Pawn(pawnID uint32) *Pawn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.pawns {
		if p.pawnID == pawnID {
			return p
		}
	}
	return nil
}

// PawnAt returns the pawn at 1-based pool position (nil if out of range).
func (c *Character) PawnAt(position int) *Pawn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if position < 1 || position > len(c.pawns) {
		return nil
	}
	return c.pawns[position-1]
}

// Party returns the character's party (nil if solo).
func (c *Character) Party() *Party {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.party
}

// SetParty sets or clears (nil) the party.
func (c *Character) SetParty(p *Party) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.party = p
}

// Pawn — AI-компаньон персонажа. Экипировка pawn лежит в PawnEquipment
// storage владельца.
type Pawn struct {
	pawnID      uint32
	commonID    uint32
	characterID uint32
	name        string

	template  *EquipmentTemplate
	equipment *Equipment

	mu  sync.RWMutex
	job JobID
}

func (p *Pawn) sealedEntity() {}

// Kind implements Entity.
func (p *Pawn) Kind() EntityKind { return EntityKindPawn }

// CommonID implements Entity.
func (p *Pawn) CommonID() uint32 { return p.commonID }

// CharacterID implements Entity. Returns the owning character id.
func (p *Pawn) CharacterID() uint32 { return p.characterID }

// PawnID implements Entity.
func (p *Pawn) PawnID() uint32 { return p.pawnID }

// Name returns the pawn name.
func (p *Pawn) Name() string { return p.name }

// EquipmentTemplate implements Entity.
func (p *Pawn) EquipmentTemplate() *EquipmentTemplate { return p.template }

// Equipment implements Entity.
func (p *Pawn) Equipment() *Equipment { return p.equipment }

// Job implements Entity.
func (p *Pawn) Job() JobID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.job
}

// SetJob changes the pawn's current job.
func (p *Pawn) SetJob(job JobID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.job = job
}
