package gameserver

import (
	"slices"
	"sync"

	"github.com/udisondev/ddongo/internal/model"
)

// EntityLocks serializes equip batches per entity. A batch locks its target
// and the owning character: pawn and character batches share the owner's
// storages.
type EntityLocks struct {
	mu    sync.Mutex
	locks map[model.EntityKey]*entityLock
}

type entityLock struct {
	mu   sync.Mutex
	refs int
}

// NewEntityLocks creates an empty lock table.
func NewEntityLocks() *EntityLocks {
	return &EntityLocks{locks: make(map[model.EntityKey]*entityLock)}
}

// Lock blocks until target and its owner are held. Returns the unlock func.
// Keys are taken in sorted order so overlapping batches cannot deadlock.
func (l *EntityLocks) Lock(target model.Entity) (unlock func()) {
	keys := lockKeys(target)

	held := make([]*entityLock, 0, len(keys))
	for _, key := range keys {
		el := l.acquire(key)
		el.mu.Lock()
		held = append(held, el)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(keys[i])
		}
	}
}

// Held returns the number of entities currently locked or awaited.
func (l *EntityLocks) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *EntityLocks) acquire(key model.EntityKey) *entityLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	el, ok := l.locks[key]
	if !ok {
		el = &entityLock{}
		l.locks[key] = el
	}
	el.refs++
	return el
}

func (l *EntityLocks) release(key model.EntityKey) {
	l.mu.Lock()
	defer l.mu.Unlock()
	el := l.locks[key]
	el.refs--
	if el.refs == 0 {
		delete(l.locks, key)
	}
}

func lockKeys(target model.Entity) []model.EntityKey {
	owner := model.EntityKey{Kind: model.EntityKindCharacter, ID: target.CharacterID()}
	self := model.KeyOf(target)
	if self == owner {
		return []model.EntityKey{owner}
	}
	keys := []model.EntityKey{owner, self}
	slices.SortFunc(keys, func(a, b model.EntityKey) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return keys
}
