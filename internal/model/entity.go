package model

// EntityKind identifies which of the two equip targets an Entity is.
type EntityKind uint8

const (
	EntityKindCharacter EntityKind = 1
	EntityKindPawn      EntityKind = 2
)

// String returns human-readable entity kind.
func (k EntityKind) String() string {
	switch k {
	case EntityKindCharacter:
		return "Character"
	case EntityKindPawn:
		return "Pawn"
	default:
		return "Unknown"
	}
}

// Entity — цель equip операции: Character или Pawn.
// Интерфейс закрыт (unexported метод), других реализаций нет.
type Entity interface {
	Kind() EntityKind
	// CommonID — ключ persisted equip записей, общий для персонажей и pawn.
	CommonID() uint32
	// CharacterID — id персонажа (для pawn — владельца).
	CharacterID() uint32
	// PawnID — 0 для персонажа.
	PawnID() uint32
	Job() JobID
	EquipmentTemplate() *EquipmentTemplate
	Equipment() *Equipment

	sealedEntity()
}

// EntityKey uniquely identifies an entity for locking and caching.
type EntityKey struct {
	Kind EntityKind
	ID   uint32
}

// KeyOf returns the entity's unique key.
func KeyOf(e Entity) EntityKey {
	if e.Kind() == EntityKindPawn {
		return EntityKey{Kind: EntityKindPawn, ID: e.PawnID()}
	}
	return EntityKey{Kind: EntityKindCharacter, ID: e.CharacterID()}
}

// EquipSnapshot — полное состояние экипировки entity для broadcast.
type EquipSnapshot struct {
	Kind        EntityKind
	CharacterID uint32
	PawnID      uint32
	Performance []EquippedItem
	Visual      []EquippedItem
}

// SnapshotOf reads the current equipment window of e.
func SnapshotOf(e Entity) EquipSnapshot {
	eq := e.Equipment()
	return EquipSnapshot{
		Kind:        e.Kind(),
		CharacterID: e.CharacterID(),
		PawnID:      e.PawnID(),
		Performance: eq.Items(EquipTypePerformance),
		Visual:      eq.Items(EquipTypeVisual),
	}
}
