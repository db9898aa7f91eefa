package model

// TotalEquipSlots is the number of slots per equip category (Performance or Visual).
// One entity owns TotalEquipSlots*2 contiguous slots in its equipment storage.
const TotalEquipSlots = 15

// EquipWindowSize is the width of one entity's equipment storage window.
const EquipWindowSize = TotalEquipSlots * 2

// EquipType is the category of an equip slot.
type EquipType uint8

const (
	// EquipTypePerformance — combat-functional gear (weapon, armor, jewelry).
	EquipTypePerformance EquipType = 1
	// EquipTypeVisual — cosmetic overlay shown instead of performance gear.
	EquipTypeVisual EquipType = 2
)

// String returns human-readable equip type name.
func (t EquipType) String() string {
	switch t {
	case EquipTypePerformance:
		return "Performance"
	case EquipTypeVisual:
		return "Visual"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the two known categories.
func (t EquipType) Valid() bool {
	return t == EquipTypePerformance || t == EquipTypeVisual
}

// JobID identifies a vocation. Equipment templates are kept per job.
type JobID uint8

const (
	JobFighter       JobID = 1
	JobSeeker        JobID = 2
	JobHunter        JobID = 3
	JobPriest        JobID = 4
	JobShieldSage    JobID = 5
	JobSorcerer      JobID = 6
	JobWarrior       JobID = 7
	JobElementArcher JobID = 8
	JobAlchemist     JobID = 9
	JobSpiritLancer  JobID = 10
	JobHighScepter   JobID = 11
)

// String returns human-readable job name.
func (j JobID) String() string {
	switch j {
	case JobFighter:
		return "Fighter"
	case JobSeeker:
		return "Seeker"
	case JobHunter:
		return "Hunter"
	case JobPriest:
		return "Priest"
	case JobShieldSage:
		return "ShieldSage"
	case JobSorcerer:
		return "Sorcerer"
	case JobWarrior:
		return "Warrior"
	case JobElementArcher:
		return "ElementArcher"
	case JobAlchemist:
		return "Alchemist"
	case JobSpiritLancer:
		return "SpiritLancer"
	case JobHighScepter:
		return "HighScepter"
	default:
		return "Unknown"
	}
}
