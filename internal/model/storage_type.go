package model

// StorageType tags a storage container owned by a character.
// Values match the client's storage identifiers.
type StorageType uint8

const (
	StorageItemBagConsumable  StorageType = 1
	StorageItemBagMaterial    StorageType = 2
	StorageItemBagEquipment   StorageType = 3
	StorageItemBagJob         StorageType = 4
	StorageKeyItems           StorageType = 5
	StorageBox                StorageType = 6
	StorageBoxExpansion       StorageType = 7
	StorageCharacterEquipment StorageType = 14
	StoragePawnEquipment      StorageType = 15
)

// Default storage capacities (slots).
const (
	DefaultItemBagSize     = 20
	DefaultJobItemBagSize  = 20
	DefaultKeyItemsSize    = 100
	DefaultStorageBoxSize  = 100
	DefaultMaxPawns        = 2
	CharacterEquipmentSize = EquipWindowSize
	PawnEquipmentSize      = EquipWindowSize * DefaultMaxPawns
)

// EquipmentSources lists storages an item may be equipped from.
var EquipmentSources = []StorageType{
	StorageItemBagEquipment,
	StorageBox,
	StorageBoxExpansion,
}

// String returns human-readable storage name.
func (s StorageType) String() string {
	switch s {
	case StorageItemBagConsumable:
		return "ItemBagConsumable"
	case StorageItemBagMaterial:
		return "ItemBagMaterial"
	case StorageItemBagEquipment:
		return "ItemBagEquipment"
	case StorageItemBagJob:
		return "ItemBagJob"
	case StorageKeyItems:
		return "KeyItems"
	case StorageBox:
		return "StorageBox"
	case StorageBoxExpansion:
		return "StorageBoxExpansion"
	case StorageCharacterEquipment:
		return "CharacterEquipment"
	case StoragePawnEquipment:
		return "PawnEquipment"
	default:
		return "Unknown"
	}
}

// IsEquipment reports whether s holds equipped items rather than carried ones.
func (s StorageType) IsEquipment() bool {
	return s == StorageCharacterEquipment || s == StoragePawnEquipment
}

// defaultStorageSizes is the layout of a freshly created character.
var defaultStorageSizes = map[StorageType]uint16{
	StorageItemBagConsumable:  DefaultItemBagSize,
	StorageItemBagMaterial:    DefaultItemBagSize,
	StorageItemBagEquipment:   DefaultItemBagSize,
	StorageItemBagJob:         DefaultJobItemBagSize,
	StorageKeyItems:           DefaultKeyItemsSize,
	StorageBox:                DefaultStorageBoxSize,
	StorageBoxExpansion:       DefaultStorageBoxSize,
	StorageCharacterEquipment: CharacterEquipmentSize,
	StoragePawnEquipment:      PawnEquipmentSize,
}
