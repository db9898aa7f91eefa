package equip

import "errors"

var (
	// ErrNotFound — item UID не найден (catalog, storages, equip window).
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput — нарушен контракт запроса (slot < 1, чужой pawn, ...).
	ErrInvalidInput = errors.New("invalid input")
	// ErrStorageFull — ни в одном из destination storages нет свободного слота.
	ErrStorageFull = errors.New("storage full")
)

// errorKind maps an error to a short label for metrics.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrStorageFull):
		return "storage_full"
	default:
		return "internal"
	}
}
