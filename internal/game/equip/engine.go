// Package equip applies equipment change batches for characters and pawns:
// job items, regular (performance and visual) gear, and lookups of equipped
// items by UID.
//
// Batch entries are applied strictly in order. A batch is not transactional:
// entries applied before a failing entry stay applied. Callers serialize
// batches targeting the same entity.
package equip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/udisondev/ddongo/internal/model"
	"github.com/udisondev/ddongo/internal/observe"
)

// Engine applies equip batches. Safe for concurrent use on distinct entities.
type Engine struct {
	persistence Persistence
	storage     Storage
	dispatcher  Dispatcher

	sink    SnapshotSink
	metrics *observe.Metrics
}

// NewEngine creates an engine over its collaborators.
func NewEngine(persistence Persistence, storage Storage, dispatcher Dispatcher) *Engine {
	return &Engine{
		persistence: persistence,
		storage:     storage,
		dispatcher:  dispatcher,
	}
}

// SetSnapshotSink sets where equip snapshots go after the global broadcast.
// Optional.
func (e *Engine) SetSnapshotSink(sink SnapshotSink) {
	e.sink = sink
}

// SetMetrics sets the metrics recorder. Optional.
func (e *Engine) SetMetrics(m *observe.Metrics) {
	e.metrics = m
}

// resolveOwner returns the character whose storages back target.
// A pawn target must belong to the requester.
func resolveOwner(r Requester, target model.Entity) (*model.Character, error) {
	c := r.Character()
	if c == nil {
		return nil, fmt.Errorf("requester has no character: %w", ErrInvalidInput)
	}
	if target.CharacterID() != c.CharacterID() {
		return nil, fmt.Errorf("%s %d is not owned by character %d: %w",
			target.Kind(), model.KeyOf(target).ID, c.CharacterID(), ErrInvalidInput)
	}
	return c, nil
}

func entityLabel(target model.Entity) string {
	if target.Kind() == model.EntityKindPawn {
		return "pawn"
	}
	return "character"
}

// startBatch opens a span for one batch and returns a finish func recording
// span status and metrics.
func (e *Engine) startBatch(ctx context.Context, op string, target model.Entity, entries int) (context.Context, func(err error)) {
	ctx, span := observe.StartSpan(ctx, "equip."+op, trace.WithAttributes(
		attribute.String("entity", entityLabel(target)),
		attribute.Int64("character_id", int64(target.CharacterID())),
		attribute.Int64("pawn_id", int64(target.PawnID())),
		attribute.Int("entries", entries),
	))
	start := time.Now()

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		e.metrics.RecordEquipBatch(ctx, op, entityLabel(target), entries, time.Since(start), errorKind(err))
	}
}

// LocateEquippedItem scans target's equip window for uid and returns its
// category and 1..15 slot.
func LocateEquippedItem(target model.Entity, uid model.ItemUID) (model.EquipType, uint8, error) {
	eq := target.Equipment()
	for local := uint16(1); local <= model.EquipWindowSize; local++ {
		slot := eq.WindowSlot(local)
		if slot.Item != nil && slot.Item.UID() == uid {
			return classifyRelative(local), FoldToLocalCategorySlot(local), nil
		}
	}
	return 0, 0, fmt.Errorf("item %s is not equipped on %s %d: %w",
		uid, target.Kind(), model.KeyOf(target).ID, ErrNotFound)
}

func logAttrs(target model.Entity) []any {
	return []any{
		"entity", entityLabel(target),
		"characterID", target.CharacterID(),
		"pawnID", target.PawnID(),
		"job", target.Job(),
	}
}

// debugEntry logs one applied entry.
func debugEntry(target model.Entity, msg string, args ...any) {
	slog.Debug(msg, append(logAttrs(target), args...)...)
}
