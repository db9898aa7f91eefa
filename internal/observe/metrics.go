// Package observe provides OpenTelemetry metrics and tracing for the game
// server. A Prometheus exporter bridge is installed by [InitProvider] so the
// instruments can be scraped from /metrics. Tests should build [Metrics] with
// [NewMetrics] over a ManualReader-backed provider.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all server metrics.
const meterName = "github.com/udisondev/ddongo"

// Metrics holds all OpenTelemetry metric instruments of the game server.
// All methods are nil-safe: a nil *Metrics records nothing.
type Metrics struct {
	// EquipBatches counts applied equip batches. Attributes: op, entity, status.
	EquipBatches metric.Int64Counter

	// EquipEntries counts change entries processed. Attributes: op, entity.
	EquipEntries metric.Int64Counter

	// EquipErrors counts failed batches by error kind. Attributes: op, kind.
	EquipErrors metric.Int64Counter

	// EquipBatchDuration tracks batch processing time. Attributes: op.
	EquipBatchDuration metric.Float64Histogram

	// ActiveClients tracks connected game clients.
	ActiveClients metric.Int64UpDownCounter
}

// batchBuckets — границы histogram (секунды); batch обычно укладывается в мс.
var batchBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates every instrument using the given [metric.MeterProvider].
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.EquipBatches, err = m.Int64Counter("equip.batches",
		metric.WithDescription("Equip change batches by operation, entity kind and status."),
	); err != nil {
		return nil, err
	}
	if met.EquipEntries, err = m.Int64Counter("equip.entries",
		metric.WithDescription("Equip change entries processed."),
	); err != nil {
		return nil, err
	}
	if met.EquipErrors, err = m.Int64Counter("equip.errors",
		metric.WithDescription("Failed equip batches by error kind."),
	); err != nil {
		return nil, err
	}
	if met.EquipBatchDuration, err = m.Float64Histogram("equip.batch.duration",
		metric.WithDescription("Latency of one equip change batch."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(batchBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ActiveClients, err = m.Int64UpDownCounter("gameserver.clients.active",
		metric.WithDescription("Number of connected game clients."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level instance built from the global
// meter provider on first call.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordEquipBatch records one finished batch.
//
// Parameters:
//   - op: "job_items" или "equip"
//   - entity: "character" или "pawn"
//   - entries: число записей в batch
//   - errKind: "" при успехе, иначе класс ошибки (not_found, invalid_input, ...)
func (m *Metrics) RecordEquipBatch(ctx context.Context, op, entity string, entries int, d time.Duration, errKind string) {
	if m == nil {
		return
	}
	status := "ok"
	if errKind != "" {
		status = "error"
		m.EquipErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("kind", errKind),
		))
	}
	m.EquipBatches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("entity", entity),
		attribute.String("status", status),
	))
	m.EquipEntries.Add(ctx, int64(entries), metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("entity", entity),
	))
	m.EquipBatchDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("op", op)))
}

// ClientConnected increments the active client gauge.
func (m *Metrics) ClientConnected(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveClients.Add(ctx, 1)
}

// ClientDisconnected decrements the active client gauge.
func (m *Metrics) ClientDisconnected(ctx context.Context) {
	if m == nil {
		return
	}
	m.ActiveClients.Add(ctx, -1)
}
