package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/lodestone-labs/relnav"

// Instruments holds pre-created OTel metric instruments.
type Instruments struct {
	LookupCount    metric.Int64Counter
	LookupDuration metric.Float64Histogram
	LookupErrors   metric.Int64Counter
	StaleDrops     metric.Int64Counter
	ToolDuration   metric.Float64Histogram
}

// NewInstruments creates metric instruments from the global MeterProvider.
// Returns nil-safe instruments: if creation fails, noop instruments are used.
func NewInstruments() *Instruments {
	meter := otel.Meter(meterName)
	return newInstrumentsFromMeter(meter)
}

// NoopInstruments returns instruments that record nothing.
func NoopInstruments() *Instruments {
	meter := noop.NewMeterProvider().Meter(meterName)
	return newInstrumentsFromMeter(meter)
}

func newInstrumentsFromMeter(meter metric.Meter) *Instruments {
	// OTel SDK returns noop instruments on error; safe to discard.
	lookupCount, _ := meter.Int64Counter("relnav.lookup.count",
		metric.WithDescription("Total number of row lookups executed"),
	)
	lookupDuration, _ := meter.Float64Histogram("relnav.lookup.duration",
		metric.WithDescription("Row lookup execution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	lookupErrors, _ := meter.Int64Counter("relnav.lookup.errors",
		metric.WithDescription("Total number of failed row lookups"),
	)
	staleDrops, _ := meter.Int64Counter("relnav.lookup.stale_drops",
		metric.WithDescription("Lookups discarded because a newer navigation superseded them"),
	)
	toolDuration, _ := meter.Float64Histogram("relnav.tool.duration",
		metric.WithDescription("MCP tool call duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return &Instruments{
		LookupCount:    lookupCount,
		LookupDuration: lookupDuration,
		LookupErrors:   lookupErrors,
		StaleDrops:     staleDrops,
		ToolDuration:   toolDuration,
	}
}

func (i *Instruments) RecordLookupDuration(ctx context.Context, ms float64) {
	i.LookupDuration.Record(ctx, ms)
}

func (i *Instruments) IncrementLookupCount(ctx context.Context) {
	i.LookupCount.Add(ctx, 1)
}

func (i *Instruments) IncrementLookupErrors(ctx context.Context) {
	i.LookupErrors.Add(ctx, 1)
}

func (i *Instruments) IncrementStaleDrops(ctx context.Context) {
	i.StaleDrops.Add(ctx, 1)
}

func (i *Instruments) RecordToolDuration(ctx context.Context, ms float64) {
	i.ToolDuration.Record(ctx, ms)
}
