package port

import "context"

// Instrumentation records application-level metrics.
type Instrumentation interface {
	RecordLookupDuration(ctx context.Context, ms float64)
	IncrementLookupCount(ctx context.Context)
	IncrementLookupErrors(ctx context.Context)
	IncrementStaleDrops(ctx context.Context)
	RecordToolDuration(ctx context.Context, ms float64)
}

// NoopInstrumentation discards all metrics.
type NoopInstrumentation struct{}

func (NoopInstrumentation) RecordLookupDuration(context.Context, float64) {}
func (NoopInstrumentation) IncrementLookupCount(context.Context)         {}
func (NoopInstrumentation) IncrementLookupErrors(context.Context)        {}
func (NoopInstrumentation) IncrementStaleDrops(context.Context)          {}
func (NoopInstrumentation) RecordToolDuration(context.Context, float64)  {}
