package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lodestone-labs/relnav/internal/core/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type toolNameKey struct{}

// WithToolName returns a context carrying the calling tool name for audit
// logging.
func WithToolName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, toolNameKey{}, name)
}

func toolNameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(toolNameKey{}).(string); ok {
		return v
	}
	return ""
}

// StatementValidator gates user-written SQL before execution.
type StatementValidator interface {
	Validate(sql string) error
}

// QueryService runs user-written passthrough queries: validation (domain),
// execution (infrastructure), audit, and metrics. Drill-down lookups do not
// go through here; the Navigator issues those itself.
type QueryService struct {
	validator StatementValidator
	executor  port.LookupExecutor
	auditor   port.LookupAuditor
	logger    *slog.Logger
	tracer    trace.Tracer
	inst      port.Instrumentation
}

func NewQueryService(validator StatementValidator, executor port.LookupExecutor, auditor port.LookupAuditor, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *QueryService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if inst == nil {
		inst = port.NoopInstrumentation{}
	}
	return &QueryService{
		validator: validator,
		executor:  executor,
		auditor:   auditor,
		logger:    logger,
		tracer:    tracer,
		inst:      inst,
	}
}

// Execute validates the SQL statement and, if allowed, delegates to the
// executor.
func (s *QueryService) Execute(ctx context.Context, sql string) (*port.TabularResult, error) {
	ctx, span := s.tracer.Start(ctx, "QueryService.Execute",
		trace.WithAttributes(
			attribute.String("db.operation.name", "query"),
			attribute.String("db.statement", sql),
		),
	)
	defer span.End()

	if err := s.validator.Validate(sql); err != nil {
		s.logger.WarnContext(ctx, "query validation rejected",
			slog.String("db.statement", sql),
			slog.String("error.type", "validation_error"),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.inst.IncrementLookupErrors(ctx)
		return nil, fmt.Errorf("validation: %w", err)
	}

	start := time.Now()
	result, err := s.executor.Execute(ctx, sql)
	durationMS := time.Since(start).Milliseconds()

	s.inst.RecordLookupDuration(ctx, float64(durationMS))

	rows := 0
	if result != nil {
		rows = result.RowCount
	}
	if s.auditor != nil {
		s.auditor.Record(ctx, port.LookupEntry{
			Tool:         toolNameFromCtx(ctx),
			SQL:          sql,
			RowsReturned: rows,
			DurationMS:   durationMS,
			Err:          err,
		})
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.inst.IncrementLookupErrors(ctx)
		return nil, err
	}

	s.inst.IncrementLookupCount(ctx)
	span.SetAttributes(attribute.Int("db.response.rows", rows))

	return result, nil
}
