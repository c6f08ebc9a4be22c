package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/lodestone-labs/relnav/internal/core/domain"
	"github.com/lodestone-labs/relnav/internal/core/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Status is the lifecycle state of one navigation context. A context is in
// exactly one state; Ready and Failed carry their payload in the Result and
// ErrorMessage fields of the view.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// RootLevel starts a fresh drill-down from the root result set, discarding
// the current stack.
const RootLevel = -1

// closedToken is the sentinel the latest pointer takes after Close. Tokens
// count up from 1 for the lifetime of a Navigator and can never reach it,
// so every in-flight completion compares unequal and becomes a no-op.
const closedToken = math.MaxUint64

// TableSource supplies the current known-table snapshot. It is read-only
// from the navigator's perspective; refreshing is the owner's concern.
type TableSource interface {
	Tables() []domain.TableDescriptor
}

// navContext is one level of drill-down. Once transitioned out of loading
// it is never mutated again.
type navContext struct {
	token  uint64
	table  string
	value  any
	status Status
	result *port.TabularResult
	errMsg string
}

// ContextView is the read-only rendering form of a navigation context.
type ContextView struct {
	TargetTable  string              `json:"target_table"`
	LookupValue  any                 `json:"lookup_value"`
	Status       Status              `json:"status"`
	Result       *port.TabularResult `json:"result,omitempty"`
	ErrorMessage string              `json:"error_message,omitempty"`
}

// Navigator owns one drill-down stack and its latest-wins bookkeeping.
// Any number of lookups may be in flight; a completion is applied only when
// its token still equals the latest issued one, so precedence follows
// issuance order, not completion order. There is no cancellation of the
// underlying remote call. One Navigator exists per session; the latest
// pointer is an instance field, never process-wide state.
type Navigator struct {
	tables  TableSource
	dialect domain.Dialect
	exec    port.LookupExecutor
	auditor port.LookupAuditor
	logger  *slog.Logger
	tracer  trace.Tracer
	inst    port.Instrumentation

	mu        sync.Mutex
	stack     []*navContext
	lastToken uint64
	latest    uint64
}

func NewNavigator(tables TableSource, dialect domain.Dialect, exec port.LookupExecutor, auditor port.LookupAuditor, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *Navigator {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if inst == nil {
		inst = port.NoopInstrumentation{}
	}
	return &Navigator{
		tables:  tables,
		dialect: dialect,
		exec:    exec,
		auditor: auditor,
		logger:  logger,
		tracer:  tracer,
		inst:    inst,
	}
}

// Navigate resolves the guessed table name, pushes a loading context, and
// issues the single-row lookup asynchronously. fromIndex is the stack level
// the user drilled from: the stack is truncated to fromIndex+1 entries
// before the push, or reset entirely for RootLevel. The returned snapshot
// shows the new context in the loading state; lookup failures surface later
// as a failed context, never as an error from Navigate itself.
func (n *Navigator) Navigate(ctx context.Context, table string, value any, fromIndex int) ([]ContextView, error) {
	resolved := domain.ResolveTableName(table, n.tables.Tables())
	sql := domain.BuildSingleRowLookup(n.dialect, resolved, value)

	n.mu.Lock()
	if fromIndex >= len(n.stack) {
		n.mu.Unlock()
		return nil, fmt.Errorf("navigate from level %d: stack has %d levels", fromIndex, len(n.stack))
	}
	if fromIndex < 0 {
		n.stack = nil
	} else {
		n.stack = n.stack[:fromIndex+1]
	}

	n.lastToken++
	token := n.lastToken
	n.stack = append(n.stack, &navContext{
		token:  token,
		table:  resolved,
		value:  value,
		status: StatusLoading,
	})
	n.latest = token
	view := n.snapshotLocked()
	n.mu.Unlock()

	n.logger.Debug("navigation issued",
		slog.String("table", resolved),
		slog.Uint64("token", token),
		slog.Int("depth", len(view)),
	)

	// The lookup outlives the caller's request scope; staleness is handled
	// by token comparison, not by context cancellation.
	go n.lookup(context.WithoutCancel(ctx), token, resolved, sql)

	return view, nil
}

// lookup runs the remote call and applies the completion under the
// latest-wins rule.
func (n *Navigator) lookup(ctx context.Context, token uint64, table, sql string) {
	ctx, span := n.tracer.Start(ctx, "Navigator.lookup",
		trace.WithAttributes(
			attribute.String("db.operation.name", "lookup"),
			attribute.String("db.statement", sql),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := n.exec.Execute(ctx, sql)
	durationMS := time.Since(start).Milliseconds()

	n.inst.RecordLookupDuration(ctx, float64(durationMS))

	applied, stale := n.complete(token, result, err)

	rows := 0
	if result != nil {
		rows = result.RowCount
	}
	if n.auditor != nil {
		n.auditor.Record(ctx, port.LookupEntry{
			Tool:         "navigate",
			Table:        table,
			SQL:          sql,
			RowsReturned: rows,
			DurationMS:   durationMS,
			Stale:        stale,
			Err:          err,
		})
	}

	switch {
	case stale:
		// Not an error: a newer navigation superseded this one.
		n.inst.IncrementStaleDrops(ctx)
		n.logger.Debug("stale lookup dropped",
			slog.String("table", table),
			slog.Uint64("token", token),
		)
	case err != nil:
		n.inst.IncrementLookupErrors(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		n.logger.Warn("lookup failed",
			slog.String("table", table),
			slog.String("error.message", err.Error()),
		)
	default:
		n.inst.IncrementLookupCount(ctx)
		span.SetAttributes(attribute.Int("db.response.rows", rows))
		if applied {
			n.logger.Debug("lookup ready",
				slog.String("table", table),
				slog.Uint64("token", token),
				slog.Int("rows", rows),
			)
		}
	}
}

// complete transitions the context identified by token, unless the token is
// no longer the latest. The context is located by token rather than index
// because truncation may have shifted indices. A latest token whose context
// was popped by Back is accepted harmlessly: nothing references it anymore.
func (n *Navigator) complete(token uint64, result *port.TabularResult, err error) (applied, stale bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.latest != token {
		return false, true
	}
	for _, c := range n.stack {
		if c.token != token || c.status != StatusLoading {
			continue
		}
		if err != nil {
			c.status = StatusFailed
			c.errMsg = err.Error()
		} else {
			c.status = StatusReady
			c.result = result
		}
		return true, false
	}
	return false, false
}

// Back pops the most recent context. The latest pointer is left alone: a
// still-pending completion for the popped context is either already stale
// or applies to a context nothing renders anymore.
func (n *Navigator) Back() []ContextView {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) > 0 {
		n.stack = n.stack[:len(n.stack)-1]
	}
	return n.snapshotLocked()
}

// Close clears the stack and moves the latest pointer to the closed
// sentinel, guaranteeing every in-flight completion becomes a no-op. This
// is the only operation with a hard invalidation guarantee.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = nil
	n.latest = closedToken
}

// Stack returns a read-only snapshot of the drill-down stack, ordered from
// the first drill-down to the currently displayed level.
func (n *Navigator) Stack() []ContextView {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

func (n *Navigator) snapshotLocked() []ContextView {
	views := make([]ContextView, len(n.stack))
	for i, c := range n.stack {
		views[i] = ContextView{
			TargetTable:  c.table,
			LookupValue:  c.value,
			Status:       c.status,
			Result:       c.result,
			ErrorMessage: c.errMsg,
		}
	}
	return views
}
