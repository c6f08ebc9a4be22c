package port

import "context"

// LookupEntry represents a single auditable query event: a drill-down
// lookup or a passthrough query. Stale marks completions that arrived after
// a newer navigation superseded them and were therefore discarded.
type LookupEntry struct {
	Tool         string
	Table        string
	SQL          string
	RowsReturned int
	DurationMS   int64
	Stale        bool
	Err          error
}

// LookupAuditor records query audit events.
type LookupAuditor interface {
	Record(ctx context.Context, entry LookupEntry)
	Close() error
}
