package port

import "context"

// ResultColumn describes one column of a tabular result.
type ResultColumn struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name"`
}

// TabularResult is the outcome of a remote query: columns with type names,
// rows keyed by column name, and execution metadata. Truncated is set when
// the executor's row cap cut the result short.
type TabularResult struct {
	Columns         []ResultColumn   `json:"columns"`
	Rows            []map[string]any `json:"rows"`
	RowCount        int              `json:"row_count"`
	ExecutionTimeMS int64            `json:"execution_time_ms"`
	Truncated       bool             `json:"truncated"`
}

// LookupExecutor is the raw query-execution transport. Calls complete
// independently; no ordering is implied across concurrent invocations.
type LookupExecutor interface {
	Execute(ctx context.Context, sql string) (*TabularResult, error)
}
