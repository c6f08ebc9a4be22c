package domain

// TableDescriptor is a snapshot of one table as seen by schema introspection.
// RowCount is nil when the backend cannot estimate it (e.g. views, or tables
// that were never analyzed).
type TableDescriptor struct {
	Schema   string `json:"schema"`
	Name     string `json:"name"`
	RowCount *int64 `json:"row_count,omitempty"`
}
