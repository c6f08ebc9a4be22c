package port

import "context"

// Backend bundles the per-connection collaborators a session needs.
type Backend struct {
	Executor LookupExecutor
	Catalog  TableCatalog
	Close    func()
}

// BackendConnector opens a backend for a connection string. Implementations
// are engine-specific adapters.
type BackendConnector interface {
	Connect(ctx context.Context, url string) (*Backend, error)
}
