package postgres

import (
	"context"
	"time"

	"github.com/lodestone-labs/relnav/internal/core/port"
)

// Connector opens per-session backends: one pool shared by the executor and
// the catalog, closed together when the session ends.
type Connector struct {
	maxRows      int
	queryTimeout time.Duration
	schemas      []string
	poolOpts     PoolOptions
}

func NewConnector(maxRows int, queryTimeout time.Duration, schemas []string, poolOpts PoolOptions) *Connector {
	return &Connector{
		maxRows:      maxRows,
		queryTimeout: queryTimeout,
		schemas:      schemas,
		poolOpts:     poolOpts,
	}
}

func (c *Connector) Connect(ctx context.Context, url string) (*port.Backend, error) {
	pool, err := NewPool(ctx, url, c.poolOpts)
	if err != nil {
		return nil, err
	}
	return &port.Backend{
		Executor: NewExecutor(pool, c.maxRows, c.queryTimeout),
		Catalog:  NewCatalog(pool, c.schemas),
		Close:    pool.Close,
	}, nil
}
