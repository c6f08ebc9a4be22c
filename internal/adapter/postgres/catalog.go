package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lodestone-labs/relnav/internal/core/domain"
)

// Catalog introspects table names and row estimates. Row estimates come
// from the planner statistics; a table that was never analyzed reports an
// unknown count rather than zero.
type Catalog struct {
	pool    *pgxpool.Pool
	schemas []string // empty means all non-system schemas
}

func NewCatalog(pool *pgxpool.Pool, schemas []string) *Catalog {
	return &Catalog{pool: pool, schemas: schemas}
}

func (c *Catalog) Snapshot(ctx context.Context) ([]domain.TableDescriptor, error) {
	filter, args := schemaFilter(c.schemas, "t.table_schema", 1)
	query := fmt.Sprintf(queryListTables, filter)

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []domain.TableDescriptor
	for rows.Next() {
		var t domain.TableDescriptor
		if err := rows.Scan(&t.Schema, &t.Name, &t.RowCount); err != nil {
			return nil, fmt.Errorf("scanning table row: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	return tables, nil
}
