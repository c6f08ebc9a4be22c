package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lodestone-labs/relnav/internal/core/port"
)

// collectResult drains pgx.Rows into a TabularResult, stopping at maxRows
// and flagging truncation. The cap is enforced scan-side rather than by
// rewriting the statement, so synthesized SQL goes to the server untouched.
func collectResult(rows pgx.Rows, maxRows int) (*port.TabularResult, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]port.ResultColumn, len(fields))
	typeMap := rows.Conn().TypeMap()
	for i, fd := range fields {
		name := "unknown"
		if t, ok := typeMap.TypeForOID(fd.DataTypeOID); ok {
			name = t.Name
		}
		columns[i] = port.ResultColumn{Name: fd.Name, TypeName: name}
	}

	result := &port.TabularResult{Columns: columns}
	for rows.Next() {
		if maxRows > 0 && len(result.Rows) >= maxRows {
			result.Truncated = true
			break
		}
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("reading row values: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, fd := range fields {
			row[fd.Name] = vals[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	result.RowCount = len(result.Rows)
	return result, nil
}
