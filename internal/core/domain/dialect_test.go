package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"postgres", DialectPostgres, false},
		{"PostgreSQL", DialectPostgres, false},
		{"", DialectPostgres, false},
		{"mysql", DialectMySQL, false},
		{"mariadb", DialectMySQL, false},
		{"sqlite3", DialectSQLite, false},
		{"mssql", DialectSQLServer, false},
		{"SQLServer", DialectSQLServer, false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSingleRowLookup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		dialect Dialect
		table   string
		value   any
		want    string
	}{
		{
			name:    "limit dialect with numeric value",
			dialect: DialectPostgres,
			table:   "t",
			value:   42,
			want:    "SELECT * FROM t WHERE id = 42 LIMIT 1;",
		},
		{
			name:    "top dialect with quoted string",
			dialect: DialectSQLServer,
			table:   "t",
			value:   "O'Brien",
			want:    "SELECT TOP 1 * FROM t WHERE id = 'O''Brien';",
		},
		{
			name:    "mysql uses limit",
			dialect: DialectMySQL,
			table:   "orders",
			value:   "abc",
			want:    "SELECT * FROM orders WHERE id = 'abc' LIMIT 1;",
		},
		{
			name:    "sqlite uses limit",
			dialect: DialectSQLite,
			table:   "users",
			value:   int64(7),
			want:    "SELECT * FROM users WHERE id = 7 LIMIT 1;",
		},
		{
			name:    "json numbers arrive as float64",
			dialect: DialectPostgres,
			table:   "users",
			value:   float64(42),
			want:    "SELECT * FROM users WHERE id = 42 LIMIT 1;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildSingleRowLookup(tt.dialect, tt.table, tt.value))
		})
	}
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "'plain'", QuoteLiteral("plain"))
	assert.Equal(t, "'O''Brien'", QuoteLiteral("O'Brien"))
	assert.Equal(t, "''''''", QuoteLiteral("''"))
	assert.Equal(t, "42", QuoteLiteral(42))
	assert.Equal(t, "-3", QuoteLiteral(int64(-3)))
	assert.Equal(t, "3.5", QuoteLiteral(3.5))
}
