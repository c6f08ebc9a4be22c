package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL syntax convention of a database engine. Only
// the row-limiting clause differs for the statements this package builds:
// SQL Server uses a leading TOP clause, everything else a trailing LIMIT.
type Dialect string

const (
	DialectPostgres  Dialect = "postgres"
	DialectMySQL     Dialect = "mysql"
	DialectSQLite    Dialect = "sqlite"
	DialectSQLServer Dialect = "sqlserver"
)

// ParseDialect normalizes a user-supplied dialect string.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "postgres", "postgresql":
		return DialectPostgres, nil
	case "mysql", "mariadb":
		return DialectMySQL, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "sqlserver", "mssql":
		return DialectSQLServer, nil
	default:
		return "", fmt.Errorf("unknown dialect %q (supported: postgres, mysql, sqlite, sqlserver)", s)
	}
}

// BuildSingleRowLookup builds the SQL text that fetches the row referenced
// by a foreign-key value. The lookup column is always literally "id"; real
// primary-key discovery is out of scope for the heuristic layer.
func BuildSingleRowLookup(dialect Dialect, table string, value any) string {
	lit := QuoteLiteral(value)
	if dialect == DialectSQLServer {
		return fmt.Sprintf("SELECT TOP 1 * FROM %s WHERE id = %s;", table, lit)
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE id = %s LIMIT 1;", table, lit)
}

// QuoteLiteral renders a lookup value as a SQL literal. Textual values are
// single-quoted with embedded quotes doubled; numeric values are emitted
// bare. Callers coerce any other type to one of these first.
func QuoteLiteral(value any) string {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(v), "'", "''") + "'"
	}
}
