package domain

import (
	"errors"
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

var (
	ErrEmptyStatement = errors.New("empty statement")
	ErrNotSelect      = errors.New("only SELECT statements are allowed")
	ErrMultiStatement = errors.New("multiple statements are not allowed")
	ErrParseFailed    = errors.New("failed to parse SQL")
)

// StatementGuard gates the query passthrough path: only a single SELECT (or
// EXPLAIN) statement may reach the executor. It uses PostgreSQL's actual
// parser rather than keyword matching, so comments, CTEs, and string
// literals cannot smuggle other statement kinds past it. Synthesized lookup
// statements bypass the guard; they never contain user-written SQL.
type StatementGuard struct{}

func NewStatementGuard() *StatementGuard {
	return &StatementGuard{}
}

// Validate parses sql and rejects anything that is not exactly one
// SELECT or EXPLAIN statement.
func (g *StatementGuard) Validate(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return ErrEmptyStatement
	}

	tree, err := pg_query.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	switch len(tree.Stmts) {
	case 0:
		return ErrEmptyStatement
	case 1:
	default:
		return ErrMultiStatement
	}

	stmt := tree.Stmts[0].Stmt
	if stmt == nil {
		return ErrEmptyStatement
	}

	switch stmt.Node.(type) {
	case *pg_query.Node_SelectStmt, *pg_query.Node_ExplainStmt:
		return nil
	default:
		return ErrNotSelect
	}
}
