package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaFilter_EmptyExcludesSystemSchemas(t *testing.T) {
	t.Parallel()
	clause, args := schemaFilter(nil, "t.table_schema", 1)
	assert.Equal(t, "t.table_schema NOT IN ('pg_catalog', 'information_schema')", clause)
	assert.Nil(t, args)
}

func TestSchemaFilter_SingleSchema(t *testing.T) {
	t.Parallel()
	clause, args := schemaFilter([]string{"public"}, "t.table_schema", 1)
	assert.Equal(t, "t.table_schema IN ($1)", clause)
	assert.Equal(t, []any{"public"}, args)
}

func TestSchemaFilter_MultipleSchemasWithOffset(t *testing.T) {
	t.Parallel()
	clause, args := schemaFilter([]string{"public", "app"}, "s.schema_name", 3)
	assert.Equal(t, "s.schema_name IN ($3, $4)", clause)
	assert.Equal(t, []any{"public", "app"}, args)
}
