package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func namedTables(names ...string) []TableDescriptor {
	tables := make([]TableDescriptor, len(names))
	for i, n := range names {
		tables[i] = TableDescriptor{Schema: "public", Name: n}
	}
	return tables
}

func TestClassifyForeignKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		column    string
		tables    []TableDescriptor
		wantTable string
		wantOK    bool
	}{
		{"snake case plural", "user_id", namedTables("users", "clients"), "users", true},
		{"snake case singular table", "status_id", namedTables("status"), "status", true},
		{"camel case", "clientId", namedTables("clients"), "clients", true},
		{"camel case mixed column casing", "CategoryId", namedTables("categories"), "categories", true},
		{"preserves stored casing", "user_id", namedTables("Users"), "Users", true},
		{"id is never a foreign key", "id", namedTables("users", "ids"), "", false},
		{"ID is never a foreign key", "ID", namedTables("users"), "", false},
		{"no suffix", "description", namedTables("users"), "", false},
		{"suffix without known table", "order_id", namedTables("users"), "", false},
		{"bare _id", "_id", namedTables("users"), "", false},
		{"naive plural candidate", "person_id", namedTables("persons"), "persons", true},
		{"ies plural candidate", "category_id", namedTables("categories"), "categories", true},
		{"empty table set", "user_id", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ClassifyForeignKey(tt.column, tt.tables)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTable, got)
		})
	}
}

func TestClassifyForeignKey_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	tables := namedTables("users")
	ClassifyForeignKey("user_id", tables)
	assert.Equal(t, namedTables("users"), tables)
}
