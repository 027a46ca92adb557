package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morphedb/morphe/dialect"
	"github.com/morphedb/morphe/dialect/convert"
	"github.com/morphedb/morphe/schema"
)

// Every ordered pair of distinct dialects must have a table, so the
// deterministic fallback can always run for the shipped dialect set.
func TestEveryPairHasTable(t *testing.T) {
	t.Parallel()

	for _, source := range dialect.All() {
		for _, target := range dialect.All() {
			if source == target {
				continue
			}
			assert.True(t, convert.HasTable(source, target), "%s -> %s", source, target)
		}
	}
	assert.False(t, convert.HasTable(dialect.MySQL, dialect.MySQL))
	assert.False(t, convert.HasTable("oracle", dialect.MySQL))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, target string
		typ            schema.Type
		want           string
	}{
		{dialect.MySQL, dialect.Postgres, schema.TypeString, "TEXT"},
		{dialect.MySQL, dialect.Postgres, schema.TypeUnstructured, "JSONB"},
		{dialect.Postgres, dialect.MySQL, schema.TypeBool, "TINYINT(1)"},
		{dialect.Postgres, dialect.MySQL, schema.TypeUUID, "CHAR(36)"},
		{dialect.MongoDB, dialect.Postgres, schema.TypeObject, "JSONB"},
		{dialect.MySQL, dialect.MongoDB, schema.TypeTime, "date"},
		{dialect.Postgres, dialect.SQLite, schema.TypeFloat, "REAL"},
	}
	for _, tt := range tests {
		got, ok := convert.Lookup(tt.source, tt.target, tt.typ)
		require.True(t, ok, "%s -> %s %s", tt.source, tt.target, tt.typ)
		assert.Equal(t, tt.want, got)
	}
}

// The sqlite-target tables carry no unstructured entry; lookups degrade
// to the generic fallback at conversion time.
func TestLookupUnmapped(t *testing.T) {
	t.Parallel()

	_, ok := convert.Lookup(dialect.MySQL, dialect.SQLite, schema.TypeUnstructured)
	assert.False(t, ok)

	_, ok = convert.Lookup("oracle", dialect.SQLite, schema.TypeString)
	assert.False(t, ok)
}
