package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalancedBlock(t *testing.T) {
	t.Parallel()

	body, end, ok := balancedBlock(`{ a: { b: 1 }, c: "}" }`, 0)
	require.True(t, ok)
	assert.Equal(t, ` a: { b: 1 }, c: "}" `, body)
	assert.Equal(t, 22, end)

	_, _, ok = balancedBlock("{ never closes", 0)
	assert.False(t, ok)

	_, _, ok = balancedBlock("no brace here", 0)
	assert.False(t, ok)
}

func TestTopLevelEntries(t *testing.T) {
	t.Parallel()

	entries := topLevelEntries(`
  email: { type: String, required: true },
  name: String,
  'quoted': Date,
  nested: { deep: { deeper: 1 } }
`)
	require.Len(t, entries, 4)
	assert.Equal(t, [2]string{"email", "{ type: String, required: true }"}, entries[0])
	assert.Equal(t, [2]string{"name", "String"}, entries[1])
	assert.Equal(t, [2]string{"quoted", "Date"}, entries[2])
	assert.Equal(t, [2]string{"nested", "{ deep: { deeper: 1 } }"}, entries[3])
}
