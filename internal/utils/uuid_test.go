package utils

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_Generate_Valid(t *testing.T) {
	g := NewUUIDGenerator()

	id := g.Generate()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}

func TestUUIDGenerator_Generate_Unique(t *testing.T) {
	g := NewUUIDGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		_, dup := seen[id]
		require.False(t, dup, "duplicate uuid generated: %s", id)
		seen[id] = struct{}{}
	}
}

// UUIDv7 ids generated over time must sort in generation order; the
// mutation queue uses them as FIFO tie-breakers.
func TestUUIDGenerator_Generate_TimeOrdered(t *testing.T) {
	g := NewUUIDGenerator()

	first := g.Generate()
	time.Sleep(2 * time.Millisecond)
	second := g.Generate()

	ids := []string{second, first}
	sort.Strings(ids)
	assert.Equal(t, []string{first, second}, ids)
}
