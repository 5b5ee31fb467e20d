package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildOperations(t *testing.T) {
	records := []CanonicalRecord{
		{Question: "a", Answer: "1"},
		{Question: "b", Answer: "2", Tags: []string{"x"}},
		{Question: "a", Answer: "3"},
	}

	t.Run("one operation per record", func(t *testing.T) {
		ops := BuildOperations(records, false)
		assert.Len(t, ops, 3)
		assert.Equal(t, "a", ops[0].Question)
		assert.Equal(t, "a", ops[0].Set.Question)
		assert.NotNil(t, ops[0].Set.Tags)
		assert.Equal(t, "3", ops[2].Set.Answer)
	})

	t.Run("dedupe keeps last occurrence at first position", func(t *testing.T) {
		ops := BuildOperations(records, true)
		assert.Equal(t, []UpsertOp{
			{Question: "a", Set: CanonicalRecord{Question: "a", Answer: "3", Tags: []string{}}},
			{Question: "b", Set: CanonicalRecord{Question: "b", Answer: "2", Tags: []string{"x"}}},
		}, ops)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, BuildOperations(nil, true))
	})
}
