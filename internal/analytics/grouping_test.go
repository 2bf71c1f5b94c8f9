package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type pair struct {
	a, b *string
	n    int
}

type pairKey struct {
	A NullString
	B NullString
}

func TestGroupByCompositeKey(t *testing.T) {
	items := []pair{
		{a: strPtr("x"), b: strPtr("y"), n: 1},
		{a: strPtr("x|y"), b: nil, n: 2},
		{a: strPtr("x"), b: strPtr("y"), n: 3},
		{a: nil, b: nil, n: 4},
		{a: strPtr(""), b: nil, n: 5},
	}
	groups := GroupBy(items,
		func(p pair) pairKey { return pairKey{A: StringKey(p.a), B: StringKey(p.b)} },
		func(pairKey) int { return 0 },
		func(acc int, p pair) int { return acc + p.n },
	)

	assert.Equal(t, 3, groups.Len())
	sum, ok := groups.Get(pairKey{A: NullString{Value: "x", Valid: true}, B: NullString{Value: "y", Valid: true}})
	assert.True(t, ok)
	assert.Equal(t, 4, sum)

	unknown, ok := groups.Get(pairKey{})
	assert.True(t, ok, "nil and blank values share the unknown bucket")
	assert.Equal(t, 9, unknown)

	keys := groups.Keys()
	assert.Equal(t, "x", keys[0].A.Value)
	assert.Equal(t, "x|y", keys[1].A.Value)
	assert.Equal(t, UnknownLabel, keys[2].A.Label())
}

func TestGroupByEmpty(t *testing.T) {
	groups := GroupBy([]pair(nil), func(p pair) int { return p.n }, func(int) []pair { return nil }, appendTo[pair])
	assert.Equal(t, 0, groups.Len())
	assert.Empty(t, groups.Keys())
}
