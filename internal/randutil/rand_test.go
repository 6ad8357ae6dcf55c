package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSplitIsDeterministic(t *testing.T) {
	t.Parallel()
	p1, p2 := New(7), New(7)
	c1, c2 := Split(p1), Split(p2)
	for i := 0; i < 16; i++ {
		assert.Equal(t, c1.IntN(1000), c2.IntN(1000))
	}
	// Siblings differ from each other.
	assert.NotEqual(t, Split(p1).Uint64(), Split(p1).Uint64())
}
