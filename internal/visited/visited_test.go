package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairSet(t *testing.T) {
	s := NewPairSet(4)
	assert.Equal(t, 6, s.Capacity())

	assert.True(t, s.Visit(1, 3))
	assert.False(t, s.Visit(3, 1), "reversed pair is the same pair")
	assert.True(t, s.Visited(1, 3))
	assert.True(t, s.Visited(3, 1))
	assert.False(t, s.Visited(0, 1))
	assert.Equal(t, 1, s.Len())

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			s.Visit(i, j)
		}
	}
	assert.Equal(t, 6, s.Len())
	assert.True(t, s.Exhausted())

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Exhausted())
}

func TestPairSetTooSmall(t *testing.T) {
	assert.True(t, NewPairSet(1).Exhausted())
	assert.True(t, NewPairSet(0).Exhausted())
	assert.Equal(t, 0, NewPairSet(1).Capacity())
}
