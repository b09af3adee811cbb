package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func june(day int) time.Time {
	return time.Date(2025, time.June, day, 10, 0, 0, 0, time.UTC)
}

func TestAvailabilityBlock_Overlaps(t *testing.T) {
	block := &AvailabilityBlock{StartAt: june(10), EndAt: june(13)}

	t.Run("OverlappingRanges", func(t *testing.T) {
		assert.True(t, block.Overlaps(june(12), june(15)))
		assert.True(t, block.Overlaps(june(8), june(11)))
		assert.True(t, block.Overlaps(june(11), june(12))) // contained
		assert.True(t, block.Overlaps(june(8), june(20)))  // containing
		assert.True(t, block.Overlaps(june(10), june(13))) // identical
	})

	t.Run("HalfOpenAdjacencyDoesNotConflict", func(t *testing.T) {
		// A rental ending on day N and another starting on day N coexist.
		assert.False(t, block.Overlaps(june(13), june(16)))
		assert.False(t, block.Overlaps(june(7), june(10)))
	})

	t.Run("DisjointRanges", func(t *testing.T) {
		assert.False(t, block.Overlaps(june(20), june(25)))
		assert.False(t, block.Overlaps(june(1), june(5)))
	})
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange(june(10), june(11)))
	assert.ErrorIs(t, ValidateRange(june(11), june(10)), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange(june(10), june(10)), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange(time.Time{}, june(10)), ErrInvalidRange)
	assert.ErrorIs(t, ValidateRange(june(10), time.Time{}), ErrInvalidRange)
}
