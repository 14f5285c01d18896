package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDGeneratorIsMonotonicWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	gen := NewIDGeneratorWithClock(func() time.Time { return fixed })

	first := gen.Next()
	second := gen.Next()
	third := gen.Next()

	assert.Equal(t, fixed.UnixMilli(), first)
	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestIDGeneratorFollowsClockForward(t *testing.T) {
	now := time.UnixMilli(1_000)
	gen := NewIDGeneratorWithClock(func() time.Time { return now })

	assert.Equal(t, int64(1_000), gen.Next())
	now = time.UnixMilli(5_000)
	assert.Equal(t, int64(5_000), gen.Next())
	// clock going backwards never reuses an id
	now = time.UnixMilli(2_000)
	assert.Equal(t, int64(5_001), gen.Next())
}
