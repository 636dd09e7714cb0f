package depth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTick(t *testing.T) {
	assert.Equal(t, int64(5001), ToTick(500.1, 0.1))
	assert.Equal(t, int64(4993), ToTick(499.3, 0.1))
	assert.Equal(t, int64(4985), ToTick(498.5, 0.1))
}

func TestToTickPanicsOnNonPositiveTickSize(t *testing.T) {
	assert.Panics(t, func() { ToTick(100, 0) })
	assert.Panics(t, func() { ToTick(100, -0.1) })
}

func TestIsZeroLots(t *testing.T) {
	assert.True(t, IsZeroLots(0, 0.001))
	assert.True(t, IsZeroLots(0.0004, 0.001))
	assert.False(t, IsZeroLots(0.001, 0.001))
	assert.False(t, IsZeroLots(0.0006, 0.001))
}

func TestIsZeroLotsPanicsOnNonPositiveLotSize(t *testing.T) {
	assert.Panics(t, func() { IsZeroLots(1, 0) })
}
