package moonsight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoonPositionWithinDistanceBounds(t *testing.T) {
	when := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	pos := MoonPosition(&when, 51.5074, -0.1278, 10)

	assert.GreaterOrEqual(t, pos.DistanceKm, 356000.0)
	assert.LessOrEqual(t, pos.DistanceKm, 407000.0)
	assert.GreaterOrEqual(t, pos.AzimuthDeg, 0.0)
	assert.Less(t, pos.AzimuthDeg, 360.0)
	assert.GreaterOrEqual(t, pos.AltitudeDeg, -90.0)
	assert.LessOrEqual(t, pos.AltitudeDeg, 90.0)
}

func TestMoonPositionDefaultsToNowWhenNil(t *testing.T) {
	pos := MoonPosition(nil, 0, 0, 0)
	assert.False(t, pos.Date.IsZero())
}
