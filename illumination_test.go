package moonsight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoonIlluminationBoundedFields(t *testing.T) {
	when := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	result := MoonIllumination(&when)

	assert.GreaterOrEqual(t, result.IlluminatedFraction, 0.0)
	assert.LessOrEqual(t, result.IlluminatedFraction, 1.0)
	assert.GreaterOrEqual(t, result.ElongationDeg, 0.0)
	assert.LessOrEqual(t, result.ElongationDeg, 180.0)
	assert.GreaterOrEqual(t, result.PhaseAngleDeg, 0.0)
	assert.LessOrEqual(t, result.PhaseAngleDeg, 180.0)
}

func TestMoonIlluminationWaxingFlag(t *testing.T) {
	when := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	result := MoonIllumination(&when)
	assert.True(t, result.IsWaxing)
}

func TestMoonIlluminationDefaultsToNowWhenNil(t *testing.T) {
	result := MoonIllumination(nil)
	assert.False(t, result.Date.IsZero())
}
