package bodies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrescentWidthZeroAtZeroElongation(t *testing.T) {
	w := CrescentWidthArcmin(384400, 0)
	assert.InDelta(t, 0, w, 1e-9)
}

func TestCrescentWidthIncreasesWithElongation(t *testing.T) {
	w10 := CrescentWidthArcmin(384400, 10)
	w20 := CrescentWidthArcmin(384400, 20)
	assert.Greater(t, w20, w10)
}

func TestCrescentWidthDecreasesWithDistance(t *testing.T) {
	near := CrescentWidthArcmin(356500, 15)
	far := CrescentWidthArcmin(406700, 15)
	assert.Greater(t, near, far)
}
