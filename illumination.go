package moonsight

import (
	"time"

	"github.com/crescentlab/moonsight/bodies"
	"github.com/crescentlab/moonsight/timescale"
)

// MoonIlluminationResult is the kernel-free lunar-phase geometry returned
// by MoonIllumination.
type MoonIlluminationResult struct {
	Date                time.Time
	IlluminatedFraction float64
	ElongationDeg       float64
	PhaseAngleDeg       float64
	IsWaxing            bool
}

// MoonIllumination returns the Moon's illuminated fraction and phase
// geometry at t (now, if nil), computed entirely from the kernel-free
// Meeus series (C2 + C6); it never fails.
func MoonIllumination(t *time.Time) MoonIlluminationResult {
	at := time.Now().UTC()
	if t != nil {
		at = t.UTC()
	}

	ts := timescale.Compute(at, timescale.Overrides{})
	moonGCRS := bodies.MeeusMoonGCRS(ts.JDTT)
	sunGCRS := bodies.MeeusSunGCRS(ts.JDTT)
	illum := bodies.ComputeIllumination(moonGCRS, sunGCRS)

	return MoonIlluminationResult{
		Date:                at,
		IlluminatedFraction: illum.IlluminatedFraction,
		ElongationDeg:       illum.ElongationDeg,
		PhaseAngleDeg:       illum.PhaseAngleDeg,
		IsWaxing:            illum.IsWaxing,
	}
}
