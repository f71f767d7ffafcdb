package moonsight

import (
	"math"
	"time"

	"github.com/crescentlab/moonsight/bodies"
	"github.com/crescentlab/moonsight/timescale"
)

// synodicMonthYears is the mean synodic month expressed in Julian years,
// used as the step size for locating the new moon bracketing a date on
// either side of the NearestNewMoon candidate.
const synodicMonthYears = 29.530588861 / 365.25

// phaseNames are the eight standard lunar-phase octants, indexed by the
// Moon-Sun signed elongation (0-360°, waxing increasing from New Moon)
// divided into 45° bands centered on each name.
var phaseNames = [8]string{
	"new-moon",
	"waxing-crescent",
	"first-quarter",
	"waxing-gibbous",
	"full-moon",
	"waning-gibbous",
	"last-quarter",
	"waning-crescent",
}

// MoonPhaseResult is the kernel-free lunar-phase snapshot returned by
// MoonPhase: it never fails regardless of date, per spec.md §7.
type MoonPhaseResult struct {
	Date                time.Time
	IlluminatedFraction float64
	ElongationDeg       float64
	IsWaxing            bool
	Phase               string
	PrevNewMoonJDE      float64
	NextNewMoonJDE      float64
}

// MoonPhase returns the Moon's phase at t (now, if nil), computed entirely
// from the kernel-free Meeus series (bodies.MeeusProvider, bodies.Ch.49
// new-moon search); it calls only C2 (timescale) and C6 (bodies) per
// spec.md §4.9, so it never fails from a missing ephemeris kernel.
func MoonPhase(t *time.Time) MoonPhaseResult {
	at := time.Now().UTC()
	if t != nil {
		at = t.UTC()
	}

	ts := timescale.Compute(at, timescale.Overrides{})
	moonGCRS := bodies.MeeusMoonGCRS(ts.JDTT)
	sunGCRS := bodies.MeeusSunGCRS(ts.JDTT)
	illum := bodies.ComputeIllumination(moonGCRS, sunGCRS)

	decimalYear := 2000.0 + (ts.JDTT-timescale.J2000)/365.25
	candidate := bodies.NearestNewMoon(decimalYear)

	var prevNew, nextNew float64
	if candidate <= ts.JDTT {
		prevNew = candidate
		nextNew = bodies.NearestNewMoon(decimalYear + synodicMonthYears)
	} else {
		nextNew = candidate
		prevNew = bodies.NearestNewMoon(decimalYear - synodicMonthYears)
	}

	return MoonPhaseResult{
		Date:                at,
		IlluminatedFraction: illum.IlluminatedFraction,
		ElongationDeg:       illum.ElongationDeg,
		IsWaxing:            illum.IsWaxing,
		Phase:               phaseOctant(illum.ElongationDeg, illum.IsWaxing),
		PrevNewMoonJDE:      prevNew,
		NextNewMoonJDE:      nextNew,
	}
}

// phaseOctant maps an unsigned elongation (0-180°) plus waxing/waning
// direction to one of the eight standard lunar-phase names.
func phaseOctant(elongationDeg float64, isWaxing bool) string {
	signed := elongationDeg
	if !isWaxing {
		signed = 360.0 - elongationDeg
	}
	idx := int(math.Mod(signed+22.5, 360.0) / 45.0)
	if idx < 0 {
		idx += 8
	}
	return phaseNames[idx%8]
}
