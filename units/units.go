// Package units formats angular measurements for human-readable output —
// the degrees/arcminutes/arcseconds display cmd/moonsight uses for
// azimuth, altitude, and elongation.
package units

import "math"

const (
	deg2rad = math.Pi / 180.0
	rad2deg = 180.0 / math.Pi
)

// Angle represents an angular measurement.
type Angle struct {
	rad float64
}

// NewAngle creates an Angle from radians.
func NewAngle(radians float64) Angle { return Angle{rad: radians} }

// AngleFromDegrees creates an Angle from degrees.
func AngleFromDegrees(deg float64) Angle { return Angle{rad: deg * deg2rad} }

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return a.rad }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return a.rad * rad2deg }

// Arcminutes returns the angle in arcminutes.
func (a Angle) Arcminutes() float64 { return a.Degrees() * 60.0 }

// Arcseconds returns the angle in arcseconds.
func (a Angle) Arcseconds() float64 { return a.Degrees() * 3600.0 }

// DMS decomposes the angle into sign, integer degrees, integer arcminutes,
// and fractional arcseconds. Sign is +1 or -1.
func (a Angle) DMS() (sign float64, deg, min int, sec float64) {
	total := a.Degrees()
	sign = 1.0
	if total < 0 {
		sign = -1.0
		total = -total
	}
	deg = int(total)
	remainder := (total - float64(deg)) * 60.0
	min = int(remainder)
	sec = (remainder - float64(min)) * 60.0
	return
}
