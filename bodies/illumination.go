package bodies

import (
	"math"

	"github.com/crescentlab/moonsight/numkit"
)

const deg2rad = math.Pi / 180.0
const rad2deg = 180.0 / math.Pi

// Illumination holds the Moon's lunar-phase geometry at one instant.
type Illumination struct {
	ElongationDeg       float64 // angle between geocentric Moon and Sun, [0, 180]
	PhaseAngleDeg       float64 // Sun-Moon-Earth angle, [0, 180]
	IlluminatedFraction float64 // k, [0, 1]
	IsWaxing            bool    // Moon east of Sun
}

// angleBetweenDeg returns the angle between a and b in degrees, using
// Kahan's numerically stable formula (atan2 of the cross and dot products)
// rather than acos(dot/|a||b|), which loses precision near 0° and 180°.
func angleBetweenDeg(a, b numkit.Vec3) float64 {
	lenA := a.Norm()
	lenB := b.Norm()
	if lenA == 0 || lenB == 0 {
		return 0
	}
	u := a.Scale(lenB)
	v := b.Scale(lenA)
	return 2.0 * math.Atan2(u.Sub(v).Norm(), u.Add(v).Norm()) * rad2deg
}

// ComputeIllumination derives the Moon's phase geometry from its
// geocentric position and the Sun's geocentric position (both km,
// ICRF≈GCRS).
func ComputeIllumination(moonGCRS, sunGCRS numkit.Vec3) Illumination {
	elongation := angleBetweenDeg(moonGCRS, sunGCRS)

	moonToEarth := moonGCRS.Scale(-1)
	moonToSun := sunGCRS.Sub(moonGCRS)
	phase := angleBetweenDeg(moonToEarth, moonToSun)

	k := 0.5 * (1.0 + math.Cos(phase*deg2rad))

	cross := sunGCRS.Cross(moonGCRS)

	return Illumination{
		ElongationDeg:       elongation,
		PhaseAngleDeg:       phase,
		IlluminatedFraction: k,
		IsWaxing:            cross[2] > 0,
	}
}
