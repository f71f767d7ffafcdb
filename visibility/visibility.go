// Package visibility scores a crescent-sighting geometry using the Yallop
// and Odeh criteria, both of which reduce to the same shared polynomial:
// the minimum topocentric arc of vision (ARCV) a crescent of a given width
// needs to be seen.
package visibility

import (
	"math"

	"github.com/crescentlab/moonsight/numkit"
)

const deg2rad = math.Pi / 180.0
const rad2deg = 180.0 / math.Pi

// ArcvMin returns the minimum ARCV (degrees) at which a crescent of width w
// (arc-minutes) is visible, per the shared Yallop/Odeh polynomial fit.
func ArcvMin(wArcmin float64) float64 {
	return 11.8371 - 6.3226*wArcmin + 0.7319*wArcmin*wArcmin - 0.1018*wArcmin*wArcmin*wArcmin
}

// YallopCategory maps a Yallop q value to its visibility category, A
// (easily visible to the naked eye) through F (not visible, even with
// optical aid).
func YallopCategory(q float64) string {
	switch {
	case q > 0.216:
		return "A"
	case q > -0.014:
		return "B"
	case q > -0.160:
		return "C"
	case q > -0.232:
		return "D"
	case q > -0.293:
		return "E"
	default:
		return "F"
	}
}

// YallopQ returns the Yallop visibility criterion q for an observed ARCV
// and crescent width (both degrees/arc-minutes as used throughout this
// package), against the same ArcvMin polynomial.
func YallopQ(arcvDeg, wArcmin float64) float64 {
	return (arcvDeg - ArcvMin(wArcmin)) / 10.0
}

// OdehV returns the Odeh visibility criterion V for an observed ARCV and
// crescent width.
func OdehV(arcvDeg, wArcmin float64) float64 {
	return arcvDeg - ArcvMin(wArcmin)
}

// OdehZone maps an Odeh V value to its visibility zone, A (easily visible
// to the naked eye) through D (not visible, even with a telescope).
func OdehZone(v float64) string {
	switch {
	case v >= 5.65:
		return "A"
	case v >= 2.00:
		return "B"
	case v >= -0.96:
		return "C"
	default:
		return "D"
	}
}

// Geometry is the full crescent-visibility assembly at one instant
// (normally best time), combining the airless alt/az of both bodies with
// the observer-relative (topocentric) position vectors needed for ARCL/W.
type Geometry struct {
	ARCVDeg        float64 // moon_airless_alt - sun_airless_alt
	DAZDeg         float64 // normalize180(sun_airless_az - moon_airless_az)
	ARCLDeg        float64 // angle between topocentric moon/sun vectors
	WArcmin        float64 // crescent width
	LagMinutes     float64 // moonset - sunset, minutes
	YallopQ        float64
	YallopCategory string
	OdehV          float64
	OdehZone       string
}

// ComputeGeometry assembles the full crescent-visibility geometry.
//
// moonAirlessAz/Alt, sunAirlessAz/Alt are the topocentric, no-refraction
// azimuth/altitude of each body in degrees. moonTopo/sunTopo are the
// observer-to-body position vectors (km, both in the same frame) used for ARCL and
// W. lagMinutes is the moonset-minus-sunset interval in minutes (NaN if
// either event did not occur in the search window).
func ComputeGeometry(moonAirlessAz, moonAirlessAlt, sunAirlessAz, sunAirlessAlt float64, moonTopo, sunTopo numkit.Vec3, lagMinutes float64) Geometry {
	arcv := moonAirlessAlt - sunAirlessAlt
	daz := normalize180(sunAirlessAz - moonAirlessAz)
	arcl := angleBetweenDeg(moonTopo, sunTopo)
	w := crescentWidthArcmin(moonTopo.Norm(), arcl)

	q := YallopQ(arcv, w)
	v := OdehV(arcv, w)

	return Geometry{
		ARCVDeg:        arcv,
		DAZDeg:         daz,
		ARCLDeg:        arcl,
		WArcmin:        w,
		LagMinutes:     lagMinutes,
		YallopQ:        q,
		YallopCategory: YallopCategory(q),
		OdehV:          v,
		OdehZone:       OdehZone(v),
	}
}

// moonRadiusKm is the Moon's mean radius (km); duplicated from bodies'
// unexported constant of the same name rather than imported, to keep
// visibility free of a dependency on bodies for this one scalar.
const moonRadiusKm = 1737.4

// crescentWidthArcmin returns the crescent width W in arc-minutes given the
// topocentric Moon distance and topocentric elongation (ARCL), matching
// bodies.CrescentWidthArcmin exactly.
func crescentWidthArcmin(distKm, arclDeg float64) float64 {
	sdArcmin := math.Atan(moonRadiusKm/distKm) * rad2deg * 60.0
	return sdArcmin * (1.0 - math.Cos(arclDeg*deg2rad))
}

// angleBetweenDeg returns the angle between a and b in degrees, using
// Kahan's numerically stable formula (atan2 of the cross and dot products)
// rather than acos(dot/|a||b|).
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

// normalize180 reduces deg to the range (-180, 180].
func normalize180(deg float64) float64 {
	d := math.Mod(deg, 360.0)
	if d <= -180.0 {
		d += 360.0
	}
	if d > 180.0 {
		d -= 360.0
	}
	return d
}
