package bodies

import (
	"math"

	"github.com/crescentlab/moonsight/frames"
	"github.com/crescentlab/moonsight/numkit"
)

const j2000JD = 2451545.0
const auKm = 149597870.7

// meanObliquityRad returns the IAU 1980 mean obliquity of the ecliptic
// (Lieske 1979) in radians, at T Julian centuries from J2000 TT.
func meanObliquityRad(T float64) float64 {
	arcsec2rad := deg2rad / 3600.0
	return (84381.448 + T*(-46.8150+T*(-0.00059+T*0.001813))) * arcsec2rad
}

// sunEquationOfCenterAndAnomaly returns the Sun's equation of center C and
// mean anomaly M (both radians) at T, Meeus Ch.25 Eq. 25.3-25.4.
func sunEquationOfCenterAndAnomaly(T float64) (C, M float64) {
	M = (357.52911 + T*(35999.05029-0.0001537*T)) * deg2rad
	C = ((1.914602-T*(0.004817+0.000014*T))*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)) * deg2rad
	return
}

// meeusSunEcliptic returns the Sun's apparent ecliptic longitude (radians,
// nutation-corrected per Meeus Eq. 25.8's node term) and its distance from
// Earth in AU, at T Julian centuries from J2000 TT.
func meeusSunEcliptic(T float64) (apparentLonRad, distAU float64) {
	L0 := (280.46646 + T*(36000.76983+0.0003032*T)) * deg2rad
	C, M := sunEquationOfCenterAndAnomaly(T)
	trueLon := L0 + C

	omega := (125.04 - 1934.136*T) * deg2rad
	apparentLonRad = trueLon - 0.00569*deg2rad - 0.00478*deg2rad*math.Sin(omega)

	e := 0.016708634 - T*(0.000042037+0.0000001267*T)
	nu := M + C
	distAU = 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))
	return
}

// MeeusSunGCRS returns the Sun's geocentric position (km, ICRF≈GCRS) at TT
// Julian date jdTT, via the Meeus Ch.25 low-precision series.
//
// Like MeeusMoonGCRS, meeusSunEcliptic's apparent longitude is referred to
// the equinox of date; rotating it by the date's mean obliquity alone lands
// in the equatorial frame of date, not GCRS. Qᵀ(jdTT) removes exactly the
// precession+nutation that frames.GCRSToITRS's Q will reapply downstream,
// so the result here is true GCRS, matching SPKProvider's frame.
func MeeusSunGCRS(jdTT float64) numkit.Vec3 {
	T := (jdTT - j2000JD) / 36525.0
	lonRad, distAU := meeusSunEcliptic(T)
	eps := meanObliquityRad(T)

	distKm := distAU * auKm
	// The Sun's ecliptic latitude is negligible (<1.2"); treat it as 0.
	xEcl := distKm * math.Cos(lonRad)
	yEcl := distKm * math.Sin(lonRad)

	sinEps, cosEps := math.Sincos(eps)
	ofDate := numkit.Vec3{
		xEcl,
		yEcl * cosEps,
		yEcl * sinEps,
	}
	return frames.CelestialMotionMatrix(jdTT).Transpose().MulVec3(ofDate)
}
