package frames

import "math"

// cip computes the Celestial Intermediate Pole coordinates X, Y and the CIO
// locator s, in radians, at T (Julian centuries from J2000 TDB).
//
// X, Y combine the IAU 2006 precession polynomial (degree-5 in T, SOFA's
// iauXy06 series with the periodic terms dropped — the nutation correction
// is folded in separately below) with the nutation-in-longitude/obliquity
// computed from the reduced series in nutation.go. s follows the spec's
// linear approximation s ≈ −XY/2 − 0.041775″·T.
func cip(T float64) (x, y, s float64) {
	dpsi, deps := nutationAngles(T)
	eps0 := meanObliquity(T)

	xPrecArcsec := -0.016617 + T*(2004.191898+T*(-0.4297829+T*(-0.19861834+T*(0.000007578+T*0.0000059285))))
	yPrecArcsec := -0.006951 + T*(-0.025896+T*(-22.4072747+T*(0.00190059+T*(0.001112526+T*0.0000001358))))

	xPrec := xPrecArcsec * arcsec2rad
	yPrec := yPrecArcsec * arcsec2rad

	x = xPrec + dpsi*math.Sin(eps0)
	y = yPrec - deps

	sPolyArcsec := -0.041775 * T
	s = -x*y/2 + sPolyArcsec*arcsec2rad
	return
}
