// Package frames implements the IERS celestial-motion / Earth-rotation /
// polar-motion chain that carries a vector from the inertial GCRS frame to
// the Earth-fixed ITRS frame and back: ITRS = W · R · Q · GCRS.
package frames

import (
	"math"

	"github.com/crescentlab/moonsight/numkit"
	"github.com/crescentlab/moonsight/timescale"
)

const j2000JD = 2451545.0

// CelestialMotionMatrix returns Q, the CIO-based celestial-to-intermediate
// frame rotation built from the CIP coordinates (X, Y) and CIO locator s at
// jdTT. Q = Rz(-(e+s)) · Ry(d) · Rz(e), where e = atan2(Y,X) (0 when
// X²+Y²=0) and d = asin(sqrt(X²+Y²)).
func CelestialMotionMatrix(jdTT float64) numkit.Mat3 {
	T := (jdTT - j2000JD) / 36525.0
	x, y, s := cip(T)

	var e float64
	if x != 0 || y != 0 {
		e = math.Atan2(y, x)
	}
	r := math.Sqrt(x*x + y*y)
	if r > 1 {
		r = 1
	}
	d := math.Asin(r)

	return numkit.RotZ(-(e + s)).Mul(numkit.RotY(d)).Mul(numkit.RotZ(e))
}

// EarthRotationAngle returns the Earth Rotation Angle in radians for a
// given UT1 Julian date (IAU Resolution B1.8 of 2000).
func EarthRotationAngle(jdUT1 float64) float64 {
	du := jdUT1 - j2000JD
	era := math.Mod(0.7790572732640+1.00273781191135448*du, 1.0)
	if era < 0 {
		era += 1.0
	}
	return era * 2 * math.Pi
}

// EarthRotationMatrix returns R = Rz(ERA(jdUT1)).
func EarthRotationMatrix(jdUT1 float64) numkit.Mat3 {
	return numkit.RotZ(EarthRotationAngle(jdUT1))
}

// PolarMotionMatrix returns W = Ry(xp)·Rx(-yp), the polar motion rotation.
// xp, yp are the IERS Bulletin A pole coordinates in radians; both default
// to zero when unknown.
func PolarMotionMatrix(xp, yp float64) numkit.Mat3 {
	return numkit.RotY(xp).Mul(numkit.RotX(-yp))
}

// GCRSToITRS transforms v from GCRS to ITRS at the instant described by ts,
// using polar-motion coordinates xp, yp (radians; pass 0, 0 when unknown).
func GCRSToITRS(v numkit.Vec3, ts timescale.Scales, xp, yp float64) numkit.Vec3 {
	q := CelestialMotionMatrix(ts.JDTT)
	r := EarthRotationMatrix(ts.JDUT1)
	w := PolarMotionMatrix(xp, yp)
	return w.Mul(r).Mul(q).MulVec3(v)
}

// ITRSToGCRS is the inverse of GCRSToITRS: Qᵀ·Rᵀ·Wᵀ · v.
func ITRSToGCRS(v numkit.Vec3, ts timescale.Scales, xp, yp float64) numkit.Vec3 {
	q := CelestialMotionMatrix(ts.JDTT)
	r := EarthRotationMatrix(ts.JDUT1)
	w := PolarMotionMatrix(xp, yp)
	return q.Transpose().Mul(r.Transpose()).Mul(w.Transpose()).MulVec3(v)
}
