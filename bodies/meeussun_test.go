package bodies

import (
	"math"
	"testing"
	"time"

	"github.com/crescentlab/moonsight/timescale"
	"github.com/stretchr/testify/assert"
)

func eclipticLonDeg(v [3]float64, epsRad float64) float64 {
	// Approximate inverse of the equatorial<-ecliptic rotation used in
	// MeeusSunGCRS, ignoring the small Qᵀ(jdTT) precession-undo rotation
	// MeeusSunGCRS applies on top; good to a few tenths of a degree near
	// the current epoch, which is all these range checks need.
	sinEps, cosEps := math.Sincos(epsRad)
	yEcl := v[1]*cosEps + v[2]*sinEps
	xEcl := v[0]
	lon := math.Atan2(yEcl, xEcl) * rad2deg
	if lon < 0 {
		lon += 360
	}
	return lon
}

func TestMeeusSunDistanceWithinOneAU(t *testing.T) {
	ts := timescale.Compute(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), timescale.Overrides{})
	sun := MeeusSunGCRS(ts.JDTT)
	distAU := sun.Norm() / auKm
	assert.InDelta(t, 1.0, distAU, 0.02)
}

func TestMeeusSunLongitudeNearZeroAtMarchEquinox(t *testing.T) {
	ts := timescale.Compute(time.Date(2024, 3, 20, 3, 0, 0, 0, time.UTC), timescale.Overrides{})
	sun := MeeusSunGCRS(ts.JDTT)
	T := (ts.JDTT - j2000JD) / 36525.0
	eps := meanObliquityRad(T)
	lon := eclipticLonDeg([3]float64(sun), eps)
	// Allow a few degrees: equinox instant is approximate and the equation
	// of center contributes up to ~1.9 degrees either side.
	diff := math.Min(lon, 360-lon)
	assert.Less(t, diff, 3.0)
}

func TestMeeusSunLongitudeNearOneEightyAtSeptemberEquinox(t *testing.T) {
	ts := timescale.Compute(time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC), timescale.Overrides{})
	sun := MeeusSunGCRS(ts.JDTT)
	T := (ts.JDTT - j2000JD) / 36525.0
	eps := meanObliquityRad(T)
	lon := eclipticLonDeg([3]float64(sun), eps)
	assert.Less(t, math.Abs(lon-180), 3.0)
}

func TestMeeusSunLongitudeAdvancesOverADay(t *testing.T) {
	ts1 := timescale.Compute(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), timescale.Overrides{})
	ts2 := timescale.Compute(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), timescale.Overrides{})
	s1 := MeeusSunGCRS(ts1.JDTT)
	s2 := MeeusSunGCRS(ts2.JDTT)
	T1 := (ts1.JDTT - j2000JD) / 36525.0
	T2 := (ts2.JDTT - j2000JD) / 36525.0
	lon1 := eclipticLonDeg([3]float64(s1), meanObliquityRad(T1))
	lon2 := eclipticLonDeg([3]float64(s2), meanObliquityRad(T2))
	delta := math.Mod(lon2-lon1+360, 360)
	assert.InDelta(t, 0.9856, delta, 0.1)
}
