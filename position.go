package moonsight

import (
	"time"

	"github.com/crescentlab/moonsight/bodies"
	"github.com/crescentlab/moonsight/observer"
	"github.com/crescentlab/moonsight/timescale"
)

// MoonPositionResult is the kernel-free topocentric Moon position returned
// by MoonPosition.
type MoonPositionResult struct {
	Date        time.Time
	AzimuthDeg  float64
	AltitudeDeg float64 // apparent (refraction-applied)
	DistanceKm  float64
}

// MoonPosition returns the Moon's topocentric azimuth, altitude, and
// distance as seen from (lat, lon, elevM) at t (now, if nil), computed
// entirely from the kernel-free Meeus series (C2 + C6) and the observer
// geometry (C5); it never fails.
func MoonPosition(t *time.Time, lat, lon, elevM float64) MoonPositionResult {
	at := time.Now().UTC()
	if t != nil {
		at = t.UTC()
	}

	ts := timescale.Compute(at, timescale.Overrides{})
	moonGCRS := bodies.MeeusMoonGCRS(ts.JDTT)

	obs := observer.New("", lat, lon, elevM)
	az, alt, dist := observer.TopocentricAzAlt(moonGCRS, obs, ts, 0, 0, false)

	return MoonPositionResult{
		Date:        at,
		AzimuthDeg:  az,
		AltitudeDeg: alt,
		DistanceKm:  dist,
	}
}
