package observer

import (
	"github.com/crescentlab/moonsight/frames"
	"github.com/crescentlab/moonsight/numkit"
	"github.com/crescentlab/moonsight/timescale"
)

// Observer is a ground location and the atmospheric conditions used for
// refraction correction.
type Observer struct {
	Name         string
	LatDeg       float64
	LonDeg       float64
	HeightM      float64
	PressureMbar float64
	TempC        float64
}

// New returns an Observer at the given geodetic position with
// standard-atmosphere refraction conditions.
func New(name string, latDeg, lonDeg, heightM float64) Observer {
	return Observer{
		Name:         name,
		LatDeg:       latDeg,
		LonDeg:       lonDeg,
		HeightM:      heightM,
		PressureMbar: DefaultPressureMbar,
		TempC:        DefaultTempC,
	}
}

// ECEFMeters returns the observer's WGS84 ECEF position in meters.
func (o Observer) ECEFMeters() numkit.Vec3 {
	x, y, z := GeodeticToECEF(o.LatDeg, o.LonDeg, o.HeightM)
	return numkit.Vec3{x, y, z}
}

// ECEFKm returns the observer's WGS84 ECEF position in kilometers, the
// unit used throughout the rest of the core (spk, frames).
func (o Observer) ECEFKm() numkit.Vec3 {
	return o.ECEFMeters().Scale(1.0 / 1000.0)
}

// TopocentricAzAlt computes topocentric azimuth and altitude (degrees) and
// distance (km) of a body given its geocentric GCRS position (km), for
// observer obs at the instant described by ts. xp, yp are polar-motion
// coordinates in radians (0, 0 when unknown). When airless is false, the
// altitude is corrected for Bennett atmospheric refraction.
func TopocentricAzAlt(bodyGCRS numkit.Vec3, obs Observer, ts timescale.Scales, xp, yp float64, airless bool) (azDeg, altDeg, distKm float64) {
	bodyITRS := frames.GCRSToITRS(bodyGCRS, ts, xp, yp)
	delta := bodyITRS.Sub(obs.ECEFKm())

	e, n, u := ECEFToENU(delta, obs.LatDeg, obs.LonDeg)
	azDeg, altDeg = AzAltFromENU(e, n, u)
	distKm = delta.Norm()

	if !airless {
		altDeg = ApplyRefraction(altDeg, obs.PressureMbar, obs.TempC)
	}
	return
}
