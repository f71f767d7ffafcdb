package observer

import (
	"math"

	"github.com/crescentlab/moonsight/numkit"
)

// ENUBasis returns the local east, north, up unit vectors (in ECEF
// coordinates) at geodetic latitude/longitude (degrees).
func ENUBasis(latDeg, lonDeg float64) (east, north, up numkit.Vec3) {
	lat := latDeg * deg2rad
	lon := lonDeg * deg2rad
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	east = numkit.Vec3{-sinLon, cosLon, 0}
	north = numkit.Vec3{-sinLat * cosLon, -sinLat * sinLon, cosLat}
	up = numkit.Vec3{cosLat * cosLon, cosLat * sinLon, sinLat}
	return
}

// ECEFToENU projects an ECEF displacement vector onto the local ENU basis
// at geodetic latitude/longitude (degrees). The units of the returned
// components match those of delta.
func ECEFToENU(delta numkit.Vec3, latDeg, lonDeg float64) (e, n, u float64) {
	east, north, up := ENUBasis(latDeg, lonDeg)
	return delta.Dot(east), delta.Dot(north), delta.Dot(up)
}

// AzAltFromENU returns azimuth (degrees, 0-360, 0=North increasing toward
// East) and altitude (degrees) from ENU components.
func AzAltFromENU(east, north, up float64) (azDeg, altDeg float64) {
	azDeg = math.Mod(math.Atan2(east, north)*rad2deg+360.0, 360.0)
	altDeg = math.Atan2(up, math.Sqrt(east*east+north*north)) * rad2deg
	return
}
