// Package events finds sunrise/sunset/twilight/moonrise/moonset instants
// and the best crescent-observation time over a civil day, by sampling
// topocentric altitude coarsely and refining sign-change brackets with
// Brent's method.
package events

import (
	"math"
	"time"

	"github.com/crescentlab/moonsight/bodies"
	"github.com/crescentlab/moonsight/frames"
	"github.com/crescentlab/moonsight/numkit"
	"github.com/crescentlab/moonsight/observer"
	"github.com/crescentlab/moonsight/timescale"
	"github.com/crescentlab/moonsight/visibility"
)

const (
	windowSeconds     = 28.0 * 3600.0
	coarseStepSeconds = 600.0
	brentTolSeconds   = 0.5
	bestTimeSamples   = 91
)

// direction is the altitude-crossing direction an event table row searches
// for: a body rising through its threshold, or setting through it.
type direction int

const (
	rising direction = iota
	setting
)

type bodyKind int

const (
	sunBody bodyKind = iota
	moonBody
)

type eventSpec struct {
	name         string
	body         bodyKind
	thresholdDeg float64
	dir          direction
}

// eventTable is spec.md §4.7's event table: body, altitude threshold, and
// crossing direction for each named event.
var eventTable = []eventSpec{
	{"sunrise", sunBody, -0.8333, rising},
	{"sunset", sunBody, -0.8333, setting},
	{"civilTwilightEnd", sunBody, -6.0, setting},
	{"nauticalTwilightEnd", sunBody, -12.0, setting},
	{"astronomicalTwilightEnd", sunBody, -18.0, setting},
	{"moonrise", moonBody, -0.8333, rising},
	{"moonset", moonBody, -0.8333, setting},
}

// SunMoonEvents is the full set of Sun/Moon altitude-crossing instants and
// derived best-observation times for one civil UTC day at one observer. A
// nil field means that event did not occur in the 28-hour search window
// (circumpolar or never-rising conditions).
type SunMoonEvents struct {
	Sunrise                 *time.Time
	Sunset                  *time.Time
	CivilTwilightEnd        *time.Time
	NauticalTwilightEnd     *time.Time
	AstronomicalTwilightEnd *time.Time
	Moonrise                *time.Time
	Moonset                 *time.Time
	BestTimeHeuristic       *time.Time
	BestTimeOptimized       *time.Time
	ObservationWindowStart  *time.Time
	ObservationWindowEnd    *time.Time
}

// Compute finds all events in eventTable plus the derived best times, over
// the 28-hour window starting at utcMidnight, for an observer tracked by
// provider. xp, yp are polar-motion coordinates in radians (0, 0 when
// unknown). ov carries caller-supplied ΔT/UT1-UTC overrides (zero value
// uses the bundled ΔT model).
func Compute(obs observer.Observer, provider bodies.Provider, utcMidnight time.Time, xp, yp float64, ov timescale.Overrides) (SunMoonEvents, error) {
	var out SunMoonEvents

	results := make(map[string]*time.Time, len(eventTable))
	for _, spec := range eventTable {
		threshold := spec.thresholdDeg
		f := func(tSec float64) (float64, error) {
			alt, err := altitudeAt(obs, provider, utcMidnight, spec.body, xp, yp, tSec, ov)
			if err != nil {
				return 0, err
			}
			return alt - threshold, nil
		}
		rootSec, err := findCrossing(f, spec.dir)
		if err != nil {
			return SunMoonEvents{}, err
		}
		if rootSec != nil {
			t := utcMidnight.Add(time.Duration(*rootSec * float64(time.Second)))
			results[spec.name] = &t
		} else {
			results[spec.name] = nil
		}
	}

	out.Sunrise = results["sunrise"]
	out.Sunset = results["sunset"]
	out.CivilTwilightEnd = results["civilTwilightEnd"]
	out.NauticalTwilightEnd = results["nauticalTwilightEnd"]
	out.AstronomicalTwilightEnd = results["astronomicalTwilightEnd"]
	out.Moonrise = results["moonrise"]
	out.Moonset = results["moonset"]

	out.BestTimeHeuristic = bestTimeHeuristic(out.Sunset, out.Moonset)

	best, err := bestTimeOptimized(obs, provider, out.Sunset, out.Moonset, xp, yp, ov)
	if err != nil {
		return SunMoonEvents{}, err
	}
	out.BestTimeOptimized = best

	tb := out.BestTimeOptimized
	if tb == nil {
		tb = out.BestTimeHeuristic
	}
	if tb != nil {
		start := tb.Add(-20 * time.Minute)
		end := tb.Add(20 * time.Minute)
		out.ObservationWindowStart = &start
		out.ObservationWindowEnd = &end
	}

	return out, nil
}

// altitudeAt returns the airless topocentric altitude (degrees) of the
// given body, tSec seconds after utcMidnight.
func altitudeAt(obs observer.Observer, provider bodies.Provider, utcMidnight time.Time, body bodyKind, xp, yp, tSec float64, ov timescale.Overrides) (float64, error) {
	t := utcMidnight.Add(time.Duration(tSec * float64(time.Second)))
	ts := timescale.Compute(t, ov)

	moonGCRS, sunGCRS, err := provider.Provide(ts.JDTT)
	if err != nil {
		return 0, err
	}

	bodyGCRS := sunGCRS
	if body == moonBody {
		bodyGCRS = moonGCRS
	}

	_, alt, _ := observer.TopocentricAzAlt(bodyGCRS, obs, ts, xp, yp, true)
	return alt, nil
}

// findCrossing samples f at 600-second steps across the 28-hour window,
// and refines the first bracket whose sign change matches dir with Brent
// to within 0.5 seconds. Returns nil (no error) if no matching crossing is
// found in the window.
func findCrossing(f func(float64) (float64, error), dir direction) (*float64, error) {
	n := int(windowSeconds/coarseStepSeconds) + 1

	prevT := 0.0
	prevV, err := f(prevT)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= n; i++ {
		t := float64(i) * coarseStepSeconds
		if t > windowSeconds {
			t = windowSeconds
		}

		v, err := f(t)
		if err != nil {
			return nil, err
		}

		if crossed(prevV, v, dir) {
			g := func(x float64) float64 {
				val, ferr := f(x)
				if ferr != nil {
					return math.NaN()
				}
				return val
			}
			rootSec, berr := numkit.Brent(g, prevT, t, brentTolSeconds)
			if berr == nil {
				return &rootSec, nil
			}
		}

		prevT, prevV = t, v
		if t >= windowSeconds {
			break
		}
	}

	return nil, nil
}

// crossed reports whether the step from prevV to v is a crossing in the
// requested direction.
func crossed(prevV, v float64, dir direction) bool {
	switch dir {
	case rising:
		return prevV < 0 && v >= 0
	case setting:
		return prevV >= 0 && v < 0
	default:
		return false
	}
}

// bestTimeHeuristic implements spec.md §4.7's "best time (heuristic)":
// T_b = T_sunset + (4/9)*(T_moonset - T_sunset), or nil if moonset does not
// follow sunset.
func bestTimeHeuristic(sunset, moonset *time.Time) *time.Time {
	if sunset == nil || moonset == nil || !moonset.After(*sunset) {
		return nil
	}
	lag := moonset.Sub(*sunset)
	t := sunset.Add(time.Duration(float64(lag) * 4.0 / 9.0))
	return &t
}

// bestTimeOptimized implements spec.md §4.7's "best time (optimized)":
// sample 91 points on [sunset, moonset], score each with the Odeh V
// criterion, and return the time of the argmax. The observer's ITRS
// position is fixed (it is geometrically time-independent); only the
// bodies' GCRS positions are recomputed per sample, since Earth's
// rotation changes the topocentric geometry from one sample to the next.
func bestTimeOptimized(obs observer.Observer, provider bodies.Provider, sunset, moonset *time.Time, xp, yp float64, ov timescale.Overrides) (*time.Time, error) {
	if sunset == nil || moonset == nil || !moonset.After(*sunset) {
		return nil, nil
	}

	span := moonset.Sub(*sunset)
	obsECEF := obs.ECEFKm()

	var bestT time.Time
	bestV := math.Inf(-1)
	found := false

	for i := 0; i < bestTimeSamples; i++ {
		frac := float64(i) / float64(bestTimeSamples-1)
		t := sunset.Add(time.Duration(float64(span) * frac))

		ts := timescale.Compute(t, ov)
		moonGCRS, sunGCRS, err := provider.Provide(ts.JDTT)
		if err != nil {
			return nil, err
		}

		moonITRS := frames.GCRSToITRS(moonGCRS, ts, xp, yp)
		sunITRS := frames.GCRSToITRS(sunGCRS, ts, xp, yp)
		moonDelta := moonITRS.Sub(obsECEF)
		sunDelta := sunITRS.Sub(obsECEF)

		_, moonAlt := azAltFromDelta(moonDelta, obs)
		_, sunAlt := azAltFromDelta(sunDelta, obs)

		arcl := angleBetweenDeg(moonDelta, sunDelta)
		w := bodies.CrescentWidthArcmin(moonDelta.Norm(), arcl)
		v := visibility.OdehV(moonAlt-sunAlt, w)

		if v > bestV {
			bestV = v
			bestT = t
			found = true
		}
	}

	if !found {
		return nil, nil
	}
	return &bestT, nil
}

func azAltFromDelta(delta numkit.Vec3, obs observer.Observer) (azDeg, altDeg float64) {
	e, n, u := observer.ECEFToENU(delta, obs.LatDeg, obs.LonDeg)
	return observer.AzAltFromENU(e, n, u)
}

// angleBetweenDeg returns the angle between a and b in degrees, using
// Kahan's numerically stable formula. Duplicated from bodies/visibility's
// unexported helpers of the same name (neither is exported for reuse).
func angleBetweenDeg(a, b numkit.Vec3) float64 {
	lenA := a.Norm()
	lenB := b.Norm()
	if lenA == 0 || lenB == 0 {
		return 0
	}
	u := a.Scale(lenB)
	v := b.Scale(lenA)
	return 2.0 * math.Atan2(u.Sub(v).Norm(), u.Add(v).Norm()) * 180.0 / math.Pi
}
