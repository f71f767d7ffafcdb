package moonsight

import (
	"time"

	"github.com/crescentlab/moonsight/events"
	"github.com/crescentlab/moonsight/frames"
	"github.com/crescentlab/moonsight/observer"
	"github.com/crescentlab/moonsight/spk"
	"github.com/crescentlab/moonsight/timescale"
	"github.com/crescentlab/moonsight/visibility"
)

// SightingReport is the full crescent-sighting assembly for one observer
// and civil UTC date: the day's Sun/Moon events, whether a sighting
// attempt is possible at all, the chosen best time, and (when possible)
// the visibility geometry and the apparent Moon position at that time.
//
// When Events.Sunset or Events.Moonset is nil, every field below Events is
// left at its zero value, SightingPossible is false, and EphemerisSource
// is still reported — exactly per spec.md §7.
type SightingReport struct {
	Date             time.Time
	Observer         observer.Observer
	EphemerisSource  string // "DE442S" or "meeus-fallback"
	Events           events.SunMoonEvents
	SightingPossible bool
	BestTime         *time.Time
	Geometry         *visibility.Geometry
	MoonAzimuthDeg   *float64
	MoonAltitudeDeg  *float64 // apparent (refraction-applied)
	MoonDistanceKm   *float64
}

// overridesFrom builds a timescale.Overrides from the facade Options.
func overridesFrom(opts Options) timescale.Overrides {
	return timescale.Overrides{DeltaT: opts.DeltaT, UT1UTC: opts.UT1UTC}
}

// BuildSightingReport assembles a SightingReport for date (any instant of
// the desired civil UTC day), obs, and opts, against kernel (nil selects
// the kernel-free Meeus fallback). This is the pure, kernel-parameterized
// core of the Report facade function below.
func BuildSightingReport(kernel *spk.Kernel, date time.Time, obs observer.Observer, opts Options) (SightingReport, error) {
	midnight := utcMidnight(date)
	obs = applyAtmosphere(obs, opts)
	provider, source := providerFor(kernel)
	ov := overridesFrom(opts)

	evs, err := events.Compute(obs, provider, midnight, opts.XPRad, opts.YPRad, ov)
	if err != nil {
		return SightingReport{}, err
	}

	report := SightingReport{
		Date:            midnight,
		Observer:        obs,
		EphemerisSource: source,
		Events:          evs,
	}

	if evs.Sunset == nil || evs.Moonset == nil {
		return report, nil
	}

	bestTime := evs.BestTimeOptimized
	if opts.BestTimeMethod == BestTimeHeuristic || bestTime == nil {
		bestTime = evs.BestTimeHeuristic
	}
	if bestTime == nil {
		return report, nil
	}

	report.SightingPossible = true
	report.BestTime = bestTime

	ts := timescale.Compute(*bestTime, ov)
	moonGCRS, sunGCRS, err := provider.Provide(ts.JDTT)
	if err != nil {
		return SightingReport{}, err
	}

	moonITRS := frames.GCRSToITRS(moonGCRS, ts, opts.XPRad, opts.YPRad)
	sunITRS := frames.GCRSToITRS(sunGCRS, ts, opts.XPRad, opts.YPRad)
	obsECEF := obs.ECEFKm()
	moonDelta := moonITRS.Sub(obsECEF)
	sunDelta := sunITRS.Sub(obsECEF)

	moonE, moonN, moonU := observer.ECEFToENU(moonDelta, obs.LatDeg, obs.LonDeg)
	moonAz, moonAlt := observer.AzAltFromENU(moonE, moonN, moonU)

	sunE, sunN, sunU := observer.ECEFToENU(sunDelta, obs.LatDeg, obs.LonDeg)
	sunAz, sunAlt := observer.AzAltFromENU(sunE, sunN, sunU)

	lagMinutes := evs.Moonset.Sub(*evs.Sunset).Minutes()

	geometry := visibility.ComputeGeometry(moonAz, moonAlt, sunAz, sunAlt, moonDelta, sunDelta, lagMinutes)
	report.Geometry = &geometry

	apparentAz, apparentAlt, distKm := observer.TopocentricAzAlt(moonGCRS, obs, ts, opts.XPRad, opts.YPRad, false)
	report.MoonAzimuthDeg = &apparentAz
	report.MoonAltitudeDeg = &apparentAlt
	report.MoonDistanceKm = &distKm

	return report, nil
}

// Report builds a SightingReport using the currently installed active
// kernel (nil if none has been loaded via InitKernel).
func Report(date time.Time, obs observer.Observer, opts Options) (SightingReport, error) {
	return BuildSightingReport(ActiveKernel(), date, obs, opts)
}

// BuildEvents computes just the day's Sun/Moon events against kernel (nil
// selects the Meeus fallback), without the visibility geometry assembly.
func BuildEvents(kernel *spk.Kernel, date time.Time, obs observer.Observer, opts Options) (events.SunMoonEvents, error) {
	midnight := utcMidnight(date)
	obs = applyAtmosphere(obs, opts)
	provider, _ := providerFor(kernel)
	return events.Compute(obs, provider, midnight, opts.XPRad, opts.YPRad, overridesFrom(opts))
}

// Events computes the day's Sun/Moon events using the currently installed
// active kernel.
func Events(date time.Time, obs observer.Observer, opts Options) (events.SunMoonEvents, error) {
	return BuildEvents(ActiveKernel(), date, obs, opts)
}
