// Package timescale implements the full time-scale chain needed by the
// rest of the core: civil time → Julian date, UTC→TAI→TT→TDB, and TT↔UT1.
//
// All conversions are pure functions of a Julian date (plus, for TT↔UT1,
// optional caller-supplied overrides) — there is no package-level mutable
// state here, only the bundled leap-second table, which is read-only after
// init.
package timescale

import (
	"math"
	"time"
)

// J2000 is the Julian date of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// DaysPerJulianCentury is the number of days in a Julian century.
const DaysPerJulianCentury = 36525.0

// SecPerDay is the number of SI seconds in a day.
const SecPerDay = 86400.0

// TimeToJDUTC converts a civil instant to a UTC Julian date.
// dateToJD(instant) = instant_unix_ms/86_400_000 + 2_440_587.5.
func TimeToJDUTC(t time.Time) float64 {
	unixMs := float64(t.Unix())*1000 + float64(t.Nanosecond())/1e6
	return unixMs/86400000.0 + 2440587.5
}

// JDUTCToTime is the exact inverse of TimeToJDUTC.
func JDUTCToTime(jdUTC float64) time.Time {
	unixMs := (jdUTC - 2440587.5) * 86400000.0
	sec := int64(unixMs / 1000)
	nsec := int64((unixMs - float64(sec)*1000) * 1e6)
	return time.Unix(sec, nsec).UTC()
}

// Scales is an immutable record of every time scale for a single instant.
type Scales struct {
	UTC      time.Time
	JDUTC    float64
	JDTT     float64
	JDTDB    float64
	JDUT1    float64
	DeltaT   float64 // TT - UT1, seconds
	DeltaAT  float64 // TAI - UTC, seconds
}

// Overrides supplies caller-known UT1 corrections in place of the bundled
// ΔT model; at most one of DeltaT or UT1UTC should be set.
type Overrides struct {
	DeltaT *float64 // TT - UT1, seconds
	UT1UTC *float64 // UT1 - UTC, seconds
	Table  *LeapSecondTable
}

// Compute builds a full Scales record for a UTC instant, applying any
// supplied overrides.
func Compute(t time.Time, ov Overrides) Scales {
	jdUTC := TimeToJDUTC(t)

	table := &defaultLeapSeconds
	if ov.Table != nil {
		table = ov.Table
	}
	deltaAT := table.Offset(jdUTC)

	jdTAI := jdUTC + deltaAT/SecPerDay
	jdTT := jdTAI + 32.184/SecPerDay
	tdbMinusTT := TDBMinusTT(jdTT)
	jdTDB := jdTT + tdbMinusTT/SecPerDay

	var jdUT1 float64
	var deltaT float64
	switch {
	case ov.UT1UTC != nil:
		jdUT1 = jdUTC + *ov.UT1UTC/SecPerDay
		deltaT = (jdTT - jdUT1) * SecPerDay
	case ov.DeltaT != nil:
		deltaT = *ov.DeltaT
		jdUT1 = jdTT - deltaT/SecPerDay
	default:
		year := 2000.0 + (jdTT-J2000)/365.25
		deltaT = DeltaT(year)
		jdUT1 = jdTT - deltaT/SecPerDay
	}

	return Scales{
		UTC:     t,
		JDUTC:   jdUTC,
		JDTT:    jdTT,
		JDTDB:   jdTDB,
		JDUT1:   jdUT1,
		DeltaT:  deltaT,
		DeltaAT: deltaAT,
	}
}

// UTCToTT converts a UTC Julian date directly to a TT Julian date using the
// bundled leap-second table. This is a convenience wrapper for callers that
// only need the UTC→TT step, matching the SPICE/Skyfield-style function
// name the rest of the corpus uses.
func UTCToTT(jdUTC float64) float64 {
	deltaAT := defaultLeapSeconds.Offset(jdUTC)
	jdTAI := jdUTC + deltaAT/SecPerDay
	return jdTAI + 32.184/SecPerDay
}

// TTToUT1 converts a TT Julian date to UT1 using the bundled Espenak-Meeus
// ΔT polynomial (no override).
func TTToUT1(jdTT float64) float64 {
	year := 2000.0 + (jdTT-J2000)/365.25
	dt := DeltaT(year)
	return jdTT - dt/SecPerDay
}

// LeapSecondOffset returns TAI-UTC in seconds for a UTC Julian date, using
// the bundled table.
func LeapSecondOffset(jdUTC float64) float64 {
	return defaultLeapSeconds.Offset(jdUTC)
}

// TDBMinusTT returns TDB-TT in seconds for a TT Julian date, per the
// two-term periodic correction used to match SPICE.
func TDBMinusTT(jdTT float64) float64 {
	const degToRad = math.Pi / 180.0
	g := (357.53 + 0.9856003*(jdTT-J2000)) * degToRad
	return 0.001658*math.Sin(g) + 0.000014*math.Sin(2*g)
}

// JDTTtoET converts a TT Julian date to ET seconds past J2000 TDB, the time
// argument SPK Chebyshev records expect.
func JDTTtoET(jdTT float64) float64 {
	return (jdTT-J2000)*SecPerDay + TDBMinusTT(jdTT)
}
