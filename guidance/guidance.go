// Package guidance turns a moonsight.SightingReport into a short
// human-readable summary: whether the crescent is expected to be visible,
// to whom, and roughly when to look. It is a thin formatter at the repo's
// edge, not part of the scored-geometry core in visibility.
package guidance

import (
	"fmt"
	"time"

	"github.com/crescentlab/moonsight"
)

// yallopText maps a Yallop category to the classic interpretation used by
// moon-sighting committees.
var yallopText = map[string]string{
	"A": "easily visible to the naked eye",
	"B": "visible under perfect conditions",
	"C": "may need optical aid to find, then visible to the naked eye",
	"D": "requires optical aid to find",
	"E": "requires a telescope; the naked eye will not see it",
	"F": "not visible, even with a telescope",
}

// odehText maps an Odeh zone to its interpretation.
var odehText = map[string]string{
	"A": "easily visible to the naked eye",
	"B": "visible under good conditions",
	"C": "needs optical aid to find, then visible to the naked eye",
	"D": "not visible with a telescope",
}

// Summary is a short multi-line guidance text for report, in the teacher's
// plain fmt.Sprintf report-building style (see examples/almanac/main.go).
func Summary(report moonsight.SightingReport) string {
	if !report.SightingPossible {
		return fmt.Sprintf(
			"%s: no crescent sighting attempt is possible (sunset or moonset did not occur within the search window). Ephemeris: %s.",
			report.Date.Format("2006-01-02"), report.EphemerisSource,
		)
	}

	g := report.Geometry
	return fmt.Sprintf(
		"%s at %s: ARCV %.2f deg, DAZ %.2f deg, width %.2f arcmin, lag %.1f min.\n"+
			"Yallop category %s (q=%.3f) — %s.\n"+
			"Odeh zone %s (V=%.2f) — %s.\n"+
			"Best observation time: %s. Moon at %.1f deg azimuth, %.1f deg altitude, %.0f km away.",
		report.Date.Format("2006-01-02"), report.Observer.Name,
		g.ARCVDeg, g.DAZDeg, g.WArcmin, g.LagMinutes,
		g.YallopCategory, g.YallopQ, textOrUnknown(yallopText, g.YallopCategory),
		g.OdehZone, g.OdehV, textOrUnknown(odehText, g.OdehZone),
		formatTime(report.BestTime), *report.MoonAzimuthDeg, *report.MoonAltitudeDeg, *report.MoonDistanceKm,
	)
}

// Verdict returns a one-word overall call — "visible", "marginal", or
// "not-visible" — derived from the Yallop category, which is the more
// conservative of the two criteria near the margin.
func Verdict(report moonsight.SightingReport) string {
	if !report.SightingPossible || report.Geometry == nil {
		return "not-visible"
	}
	switch report.Geometry.YallopCategory {
	case "A", "B":
		return "visible"
	case "C", "D":
		return "marginal"
	default:
		return "not-visible"
	}
}

func textOrUnknown(m map[string]string, key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return "unknown category"
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format("2006-01-02 15:04:05 MST")
}
