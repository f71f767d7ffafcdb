package timescale

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var months = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// lskEntryPattern matches one DELTA_AT entry, e.g. "10, @1972-JAN-1",
// wherever it appears in the kernel text, independent of line breaks.
var lskEntryPattern = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*,\s*@([0-9]{1,4}-[A-Za-z]{3}-[0-9]{1,2})`)

// ParseLSK reads a NAIF leap-second kernel (text format) and extracts its
// DELTET/DELTA_AT entries, each a "(value, @YYYY-MON-DD)" pair, returning a
// LeapSecondTable sorted by effective date. Dates are converted to UTC
// Julian date at midnight.
func ParseLSK(r io.Reader) (*LeapSecondTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("timescale: reading LSK: %w", err)
	}

	matches := lskEntryPattern.FindAllStringSubmatch(string(data), -1)
	var entries []LeapSecondEntry
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		jd, err := parseLSKDate(m[2])
		if err != nil {
			continue
		}
		entries = append(entries, LeapSecondEntry{JDUTC: jd, DeltaAT: value})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("timescale: no DELTA_AT entries found in LSK")
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].JDUTC < entries[j].JDUTC })

	return NewLeapSecondTable(entries), nil
}

// parseLSKDate parses a NAIF "YYYY-MON-D" date (e.g. "1972-JAN-1") into a
// UTC Julian date at 0h.
func parseLSKDate(s string) (float64, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return 0, fmt.Errorf("timescale: malformed LSK date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	month, ok := months[strings.ToUpper(parts[1])]
	if !ok {
		return 0, fmt.Errorf("timescale: unknown month %q", parts[1])
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}

	return julianDayAt0h(year, month, day), nil
}

// julianDayAt0h returns the Julian date at 0h UT for a Gregorian calendar
// date, via the standard Meeus algorithm (Astronomical Algorithms, ch. 7).
func julianDayAt0h(year, month, day int) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return float64(int(365.25*float64(y+4716))) +
		float64(int(30.6001*float64(m+1))) +
		float64(day) + float64(b) - 1524.5
}
