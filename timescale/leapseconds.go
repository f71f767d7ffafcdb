package timescale

// LeapSecondEntry is one (effective UTC Julian date, TAI-UTC) pair.
type LeapSecondEntry struct {
	JDUTC   float64
	DeltaAT float64
}

// LeapSecondTable is an ordered sequence of LeapSecondEntry, strictly
// increasing by JDUTC. Offset returns the largest entry with
// JDUTC <= query; below the first entry it returns 10 (the value in force
// when the leap-second era began on 1972-01-01).
type LeapSecondTable struct {
	entries []LeapSecondEntry
}

// Offset returns TAI-UTC in seconds for the UTC Julian date jdUTC.
func (t *LeapSecondTable) Offset(jdUTC float64) float64 {
	if len(t.entries) == 0 || jdUTC < t.entries[0].JDUTC {
		return 10
	}
	// entries is short (a few dozen rows); linear scan from the start is
	// simple and fast enough, and avoids importing sort for a table this
	// size.
	best := t.entries[0].DeltaAT
	for _, e := range t.entries {
		if e.JDUTC > jdUTC {
			break
		}
		best = e.DeltaAT
	}
	return best
}

// NewLeapSecondTable builds a table from entries, which must already be
// sorted by JDUTC ascending.
func NewLeapSecondTable(entries []LeapSecondEntry) *LeapSecondTable {
	cp := make([]LeapSecondEntry, len(entries))
	copy(cp, entries)
	return &LeapSecondTable{entries: cp}
}

// defaultLeapSeconds is the bundled table of every leap second announced by
// the IERS from the start of the leap-second era (1972-01-01) through the
// most recent one (2017-01-01); no leap second has been scheduled since.
var defaultLeapSeconds = LeapSecondTable{entries: []LeapSecondEntry{
	{2441317.5, 10}, // 1972-01-01
	{2441499.5, 11}, // 1972-07-01
	{2441682.5, 12}, // 1973-01-01
	{2442047.5, 13}, // 1974-01-01
	{2442412.5, 14}, // 1975-01-01
	{2442777.5, 15}, // 1976-01-01
	{2443143.5, 16}, // 1977-01-01
	{2443509.5, 17}, // 1978-01-01
	{2443874.5, 18}, // 1979-01-01
	{2444239.5, 19}, // 1980-01-01
	{2444786.5, 20}, // 1981-07-01
	{2445151.5, 21}, // 1982-07-01
	{2445516.5, 22}, // 1983-07-01
	{2446247.5, 23}, // 1985-07-01
	{2447161.5, 24}, // 1988-01-01
	{2447892.5, 25}, // 1990-01-01
	{2448257.5, 26}, // 1991-01-01
	{2448804.5, 27}, // 1992-07-01
	{2449169.5, 28}, // 1993-07-01
	{2449534.5, 29}, // 1994-07-01
	{2450083.5, 30}, // 1996-01-01
	{2450630.5, 31}, // 1997-07-01
	{2451179.5, 32}, // 1999-01-01
	{2453736.5, 33}, // 2006-01-01
	{2454832.5, 34}, // 2009-01-01
	{2456109.5, 35}, // 2012-07-01
	{2457204.5, 36}, // 2015-07-01
	{2457754.5, 37}, // 2017-01-01
}}
