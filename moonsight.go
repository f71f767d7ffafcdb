// Package moonsight is the facade: it composes timescale, frames, observer,
// bodies, events, and visibility into a single crescent-sighting report,
// and exposes three kernel-free operations (phase, position, illumination)
// that never fail because of a missing ephemeris kernel.
//
// The core is purely single-threaded and re-entrant: every exported
// function is a pure mapping from its inputs (plus an immutable *spk.Kernel,
// where one is used) to a fresh output value. The only mutable state this
// package holds is the optional process-wide active-kernel slot set by
// InitKernel and read by Report/Events; it is safe for concurrent use.
package moonsight

import (
	"sync/atomic"
	"time"

	"github.com/crescentlab/moonsight/bodies"
	"github.com/crescentlab/moonsight/observer"
	"github.com/crescentlab/moonsight/spk"
)

// activeKernel is the process-wide replaceable kernel slot described in
// spec.md §5 and §9: InitKernel swaps it atomically, so concurrent readers
// always see either the previous or the new kernel, never a torn pointer,
// and never take a lock.
var activeKernel atomic.Pointer[spk.Kernel]

// InitKernel parses kernel bytes and installs the result as the active
// kernel, replacing any previously loaded one. Subsequent calls to Report
// and Events use the new kernel.
func InitKernel(buf []byte) (*spk.Kernel, error) {
	k, err := spk.Open(buf)
	if err != nil {
		return nil, err
	}
	activeKernel.Store(k)
	return k, nil
}

// ActiveKernel returns the currently installed kernel, or nil if none has
// been loaded (in which case Report and Events fall back to the kernel-free
// Meeus provider).
func ActiveKernel() *spk.Kernel {
	return activeKernel.Load()
}

// BestTimeMethod selects which of spec.md §4.7's two best-time formulas a
// SightingReport uses.
type BestTimeMethod int

const (
	// BestTimeHeuristic uses T_b = T_sunset + (4/9)*(T_moonset - T_sunset).
	BestTimeHeuristic BestTimeMethod = iota
	// BestTimeOptimized samples ARCV/W across [sunset, moonset] and argmaxes
	// the Odeh V criterion.
	BestTimeOptimized
)

// Options configures a SightingReport/Events query.
type Options struct {
	BestTimeMethod BestTimeMethod

	// DeltaT, UT1UTC are caller-supplied UT1 corrections in place of the
	// bundled ΔT model; at most one should be set.
	DeltaT *float64
	UT1UTC *float64

	// PressureMbar, TempC are the observer's local atmospheric conditions
	// for refraction; zero values fall back to spec.md §6's standard
	// atmosphere defaults (1013.25 mbar, 15°C), which differ from the
	// observer package's own bare-ellipsoid defaults (1010 mbar, 10°C)
	// used when an Observer is built directly with observer.New.
	PressureMbar float64
	TempC        float64

	// XPRad, YPRad are polar-motion coordinates in radians; 0, 0 when
	// unknown (the common case outside sub-arcsecond work).
	XPRad, YPRad float64
}

// DefaultPressureMbar, DefaultTempC are spec.md §6's standard-atmosphere
// configuration defaults, distinct from observer.DefaultPressureMbar /
// observer.DefaultTempC (the teacher-grounded ellipsoid defaults used when
// constructing a bare Observer outside the facade).
const (
	DefaultPressureMbar = 1013.25
	DefaultTempC        = 15.0
)

// DefaultOptions returns the facade's default query configuration:
// optimized best time, standard atmosphere, no polar motion.
func DefaultOptions() Options {
	return Options{
		BestTimeMethod: BestTimeOptimized,
		PressureMbar:   DefaultPressureMbar,
		TempC:          DefaultTempC,
	}
}

// providerFor returns the Provider and its source tag for the given
// kernel: SPKProvider/"DE442S" if kernel is non-nil, otherwise
// MeeusProvider/"meeus-fallback". This is spec.md §9's "two operating
// modes... interchangeable behind one interface" switch, in one place.
func providerFor(kernel *spk.Kernel) (bodies.Provider, string) {
	if kernel != nil {
		return bodies.SPKProvider{Kernel: kernel}, "DE442S"
	}
	return bodies.MeeusProvider{}, "meeus-fallback"
}

// applyAtmosphere returns obs with its atmospheric fields set from opts,
// falling back to DefaultOptions' values when opts leaves them zero.
func applyAtmosphere(obs observer.Observer, opts Options) observer.Observer {
	if opts.PressureMbar != 0 {
		obs.PressureMbar = opts.PressureMbar
	} else {
		obs.PressureMbar = DefaultPressureMbar
	}
	if opts.TempC != 0 {
		obs.TempC = opts.TempC
	} else {
		obs.TempC = DefaultTempC
	}
	return obs
}

// utcMidnight truncates t to UTC midnight of its calendar day, the start of
// spec.md §4.7's 28-hour search window.
func utcMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
