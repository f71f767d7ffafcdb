// Package bodies provides geocentric Moon and Sun positions (SPK-backed or
// kernel-free Meeus approximation), illumination geometry, and crescent
// width, behind a single Provider interface so the rest of the core does
// not care which source supplied a position.
package bodies

import (
	"github.com/crescentlab/moonsight/numkit"
	"github.com/crescentlab/moonsight/spk"
	"github.com/crescentlab/moonsight/timescale"
)

// Provider supplies geocentric Moon and Sun positions (km, ICRF≈GCRS) at a
// TT Julian date. The kernel-backed and kernel-free paths both implement
// this so downstream code (observer, events, visibility) is agnostic to
// the source.
type Provider interface {
	Provide(jdTT float64) (moonGCRS, sunGCRS numkit.Vec3, err error)
}

// SPKProvider supplies positions from a parsed DE44xS-class kernel.
type SPKProvider struct {
	Kernel *spk.Kernel
}

// Provide returns moonGCRS(et) = spk.State(Moon, Earth, et) and
// sunGCRS(et) = spk.State(Sun, Earth, et), where et is jdTT converted to
// seconds past J2000 TDB.
func (p SPKProvider) Provide(jdTT float64) (moonGCRS, sunGCRS numkit.Vec3, err error) {
	et := timescale.JDTTtoET(jdTT)

	moon, err := p.Kernel.State(spk.Moon, spk.Earth, et)
	if err != nil {
		return numkit.Vec3{}, numkit.Vec3{}, err
	}
	sun, err := p.Kernel.State(spk.Sun, spk.Earth, et)
	if err != nil {
		return numkit.Vec3{}, numkit.Vec3{}, err
	}
	return moon.Position, sun.Position, nil
}

// MeeusProvider supplies positions from the kernel-free Meeus Ch.25/Ch.47
// series, used when no ephemeris kernel is loaded.
type MeeusProvider struct{}

// Provide returns moonGCRS, sunGCRS computed from the Meeus low-precision
// series; it never fails.
func (MeeusProvider) Provide(jdTT float64) (moonGCRS, sunGCRS numkit.Vec3, err error) {
	return MeeusMoonGCRS(jdTT), MeeusSunGCRS(jdTT), nil
}
