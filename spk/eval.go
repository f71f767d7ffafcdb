package spk

import (
	"fmt"

	"github.com/crescentlab/moonsight/numkit"
)

// State returns the state of target relative to center at ephemeris time
// et (seconds past J2000 TDB), in km and km/s, ICRF≈GCRS.
//
// If the kernel has no direct segment for (target, center), State
// synthesizes one using the fixed chaining table (Moon-relative-Earth,
// Earth-relative-Moon, Sun-relative-Earth) or, failing that, the generic
// fallback of subtracting each body's state relative to the Solar System
// Barycenter. Returns ErrNoSegmentPath if no such path exists, or
// ErrOutOfRange if et falls outside every candidate segment's coverage.
func (k *Kernel) State(target, center int, et float64) (StateVector, error) {
	if segs, ok := k.segMap[[2]int{target, center}]; ok {
		return k.evalDirect(segs, et)
	}

	switch {
	case target == Moon && center == Earth:
		return k.chainedState(
			[2]int{Moon, EarthMoonBary},
			[2]int{Earth, EarthMoonBary},
			et)

	case target == Earth && center == Moon:
		sv, err := k.chainedState(
			[2]int{Moon, EarthMoonBary},
			[2]int{Earth, EarthMoonBary},
			et)
		if err != nil {
			return StateVector{}, err
		}
		return negate(sv), nil

	case target == Sun && center == Earth:
		return k.sunRelativeEarth(et)

	default:
		return k.genericFallback(target, center, et)
	}
}

// evalDirect evaluates a (target, center) pair that has a direct segment
// in the kernel, choosing the segment covering et.
func (k *Kernel) evalDirect(segs []*segment, et float64) (StateVector, error) {
	seg, err := findSegmentForET(segs, et)
	if err != nil {
		return StateVector{}, err
	}
	return evalSegment(seg, et), nil
}

// chainedState evaluates "a minus b" for two direct (target,center) keys,
// both of which must exist in the kernel.
func (k *Kernel) chainedState(a, b [2]int, et float64) (StateVector, error) {
	segsA, ok := k.segMap[a]
	if !ok {
		return StateVector{}, fmt.Errorf("%w: missing segment for %v", ErrNoSegmentPath, a)
	}
	segsB, ok := k.segMap[b]
	if !ok {
		return StateVector{}, fmt.Errorf("%w: missing segment for %v", ErrNoSegmentPath, b)
	}
	sa, err := k.evalDirect(segsA, et)
	if err != nil {
		return StateVector{}, err
	}
	sb, err := k.evalDirect(segsB, et)
	if err != nil {
		return StateVector{}, err
	}
	return subState(sa, sb), nil
}

// sunRelativeEarth implements "Sun relative to Earth = (Sun,SSB) -
// ((EMB,SSB) - (Earth,EMB))" from the fixed chaining table.
func (k *Kernel) sunRelativeEarth(et float64) (StateVector, error) {
	sunSSB, err := k.bodyStateWrtSSB(Sun, et)
	if err != nil {
		return StateVector{}, err
	}
	embSSB, err := k.bodyStateWrtSSB(EarthMoonBary, et)
	if err != nil {
		return StateVector{}, err
	}
	earthEMB, err := k.State(Earth, EarthMoonBary, et)
	if err != nil {
		return StateVector{}, err
	}
	// earthEMB is Earth relative to EMB; Earth relative to SSB = EMB rel SSB + Earth rel EMB.
	earthRelSSB := addState(embSSB, earthEMB)
	return subState(sunSSB, earthRelSSB), nil
}

// genericFallback implements "Generic (A,B) fallback: (A,SSB) - (B,SSB)".
func (k *Kernel) genericFallback(target, center int, et float64) (StateVector, error) {
	a, err := k.bodyStateWrtSSB(target, et)
	if err != nil {
		return StateVector{}, err
	}
	b, err := k.bodyStateWrtSSB(center, et)
	if err != nil {
		return StateVector{}, err
	}
	return subState(a, b), nil
}

// bodyStateWrtSSB walks the kernel's segment index from body to SSB (0),
// summing states along the way. Open builds the chain of every segment
// target in advance; for any other body the index is walked here.
func (k *Kernel) bodyStateWrtSSB(body int, et float64) (StateVector, error) {
	if body == SSB {
		return StateVector{}, nil
	}

	chain, ok := k.genericChain[body]
	if !ok {
		c, err := k.buildChain(body)
		if err != nil {
			return StateVector{}, err
		}
		chain = c
		k.genericChain[body] = c
	}

	var total StateVector
	for _, link := range chain {
		segs, ok := k.segMap[[2]int{link.target, link.center}]
		if !ok {
			return StateVector{}, fmt.Errorf("%w: chain link %v missing segment", ErrNoSegmentPath, link)
		}
		sv, err := k.evalDirect(segs, et)
		if err != nil {
			return StateVector{}, err
		}
		total = addState(total, sv)
	}
	return total, nil
}

// buildChain walks the segment index from body to SSB, following each
// target's recorded center, detecting cycles and missing links.
func (k *Kernel) buildChain(body int) ([]chainLink, error) {
	var path []chainLink
	visited := map[int]bool{}
	current := body

	for current != SSB {
		if visited[current] {
			return nil, fmt.Errorf("%w: cycle detected reaching body %d", ErrNoSegmentPath, body)
		}
		visited[current] = true

		center, ok := k.findCenterFor(current)
		if !ok {
			return nil, fmt.Errorf("%w: body %d has no segment", ErrNoSegmentPath, current)
		}
		path = append(path, chainLink{target: current, center: center})
		current = center
	}
	return path, nil
}

// findCenterFor returns the center body of any segment whose target is
// the given body.
func (k *Kernel) findCenterFor(target int) (int, bool) {
	for key := range k.segMap {
		if key[0] == target {
			return key[1], true
		}
	}
	return 0, false
}

// findSegmentForET returns the segment from segs covering et, or
// ErrOutOfRange if none does.
func findSegmentForET(segs []*segment, et float64) (*segment, error) {
	for _, seg := range segs {
		if et >= seg.startET && et <= seg.endET {
			return seg, nil
		}
	}
	return nil, fmt.Errorf("%w: et=%.3f not covered by any of %d segment(s)", ErrOutOfRange, et, len(segs))
}

// evalSegment evaluates a single Type 2 or Type 3 segment's Chebyshev
// records at ephemeris time et (seconds past J2000 TDB).
func evalSegment(seg *segment, et float64) StateVector {
	idx := int((et - seg.init) / seg.intlen)
	if idx < 0 {
		idx = 0
	}
	if idx >= seg.n {
		idx = seg.n - 1
	}

	recStart := idx * seg.rsize
	mid := seg.data[recStart]
	radius := seg.data[recStart+1]
	x := (et - mid) / radius
	nCoeffs := seg.degree + 1

	var pos, vel numkit.Vec3
	if seg.dataType == 2 {
		for comp := 0; comp < 3; comp++ {
			cStart := recStart + 2 + comp*nCoeffs
			coeffs := seg.data[cStart : cStart+nCoeffs]
			pos[comp] = numkit.Chebyshev(coeffs, x)
			vel[comp] = numkit.ChebyshevDerivative(coeffs, x) / radius
		}
	} else {
		for comp := 0; comp < 3; comp++ {
			posStart := recStart + 2 + comp*nCoeffs
			velStart := recStart + 2 + (3+comp)*nCoeffs
			pos[comp] = numkit.Chebyshev(seg.data[posStart:posStart+nCoeffs], x)
			vel[comp] = numkit.Chebyshev(seg.data[velStart:velStart+nCoeffs], x)
		}
	}

	return StateVector{Position: pos, Velocity: vel}
}

func subState(a, b StateVector) StateVector {
	return StateVector{Position: a.Position.Sub(b.Position), Velocity: a.Velocity.Sub(b.Velocity)}
}

func addState(a, b StateVector) StateVector {
	return StateVector{Position: a.Position.Add(b.Position), Velocity: a.Velocity.Add(b.Velocity)}
}

func negate(a StateVector) StateVector {
	return StateVector{Position: a.Position.Scale(-1), Velocity: a.Velocity.Scale(-1)}
}
