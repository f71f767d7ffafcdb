package numkit

import (
	"errors"
	"math"
)

// ErrBadBracket is returned by Brent when f(a) and f(b) do not straddle
// zero (same sign, neither exactly zero).
var ErrBadBracket = errors.New("numkit: a and b do not bracket a root")

// maxBrentIterations bounds Brent's method; well-conditioned astronomical
// root searches (rise/set crossings, phase boundaries) converge in well
// under this many iterations.
const maxBrentIterations = 64

// Brent finds a root of f in [a, b] to within tol, combining inverse
// quadratic interpolation (falling back to secant, falling back to
// bisection) the way Brent's method does. f(a) and f(b) must have
// opposite signs (or one of them must be exactly zero); otherwise
// ErrBadBracket is returned.
func Brent(f func(float64) float64, a, b, tol float64) (float64, error) {
	fa := f(a)
	fb := f(b)

	if fa*fb > 0 {
		return 0, ErrBadBracket
	}

	if math.Abs(fa) < math.Abs(fb) {
		a, b = b, a
		fa, fb = fb, fa
	}

	c, fc := a, fa
	mflag := true
	var d float64

	for i := 0; i < maxBrentIterations; i++ {
		if fb == 0 || math.Abs(b-a) < tol {
			return b, nil
		}

		var s float64
		if fa != fc && fb != fc {
			// Inverse quadratic interpolation.
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// Secant.
			s = b - fb*(b-a)/(fb-fa)
		}

		lo, hi := (3*a+b)/4, b
		if lo > hi {
			lo, hi = hi, lo
		}

		useBisection := s < lo || s > hi ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol)

		if useBisection {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}

		if math.Abs(fa) < math.Abs(fb) {
			a, b = b, a
			fa, fb = fb, fa
		}
	}

	return b, nil
}

// FindRoots scans [start, end] at step intervals looking for sign changes
// in f, then refines every bracket found with Brent to within tol. Roots
// closer together than tol are deduplicated. step must be small enough
// that no two roots fall within the same sampling interval.
func FindRoots(f func(float64) float64, start, end, step, tol float64) ([]float64, error) {
	if end <= start {
		return nil, errors.New("numkit: end must be after start")
	}
	if step <= 0 {
		return nil, errors.New("numkit: step must be positive")
	}

	n := int((end-start)/step) + 2
	ts := make([]float64, n)
	vs := make([]float64, n)
	for i := 0; i < n; i++ {
		t := start + float64(i)*step
		if t > end {
			t = end
		}
		ts[i] = t
		vs[i] = f(t)
	}

	var roots []float64
	for i := 0; i < n-1; i++ {
		if vs[i] == 0 {
			roots = append(roots, ts[i])
			continue
		}
		if vs[i]*vs[i+1] < 0 {
			r, err := Brent(f, ts[i], ts[i+1], tol)
			if err != nil {
				continue
			}
			roots = append(roots, r)
		}
	}

	return dedupRoots(roots, tol), nil
}

func dedupRoots(roots []float64, tol float64) []float64 {
	if len(roots) <= 1 {
		return roots
	}
	out := []float64{roots[0]}
	for i := 1; i < len(roots); i++ {
		if roots[i]-out[len(out)-1] > tol {
			out = append(out, roots[i])
		}
	}
	return out
}
