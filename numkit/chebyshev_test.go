package numkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChebyshevConstant(t *testing.T) {
	assert.Equal(t, 5.0, Chebyshev([]float64{5}, 0.3))
}

func TestChebyshevMatchesDirectSum(t *testing.T) {
	// f(s) = c0*T0(s) + c1*T1(s) + c2*T2(s) + c3*T3(s)
	// T0=1, T1=s, T2=2s^2-1, T3=4s^3-3s
	coeffs := []float64{1.5, -2.0, 0.75, 0.25}
	s := 0.4
	want := coeffs[0] + coeffs[1]*s + coeffs[2]*(2*s*s-1) + coeffs[3]*(4*s*s*s-3*s)
	assert.InDelta(t, want, Chebyshev(coeffs, s), 1e-12)
}

func TestChebyshevDerivativeMatchesNumericDifference(t *testing.T) {
	coeffs := []float64{1.5, -2.0, 0.75, 0.25, 0.1}
	s := 0.2
	h := 1e-6
	numeric := (Chebyshev(coeffs, s+h) - Chebyshev(coeffs, s-h)) / (2 * h)
	analytic := ChebyshevDerivative(coeffs, s)
	assert.InDelta(t, numeric, analytic, 1e-5)
}

func TestChebyshevDerivativeShortSeries(t *testing.T) {
	assert.Equal(t, 0.0, ChebyshevDerivative([]float64{3}, 0.5))
}

func TestChebyshevPureT2AtKnownPoints(t *testing.T) {
	// A pure T2 coefficient: T2(s) = 2s^2-1, so T2(1)=1 and T2(0)=-1.
	coeffs := []float64{0, 0, 1}
	assert.InDelta(t, 1.0, Chebyshev(coeffs, 1.0), 1e-12)
	assert.InDelta(t, -1.0, Chebyshev(coeffs, 0.0), 1e-12)
}
