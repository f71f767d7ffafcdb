package bodies

import "math"

const synodicMonthK = 1.0 / 1236.85

// meanPhaseJDE returns the mean JDE of a lunar phase event at Ek Julian
// centuries (k/1236.85), Meeus Eq. 49.1.
func meanPhaseJDE(Ek float64) float64 {
	return 2451550.09766 + 29.530588861/synodicMonthK*Ek +
		Ek*Ek*(0.00015437+Ek*(-0.00000015+Ek*0.00000000073))
}

// snapK returns k (an integer for new moon, integer+0.5 for full moon)
// nearest decimal year, Meeus Eq. 49.2.
func snapK(year, q float64) float64 {
	k := (year - 2000) * 12.3685
	return math.Floor(k-q+0.5) + q
}

type moonPhaseArgs struct {
	k, T               float64
	E, M, Mp, F, Omega float64
}

func newMoonPhaseArgs(year, q float64) moonPhaseArgs {
	k := snapK(year, q)
	T := k * synodicMonthK
	a := moonPhaseArgs{k: k, T: T}
	a.E = 1 - 0.002516*T - 0.0000074*T*T
	a.M = (2.5534 + 29.1053567/synodicMonthK*T - 0.0000014*T*T - 0.00000011*T*T*T) * deg2rad
	a.Mp = (201.5643 + 385.81693528/synodicMonthK*T + 0.0107582*T*T + 0.00001238*T*T*T - 0.000000058*T*T*T*T) * deg2rad
	a.F = (160.7108 + 390.67050284/synodicMonthK*T - 0.0016118*T*T - 0.00000227*T*T*T + 0.000000011*T*T*T*T) * deg2rad
	a.Omega = (124.7746 - 1.56375588/synodicMonthK*T + 0.0020672*T*T + 0.00000215*T*T*T) * deg2rad
	return a
}

// newFullCorrection applies the published 25-term new/full-moon
// correction (Meeus p.351), c being the new- or full-moon coefficient
// table.
func (a moonPhaseArgs) newFullCorrection(c *[25]float64) float64 {
	M, Mp, F, E := a.M, a.Mp, a.F, a.E
	return c[0]*math.Sin(Mp) +
		c[1]*math.Sin(M)*E +
		c[2]*math.Sin(2*Mp) +
		c[3]*math.Sin(2*F) +
		c[4]*math.Sin(Mp-M)*E +
		c[5]*math.Sin(Mp+M)*E +
		c[6]*math.Sin(2*M)*E*E +
		c[7]*math.Sin(Mp-2*F) +
		c[8]*math.Sin(Mp+2*F) +
		c[9]*math.Sin(2*Mp+M)*E +
		c[10]*math.Sin(3*Mp) +
		c[11]*math.Sin(M+2*F)*E +
		c[12]*math.Sin(M-2*F)*E +
		c[13]*math.Sin(2*Mp-M)*E +
		c[14]*math.Sin(a.Omega) +
		c[15]*math.Sin(Mp+2*M) +
		c[16]*math.Sin(2*(Mp-F)) +
		c[17]*math.Sin(3*M) +
		c[18]*math.Sin(Mp+M-2*F) +
		c[19]*math.Sin(2*(Mp+F)) +
		c[20]*math.Sin(Mp+M+2*F) +
		c[21]*math.Sin(Mp-M+2*F) +
		c[22]*math.Sin(Mp-M-2*F) +
		c[23]*math.Sin(3*Mp+M) +
		c[24]*math.Sin(4*Mp)
}

var newMoonCoeffs = [25]float64{
	-0.4072, 0.17241, 0.01608, 0.01039, 0.00739,
	-0.00514, 0.00208, -0.00111, -0.00057, 0.00056,
	-0.00042, 0.00042, 0.00038, -0.00024, -0.00017,
	-0.00007, 0.00004, 0.00004, 0.00003, 0.00003,
	-0.00003, 0.00003, -0.00002, -0.00002, 0.00002,
}

var fullMoonCoeffs = [25]float64{
	-0.40614, 0.17302, 0.01614, 0.01043, 0.00734,
	-0.00515, 0.00209, -0.00111, -0.00057, 0.00056,
	-0.00042, 0.00042, 0.00038, -0.00024, -0.00017,
	-0.00007, 0.00004, 0.00004, 0.00003, 0.00003,
	-0.00003, 0.00003, -0.00002, -0.00002, 0.00002,
}

var planetaryCoeffs = [14]float64{
	0.000325, 0.000165, 0.000164, 0.000126, 0.00011,
	0.000062, 0.00006, 0.000056, 0.000047, 0.000042,
	0.00004, 0.000037, 0.000035, 0.000023,
}

// planetaryArgs computes the 14 planetary argument angles A1..A14 used in
// the additional-correction term, Meeus p.351.
func planetaryArgs(k, T float64) [14]float64 {
	return [14]float64{
		(299.77 + 0.107408*k - 0.009173*T*T) * deg2rad,
		(251.88 + 0.016321*k) * deg2rad,
		(251.83 + 26.651886*k) * deg2rad,
		(349.42 + 36.412478*k) * deg2rad,
		(84.66 + 18.206239*k) * deg2rad,
		(141.74 + 53.303771*k) * deg2rad,
		(207.17 + 2.453732*k) * deg2rad,
		(154.84 + 7.30686*k) * deg2rad,
		(34.52 + 27.261239*k) * deg2rad,
		(207.19 + 0.121824*k) * deg2rad,
		(291.34 + 1.844379*k) * deg2rad,
		(161.72 + 24.198154*k) * deg2rad,
		(239.56 + 25.513099*k) * deg2rad,
		(331.55 + 3.592518*k) * deg2rad,
	}
}

func additionalCorrection(k, T float64) float64 {
	args := planetaryArgs(k, T)
	var a float64
	for i, c := range planetaryCoeffs {
		a += c * math.Sin(args[i])
	}
	return a
}

// NearestNewMoon returns the JDE of the New Moon nearest the given decimal
// year, Meeus Ch.49.
func NearestNewMoon(year float64) float64 {
	a := newMoonPhaseArgs(year, 0)
	return meanPhaseJDE(a.k*synodicMonthK) + a.newFullCorrection(&newMoonCoeffs) + additionalCorrection(a.k, a.T)
}

// NearestFullMoon returns the JDE of the Full Moon nearest the given
// decimal year, Meeus Ch.49 (k snapped to a half-integer).
func NearestFullMoon(year float64) float64 {
	a := newMoonPhaseArgs(year, 0.5)
	return meanPhaseJDE(a.k*synodicMonthK) + a.newFullCorrection(&fullMoonCoeffs) + additionalCorrection(a.k, a.T)
}
