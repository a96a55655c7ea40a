package tmerc

import "math"

const degree = math.Pi / 180

// epsilon is the double-precision machine epsilon.
const epsilon = float64(7.)/3 - float64(4.)/3 - float64(1.)

// sincosd computes the sine and cosine of x given in degrees.  The argument
// is reduced exactly to [-45, 45] before the conversion to radians, so the
// results at multiples of 90 degrees are exact (and signed zeros come out
// right).
func sincosd(x float64) (sinx, cosx float64) {
	r := math.Remainder(x, 360)
	q := math.Round(r / 90)
	r -= 90 * q
	s, c := math.Sincos(r * degree)
	switch int64(q) & 3 {
	case 0:
		sinx, cosx = s, c
	case 1:
		sinx, cosx = c, -s
	case 2:
		sinx, cosx = -s, -c
	default:
		sinx, cosx = -c, s
	}
	if sinx == 0 {
		sinx = math.Copysign(sinx, x)
	}
	cosx += 0 // remove the minus sign on -0.0
	return sinx, cosx
}

// tand returns the tangent of x given in degrees.
func tand(x float64) float64 {
	s, c := sincosd(x)
	return s / c
}

// atan2d is atan2 with the result in degrees.  The arguments are folded so
// that atan2 operates in [-pi/4, pi/4], minimizing the round-off error, and
// the result is mapped back to the correct quadrant.
func atan2d(y, x float64) float64 {
	q := 0
	if math.Abs(y) > math.Abs(x) {
		x, y = y, x
		q = 2
	}
	if math.Signbit(x) {
		x = -x
		q++
	}
	ang := math.Atan2(y, x) / degree
	switch q {
	case 1:
		ang = math.Copysign(180, y) - ang
	case 2:
		ang = 90 - ang
	case 3:
		ang = -90 + ang
	}
	return ang
}

// atand is the arc tangent with the result in degrees.
func atand(x float64) float64 {
	return atan2d(x, 1)
}

// angNormalize reduces an angle in degrees to the range (-180, 180].
func angNormalize(x float64) float64 {
	x = math.Remainder(x, 360)
	if x == -180 {
		return 180
	}
	return x
}

// sum returns the error-free sum of u and v: u + v = s + t exactly, with
// s = round(u + v).
func sum(u, v float64) (s, t float64) {
	s = u + v
	up := s - v
	vpp := s - up
	up -= u
	vpp -= v
	t = -(up + vpp)
	return s, t
}

// angDiff computes y - x, reduced to (-180, 180], carrying the round-off
// through an error-free sum so that the result is exact whenever the
// difference is representable.
func angDiff(x, y float64) float64 {
	d, t := sum(angNormalize(-x), angNormalize(y))
	d = angNormalize(d)
	if d == 180 && t > 0 {
		d = -180
	}
	s, _ := sum(d, t)
	return s
}

// latFix returns x if it is a legal latitude and NaN otherwise.
func latFix(x float64) float64 {
	if math.Abs(x) > 90 {
		return math.NaN()
	}
	return x
}

// polyval evaluates the polynomial with coefficients p (highest degree
// first) at x using Horner's method.
func polyval(p []float64, x float64) (y float64) {
	for _, c := range p {
		y = y*x + c
	}
	return y
}

func sq(x float64) float64 { return x * x }

// eatanhe returns e*atanh(e*x) where e = sqrt(es^2); for a prolate ellipsoid
// (es < 0) this becomes -e*atan(e*x).
func eatanhe(x, es float64) float64 {
	if es > 0 {
		return es * math.Atanh(es*x)
	}
	return -es * math.Atan(es*x)
}

// taupf converts tau = tan(phi) to taup = tan(chi), the tangent of the
// conformal latitude, for an ellipsoid with signed eccentricity es.
func taupf(tau, es float64) float64 {
	if !isfinite(tau) {
		return tau
	}
	tau1 := math.Hypot(1, tau)
	sig := math.Sinh(eatanhe(tau/tau1, es))
	return math.Hypot(1, sig)*tau - sig*tau1
}

// tauf inverts taupf by Newton's method, converging to the fixed point of
// the forward mapping to near machine precision (1 or 2 iterations for any
// terrestrial eccentricity).
func tauf(taup, es float64) float64 {
	const numit = 5
	tol := math.Sqrt(epsilon) / 10
	taumax := 2 / math.Sqrt(epsilon)
	e2m := 1 - sq(es)
	// To lowest order in e^2, taup = (1 - e^2) * tau, so use tau = taup/e2m
	// as the starting guess.  Near phi = 90 this is replaced by the large
	// tau limit taup = exp(-e*atanh(e)) * tau.
	var tau float64
	if math.Abs(taup) > 70 {
		tau = taup * math.Exp(eatanhe(1, es))
	} else {
		tau = taup / e2m
	}
	if !(math.Abs(tau) < taumax) {
		return tau
	}
	for i := 0; i < numit; i++ {
		taupa := taupf(tau, es)
		dtau := (taup - taupa) * (1 + e2m*sq(tau)) /
			(e2m * math.Hypot(1, tau) * math.Hypot(1, taupa))
		tau += dtau
		if !(math.Abs(dtau) >= tol*(1+math.Abs(tau))) {
			break
		}
	}
	return tau
}

func isfinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
