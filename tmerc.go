// Package tmerc implements the ellipsoidal transverse Mercator projection
// (Gauss-Krüger) using Krüger's series expressed in terms of the
// transverse Mercator projection of the conformal sphere, following
// Karney (2011), "Transverse Mercator with an accuracy of a few
// nanometers".  Both the forward and reverse projections return the
// meridian convergence and point scale in addition to the projected
// coordinates.
//
// An alternative exact formulation in terms of elliptic functions is
// available; see TransverseMercatorExact.
package tmerc

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"
)

// TransverseMercator projects geographic coordinates (latitude and
// longitude relative to a central meridian) to easting/northing and back.
// The zero value is not usable; construct with NewTransverseMercator.  A
// constructed projection is immutable and safe for concurrent use.
type TransverseMercator struct {
	a  float64 // equatorial radius
	f  float64 // flattening
	k0 float64 // central scale factor

	e2  float64 // squared eccentricity, f*(2-f)
	es  float64 // signed eccentricity
	e2m float64 // 1 - e2
	c   float64 // scale at the pole relative to k0
	n   float64 // third flattening, f/(2-f)

	b1  float64 // ratio of rectifying radius to equatorial radius
	a1  float64 // rectifying radius, b1*a
	alp [tmOrder + 1]float64
	bet [tmOrder + 1]float64

	// Non-nil when the elliptic-function formulation was requested; the
	// series machinery above is bypassed entirely.
	exact *TransverseMercatorExact
}

// NewTransverseMercator constructs a transverse Mercator projection for an
// ellipsoid with the given equatorial radius (in meters), flattening and
// central scale factor.  If exact is true, conversions are delegated to a
// TransverseMercatorExact built from the same parameters; extendp (an
// extended domain of validity) is only available in that case.
func NewTransverseMercator(equatorialRadius, flattening, scale float64, exact, extendp bool) (*TransverseMercator, error) {
	t := &TransverseMercator{
		a:  equatorialRadius,
		f:  flattening,
		k0: scale,
	}
	t.e2 = t.f * (2 - t.f)
	t.es = math.Sqrt(math.Abs(t.e2))
	if t.f < 0 {
		t.es = -t.es
	}
	t.e2m = 1 - t.e2
	// c = sqrt( pow(1 + e, 1 + e) * pow(1 - e, 1 - e) ); see Lee (1976), p 100
	t.c = math.Sqrt(t.e2m) * math.Exp(eatanhe(1, t.es))
	t.n = t.f / (2 - t.f)

	if exact {
		ex, err := NewTransverseMercatorExact(equatorialRadius, flattening, scale, extendp)
		if err != nil {
			return nil, err
		}
		t.exact = ex
		return t, nil
	}
	if !(isfinite(t.a) && t.a > 0) {
		return nil, errors.New("equatorial radius is not positive")
	}
	if !(isfinite(t.f) && t.f < 1) {
		return nil, errors.New("polar semi-axis is not positive")
	}
	if !(isfinite(t.k0) && t.k0 > 0) {
		return nil, errors.New("scale is not positive")
	}
	if extendp {
		return nil, errors.New("extended domain requires the exact algorithm")
	}

	t.b1 = generateCoefficients(t.n, t.alp[:], t.bet[:])
	// a1 is the equivalent radius for computing the circumference of the
	// ellipse.
	t.a1 = t.b1 * t.a
	return t, nil
}

// EquatorialRadius returns the equatorial radius of the ellipsoid.
func (t *TransverseMercator) EquatorialRadius() float64 { return t.a }

// Flattening returns the flattening of the ellipsoid.
func (t *TransverseMercator) Flattening() float64 { return t.f }

// CentralScale returns the scale factor on the central meridian.
func (t *TransverseMercator) CentralScale() float64 { return t.k0 }

// clenshaw sums the trigonometric series with coefficients coeff[1..order]
// and its derivative series in a single backward pass.  a2 is 2*cos(2*zeta)
// as a complex number.  The returned sum0 is the b[1] accumulator of the
// series (to be multiplied by sin(2*zeta) by the caller) and deriv is the
// completed derivative sum.  When negate is true the coefficients enter the
// recurrence negated (the reverted series used by Reverse).
//
// The recurrence is b[k] = a2*b[k+1] - b[k+2] + coeff[k], evaluated two
// coefficients per loop iteration.  The order of operations is significant
// for the rounding behavior and must not be rearranged.
func clenshaw(a2 complex128, coeff []float64, negate bool) (sum0, deriv complex128) {
	sign := 1.0
	if negate {
		sign = -1
	}
	n := len(coeff) - 1
	var y0, y1, z0, z1 complex128
	if n&1 == 1 {
		y0 = complex(sign*coeff[n], 0)
		z0 = complex(sign*2*float64(n)*coeff[n], 0)
		n--
	}
	for n > 0 {
		y1 = a2*y0 - y1 + complex(sign*coeff[n], 0)
		z1 = a2*z0 - z1 + complex(sign*2*float64(n)*coeff[n], 0)
		n--
		y0 = a2*y1 - y0 + complex(sign*coeff[n], 0)
		z0 = a2*z1 - z0 + complex(sign*2*float64(n)*coeff[n], 0)
		n--
	}
	a := a2 / 2 // cos(2*zeta)
	deriv = 1 - z1 + a*z0
	return y0, deriv
}

// Forward projects the point at (lat, lon) for the projection centered on
// the meridian lon0 (all in degrees).  It returns the easting x and
// northing y in meters, the meridian convergence gamma in degrees and the
// point scale k.  No false easting or northing is applied, so a point on
// the central meridian has x = 0 and a point on the equator has y = 0.
func (t *TransverseMercator) Forward(lon0, lat, lon float64) (x, y, gamma, k float64) {
	if t.exact != nil {
		return t.exact.Forward(lon0, lat, lon)
	}
	lat = latFix(lat)
	lon = angDiff(lon0, lon)
	// Explicitly enforce the parity.
	latsign := 1.0
	if math.Signbit(lat) {
		latsign = -1
	}
	lonsign := 1.0
	if math.Signbit(lon) {
		lonsign = -1
	}
	lon *= lonsign
	lat *= latsign
	backside := lon > 90
	if backside {
		if lat == 0 {
			latsign = -1
		}
		lon = 180 - lon
	}
	sphi, cphi := sincosd(lat)
	slam, clam := sincosd(lon)
	// phi = latitude, phi' = conformal latitude, psi = isometric latitude,
	// tau = tan(phi), tau' = tan(phi') = sinh(psi).
	// [xi', eta'] are the Gauss-Schreiber coordinates on the conformal
	// sphere; [xi, eta] the Gauss-Krüger coordinates.
	var xip, etap float64
	if lat != 90 {
		tau := sphi / cphi
		taup := taupf(tau, t.es)
		xip = math.Atan2(taup, clam)
		etap = math.Asinh(slam / math.Hypot(taup, clam))
		// Convergence and scale for Gauss-Schreiber TM; Krüger p 22 (44).
		gamma = atan2d(slam*taup, clam*math.Hypot(1, taup))
		// This form of k has cancelling errors; the property is lost if
		// 1/hypot(taup, clam) is replaced by cos(phi')*cosh(eta').
		k = math.Sqrt(t.e2m+t.e2*sq(cphi)) * math.Hypot(1, tau) /
			math.Hypot(taup, clam)
	} else {
		xip = math.Pi / 2
		etap = 0
		gamma = lon
		k = t.c
	}
	// zeta' = xi' + i*eta'.  The conversion from conformal to rectifying
	// latitude is zeta = zeta' + sum(alp[j]*sin(2*j*zeta')), summed by
	// Clenshaw's method together with its derivative.
	c0, s0 := math.Cos(2*xip), math.Sin(2*xip)
	ch0, sh0 := math.Cosh(2*etap), math.Sinh(2*etap)
	a2 := complex(2*c0*ch0, -2*s0*sh0) // 2 * cos(2*zeta')
	y0, z1 := clenshaw(a2, t.alp[:], false)
	a := complex(s0*ch0, c0*sh0) // sin(2*zeta')
	y1 := complex(xip, etap) + a*y0
	// Fold in the change in convergence and scale from Gauss-Schreiber to
	// Gauss-Krüger.
	gamma -= atan2d(imag(z1), real(z1))
	k *= t.b1 * cmplx.Abs(z1)
	xi, eta := real(y1), imag(y1)
	if backside {
		xi = math.Pi - xi
	}
	y = t.a1 * t.k0 * xi * latsign
	x = t.a1 * t.k0 * eta * lonsign
	if backside {
		gamma = 180 - gamma
	}
	gamma *= latsign * lonsign
	gamma = angNormalize(gamma)
	k *= t.k0
	return x, y, gamma, k
}

// Reverse computes the point at easting x, northing y (in meters) for the
// projection centered on the meridian lon0.  It returns the latitude and
// longitude in degrees, the meridian convergence gamma in degrees and the
// point scale k.  This is the exact inverse of Forward up to the
// truncation error of the series.
func (t *TransverseMercator) Reverse(lon0, x, y float64) (lat, lon, gamma, k float64) {
	if t.exact != nil {
		return t.exact.Reverse(lon0, x, y)
	}
	// This undoes the steps in Forward.  The wrinkles are: (1) use of the
	// reverted series to express zeta' in terms of zeta; (2) Newton's
	// method to solve for phi in terms of tan(phi).
	xi := y / (t.a1 * t.k0)
	eta := x / (t.a1 * t.k0)
	// Explicitly enforce the parity.
	xisign := 1.0
	if math.Signbit(xi) {
		xisign = -1
	}
	etasign := 1.0
	if math.Signbit(eta) {
		etasign = -1
	}
	xi *= xisign
	eta *= etasign
	backside := xi > math.Pi/2
	if backside {
		xi = math.Pi - xi
	}
	c0, s0 := math.Cos(2*xi), math.Sin(2*xi)
	ch0, sh0 := math.Cosh(2*eta), math.Sinh(2*eta)
	a2 := complex(2*c0*ch0, -2*s0*sh0) // 2 * cos(2*zeta)
	y0, z1 := clenshaw(a2, t.bet[:], true)
	a := complex(s0*ch0, c0*sh0) // sin(2*zeta)
	y1 := complex(xi, eta) + a*y0
	gamma = atan2d(imag(z1), real(z1))
	k = t.b1 / cmplx.Abs(z1)
	// JHS 154 has
	//   phi' = asin(sin(xi') / cosh(eta'))   (Krüger p 17 (25))
	//   lam = asin(tanh(eta') / cos(phi'))
	//   psi = asinh(tan(phi'))
	xip, etap := real(y1), imag(y1)
	s := math.Sinh(etap)
	c := math.Max(0, math.Cos(xip)) // cos(pi/2) might be negative
	r := math.Hypot(s, c)
	if r != 0 {
		lon = atan2d(s, c) // Krüger p 17 (25)
		sxip := math.Sin(xip)
		tau := tauf(sxip/r, t.es)
		gamma += atan2d(sxip*math.Tanh(etap), c) // Krüger p 19 (31)
		lat = atand(tau)
		// Note cos(phi') * cosh(eta') = r.
		k *= math.Sqrt(t.e2m+t.e2/(1+sq(tau))) * math.Hypot(1, tau) * r
	} else {
		lat = 90
		lon = 0
		k *= t.c
	}
	lat *= xisign
	if backside {
		lon = 180 - lon
	}
	lon *= etasign
	lon = angNormalize(lon + lon0)
	if backside {
		gamma = 180 - gamma
	}
	gamma *= xisign * etasign
	gamma = angNormalize(gamma)
	k *= t.k0
	return lat, lon, gamma, k
}

var (
	utmOnce sync.Once
	utmProj *TransverseMercator
)

// UTM returns the transverse Mercator projection used by the UTM grid: the
// WGS84 ellipsoid with a central scale factor of 0.9996.  The projection is
// created on first use and shared for the life of the process.
func UTM() *TransverseMercator {
	utmOnce.Do(func() {
		var err error
		utmProj, err = NewTransverseMercator(WGS84EquatorialRadius, WGS84Flattening,
			UTMCentralScale, false, false)
		if err != nil {
			panic(fmt.Sprintf("error constructing WGS84 transverse Mercator projection: %s", err))
		}
	})
	return utmProj
}
