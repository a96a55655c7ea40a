package tmerc

import (
	"errors"
	"math"
)

// Newton-iteration tolerances for the exact projection.
var (
	exactTol    = epsilon
	exactTol2   = 0.1 * exactTol
	exactTaytol = math.Pow(exactTol, 0.6)
)

const exactNumit = 10

// TransverseMercatorExact implements the transverse Mercator projection
// exactly, using Thompson's formulation in terms of Jacobi elliptic
// functions and elliptic integrals (Lee 1976).  Unlike the series
// formulation it is valid for all points on the ellipsoid, at the cost of
// roughly a five-fold slowdown, and it requires a strictly oblate ellipsoid
// (flattening above about 0.002 for full accuracy).
//
// With extendp the projection domain is extended past the usual boundaries
// so that a full hemisphere-plus can be mapped continuously; the parity
// folding applied in the standard domain is then suppressed.
type TransverseMercatorExact struct {
	a  float64 // equatorial radius
	f  float64 // flattening
	k0 float64 // central scale factor

	mu float64 // squared eccentricity, the elliptic parameter of eu
	mv float64 // 1 - mu, the parameter of ev
	e  float64 // eccentricity

	extendp bool

	eu ellipticFunction
	ev ellipticFunction
}

// NewTransverseMercatorExact constructs the exact transverse Mercator
// projection for an ellipsoid with the given equatorial radius (meters),
// flattening and central scale factor.
func NewTransverseMercatorExact(equatorialRadius, flattening, scale float64, extendp bool) (*TransverseMercatorExact, error) {
	t := &TransverseMercatorExact{
		a:       equatorialRadius,
		f:       flattening,
		k0:      scale,
		extendp: extendp,
	}
	if !(isfinite(t.a) && t.a > 0) {
		return nil, errors.New("equatorial radius is not positive")
	}
	if !(t.f > 0) {
		return nil, errors.New("flattening is not positive")
	}
	if !(t.f < 1) {
		return nil, errors.New("polar semi-axis is not positive")
	}
	if !(isfinite(t.k0) && t.k0 > 0) {
		return nil, errors.New("scale is not positive")
	}
	t.mu = t.f * (2 - t.f)
	t.mv = 1 - t.mu
	t.e = math.Sqrt(t.mu)
	t.eu = newEllipticFunction(t.mu)
	t.ev = newEllipticFunction(t.mv)
	return t, nil
}

// EquatorialRadius returns the equatorial radius of the ellipsoid.
func (t *TransverseMercatorExact) EquatorialRadius() float64 { return t.a }

// Flattening returns the flattening of the ellipsoid.
func (t *TransverseMercatorExact) Flattening() float64 { return t.f }

// CentralScale returns the scale factor on the central meridian.
func (t *TransverseMercatorExact) CentralScale() float64 { return t.k0 }

// zeta computes (taup, lam) = (tan(chi), longitude) from the Jacobi
// elliptic functions of the Thompson coordinates (u, v); Lee 54.17, but
// written in terms of asinh to preserve accuracy near the singularities.
func (t *TransverseMercatorExact) zeta(snu, cnu, dnu, snv, cnv, dnv float64) (taup, lam float64) {
	overflow := 1 / sq(epsilon)
	// atanh(snu*dnv) = asinh(snu*dnv / sqrt(cnu^2 + mv*snu^2*snv^2))
	// atanh(e*snu/dnv) = atanh(e*snu*dnv / sqrt(mu*cnu^2 + mv*cnv^2))
	d1 := math.Sqrt(sq(cnu) + t.mv*sq(snu*snv))
	d2 := math.Sqrt(t.mu*sq(cnu) + t.mv*sq(cnv))
	var t1, t2 float64
	if d1 != 0 {
		t1 = snu * dnv / d1
	} else {
		t1 = math.Copysign(overflow, snu)
	}
	if d2 != 0 {
		t2 = math.Sinh(t.e * math.Asinh(t.e*snu/d2))
	} else {
		t2 = math.Copysign(overflow, snu)
	}
	// psi = asinh(t1) - asinh(t2), taup = sinh(psi)
	taup = t1*math.Hypot(1, t2) - t2*math.Hypot(1, t1)
	if d1 != 0 && d2 != 0 {
		lam = math.Atan2(dnu*snv, cnu*cnv) -
			t.e*math.Atan2(t.e*cnu*snv, dnu*cnv)
	}
	return taup, lam
}

// dwdzeta computes the conjugate of dw/dzeta at (u, v); Lee 54.21, but
// writing 1 - dnu^2*snv^2 = cnv^2 + mu*snu^2*snv^2.
func (t *TransverseMercatorExact) dwdzeta(snu, cnu, dnu, snv, cnv, dnv float64) (du, dv float64) {
	d := t.mv * sq(sq(cnv)+t.mu*sq(snu*snv))
	du = cnu * dnu * dnv * (sq(cnv) - t.mu*sq(snu*snv)) / d
	dv = -snu * snv * cnv * (sq(dnu*dnv) + t.mu*sq(cnu)) / d
	return du, dv
}

// zetainv0 produces a starting guess for the inversion of zeta.  done
// reports that the guess is within round-off of the true result and the
// Newton refinement can be skipped.
func (t *TransverseMercatorExact) zetainv0(psi, lam float64) (u, v float64, done bool) {
	switch {
	case psi < -t.e*math.Pi/4 && lam > (1-2*t.e)*math.Pi/2 &&
		psi < lam-(1-t.e)*math.Pi/2:
		// There's a log singularity at w = w0 = Eu.K() + i*Ev.K(),
		// corresponding to the south pole, where we have, approximately
		//   psi = e + i*pi/2 - e*atanh(cos(i*(w - w0)/(1 + mu/2)))
		// Inverting this gives the guess below.  (This branch is normally
		// not taken because Forward converts psi < 0 to psi > 0.)
		psix := 1 - psi/t.e
		lamx := (math.Pi/2 - lam) / t.e
		u = math.Asinh(math.Sin(lamx)/math.Hypot(math.Cos(lamx), math.Sinh(psix))) *
			(1 + t.mu/2)
		v = math.Atan2(math.Cos(lamx), math.Sinh(psix)) * (1 + t.mu/2)
		u = t.eu.K() - u
		v = t.ev.K() - v
	case psi < t.e*math.Pi/2 && lam > (1-2*t.e)*math.Pi/2:
		// At w = w0 = i*Ev.K() we have zeta = zeta0 = i*(1 - e)*pi/2 with
		// zeta' = zeta'' = 0, so zeta = zeta0 - (mv*e)/3 * (w - w0)^3 and
		// the cube root maps arg(zeta - zeta0) = [-90, 180] onto
		// arg(w - w0) = [-90, 0] as required.
		dlam := lam - (1-t.e)*math.Pi/2
		rad := math.Hypot(psi, dlam)
		ang := math.Atan2(dlam-psi, psi+dlam) - 0.75*math.Pi
		// The error in this guess is about 0.21*(rad/e)^(5/3).
		done = rad < t.e*exactTaytol
		rad = math.Cbrt(3 / (t.mv * t.e) * rad)
		ang /= 3
		u = rad * math.Cos(ang)
		v = rad*math.Sin(ang) + t.ev.K()
	default:
		// Use the spherical TM, Lee 12.6, writing
		// atanh(sin(lam)/cosh(psi)) = asinh(sin(lam)/hypot(cos(lam),
		// sinh(psi))).  This takes care of the log singularity at
		// zeta = Eu.K() (the north pole).
		v = math.Asinh(math.Sin(lam) / math.Hypot(math.Cos(lam), math.Sinh(psi)))
		u = math.Atan2(math.Sinh(psi), math.Cos(lam))
		// But scale to put 90, 0 in the right place.
		u *= t.eu.K() / (math.Pi / 2)
		v *= t.eu.K() / (math.Pi / 2)
	}
	return u, v, done
}

// zetainv inverts zeta by two-dimensional Newton iteration.
func (t *TransverseMercatorExact) zetainv(taup, lam float64) (u, v float64) {
	psi := math.Asinh(taup)
	scal := 1 / math.Hypot(1, taup)
	var done bool
	if u, v, done = t.zetainv0(psi, lam); done {
		return u, v
	}
	stol2 := exactTol2 / sq(math.Max(psi, 1))
	// min iterations = 2, max iterations = 6; mean = 4.0
	for i, trip := 0, 0; i < exactNumit; i++ {
		snu, cnu, dnu := t.eu.sncndn(u)
		snv, cnv, dnv := t.ev.sncndn(v)
		tau1, lam1 := t.zeta(snu, cnu, dnu, snv, cnv, dnv)
		du1, dv1 := t.dwdzeta(snu, cnu, dnu, snv, cnv, dnv)
		tau1 -= taup
		lam1 -= lam
		tau1 *= scal
		delu := tau1*du1 - lam1*dv1
		delv := tau1*dv1 + lam1*du1
		u -= delu
		v -= delv
		if trip > 0 {
			break
		}
		delw2 := sq(delu) + sq(delv)
		if !(delw2 >= stol2) {
			trip++
		}
	}
	return u, v
}

// sigma computes the normalized plane coordinates (xi, eta) from the
// Jacobi elliptic functions of (u, v); Lee 55.4, writing
// dnu^2 + dnv^2 - 1 = mu*cnu^2 + mv*cnv^2.
func (t *TransverseMercatorExact) sigma(v, snu, cnu, dnu, snv, cnv, dnv float64) (xi, eta float64) {
	d := t.mu*sq(cnu) + t.mv*sq(cnv)
	xi = t.eu.einc(snu, cnu, dnu) - t.mu*snu*cnu*dnu/d
	eta = v - t.ev.einc(snv, cnv, dnv) + t.mv*snv*cnv*dnv/d
	return xi, eta
}

// dwdsigma computes the conjugate of dw/dsigma at (u, v); Lee 55.9,
// using 1 - dnu^2*snv^2 = cnv^2 + mu*snu^2*snv^2.
func (t *TransverseMercatorExact) dwdsigma(snu, cnu, dnu, snv, cnv, dnv float64) (du, dv float64) {
	d := t.mv * sq(sq(cnv)+t.mu*sq(snu*snv))
	dnr := dnu * cnv * dnv
	dni := -t.mu * snu * cnu * snv
	du = (sq(dnr) - sq(dni)) / d
	dv = 2 * dnr * dni / d
	return du, dv
}

// sigmainv0 produces a starting guess for the inversion of sigma; done as
// for zetainv0.
func (t *TransverseMercatorExact) sigmainv0(xi, eta float64) (u, v float64, done bool) {
	switch {
	case eta > 1.25*t.ev.KE() || (xi < -0.25*t.eu.E() && xi < eta-t.ev.KE()):
		// sigma has a simple pole at w = w0 = Eu.K() + i*Ev.K(), around
		// which sigma = (Eu.E() + i*Ev.KE()) + 1/(w - w0).
		x := xi - t.eu.E()
		y := eta - t.ev.KE()
		r2 := sq(x) + sq(y)
		u = t.eu.K() + x/r2
		v = t.ev.K() - y/r2
	case (eta > 0.75*t.ev.KE() && xi < 0.25*t.eu.E()) || eta > t.ev.KE():
		// At w = w0 = i*Ev.K() we have sigma = sigma0 = i*Ev.KE() with
		// sigma' = sigma'' = 0, so sigma = sigma0 - mv/3 * (w - w0)^3 and
		// the cube root maps arg(sigma - sigma0) = [-90, 180] onto
		// arg(w - w0) = [-90, 0] as required.
		deta := eta - t.ev.KE()
		rad := math.Hypot(xi, deta)
		ang := math.Atan2(deta-xi, xi+deta) - 0.75*math.Pi
		// The error in this guess is about 0.068*rad^(5/3).
		done = rad < 2*exactTaytol
		rad = math.Cbrt(3 / t.mv * rad)
		ang /= 3
		u = rad * math.Cos(ang)
		v = rad*math.Sin(ang) + t.ev.K()
	default:
		// Else use w = sigma * Eu.K()/Eu.E(), which is correct in the
		// limit e -> 0.
		u = xi * t.eu.K() / t.eu.E()
		v = eta * t.eu.K() / t.eu.E()
	}
	return u, v, done
}

// sigmainv inverts sigma by two-dimensional Newton iteration.
func (t *TransverseMercatorExact) sigmainv(xi, eta float64) (u, v float64) {
	var done bool
	if u, v, done = t.sigmainv0(xi, eta); done {
		return u, v
	}
	// min iterations = 2, max iterations = 7; mean = 3.9
	for i, trip := 0, 0; i < exactNumit; i++ {
		snu, cnu, dnu := t.eu.sncndn(u)
		snv, cnv, dnv := t.ev.sncndn(v)
		xi1, eta1 := t.sigma(v, snu, cnu, dnu, snv, cnv, dnv)
		du1, dv1 := t.dwdsigma(snu, cnu, dnu, snv, cnv, dnv)
		xi1 -= xi
		eta1 -= eta
		delu := xi1*du1 - eta1*dv1
		delv := xi1*dv1 + eta1*du1
		u -= delu
		v -= delv
		if trip > 0 {
			break
		}
		delw2 := sq(delu) + sq(delv)
		if !(delw2 >= exactTol2) {
			trip++
		}
	}
	return u, v
}

// scale computes the point scale relative to k0; Lee 55.12, negated for
// this sign convention.
func (t *TransverseMercatorExact) scale(tau, snu, cnu, dnu, snv, cnv, dnv float64) float64 {
	sec2 := 1 + sq(tau) // sec(phi)^2
	// mv*snv^2 + cnu^2*dnv^2 = 1 - dnu^2*snv^2
	return math.Sqrt(t.mv+t.mu/sec2) * math.Sqrt(sec2) *
		math.Sqrt((t.mv*sq(snv)+sq(cnu*dnv))/(t.mu*sq(cnu)+t.mv*sq(cnv)))
}

// Forward projects (lat, lon) for the projection centered on the meridian
// lon0, all in degrees, returning easting, northing, convergence and scale
// as for TransverseMercator.Forward.
func (t *TransverseMercatorExact) Forward(lon0, lat, lon float64) (x, y, gamma, k float64) {
	lat = latFix(lat)
	lon = angDiff(lon0, lon)
	// Explicitly enforce the parity (suppressed on the extended domain).
	latsign := 1.0
	if !t.extendp && math.Signbit(lat) {
		latsign = -1
	}
	lonsign := 1.0
	if !t.extendp && math.Signbit(lon) {
		lonsign = -1
	}
	lon *= lonsign
	lat *= latsign
	backside := !t.extendp && lon > 90
	if backside {
		if lat == 0 {
			latsign = -1
		}
		lon = 180 - lon
	}
	lam := lon * degree
	tau := tand(lat)

	// (u, v) are the coordinates of Thompson's projection, Lee 54.
	var u, v float64
	switch {
	case lat == 90:
		u = t.eu.K()
		v = 0
	case lat == 0 && lon == 90*(1-t.e):
		// The other singular point, where the equator meets the branch
		// cut.
		u = 0
		v = t.ev.K()
	default:
		u, v = t.zetainv(taupf(tau, t.e), lam)
	}

	snu, cnu, dnu := t.eu.sncndn(u)
	snv, cnv, dnv := t.ev.sncndn(v)

	xi, eta := t.sigma(v, snu, cnu, dnu, snv, cnv, dnv)
	if backside {
		xi = 2*t.eu.E() - xi
	}
	y = xi * t.a * t.k0 * latsign
	x = eta * t.a * t.k0 * lonsign

	if lat == 90 {
		gamma = lon
		k = 1
	} else {
		// Recompute (tau, lam) from (u, v) to improve the accuracy of
		// gamma and k.
		var taup float64
		taup, lam = t.zeta(snu, cnu, dnu, snv, cnv, dnv)
		tau = tauf(taup, t.e)
		// Lee 55.6, negated for this sign convention: gamma gives the
		// bearing of grid north clockwise from true north.
		gamma = atan2d(t.mv*snu*snv*cnv, cnu*dnu*dnv)
		k = t.scale(tau, snu, cnu, dnu, snv, cnv, dnv)
	}
	if backside {
		gamma = 180 - gamma
	}
	gamma *= latsign * lonsign
	gamma = angNormalize(gamma)
	k *= t.k0
	return x, y, gamma, k
}

// Reverse computes (lat, lon) from easting x and northing y for the
// projection centered on the meridian lon0, returning convergence and
// scale as for TransverseMercator.Reverse.
func (t *TransverseMercatorExact) Reverse(lon0, x, y float64) (lat, lon, gamma, k float64) {
	xi := y / (t.a * t.k0)
	eta := x / (t.a * t.k0)
	// Explicitly enforce the parity (suppressed on the extended domain).
	xisign := 1.0
	if !t.extendp && math.Signbit(xi) {
		xisign = -1
	}
	etasign := 1.0
	if !t.extendp && math.Signbit(eta) {
		etasign = -1
	}
	xi *= xisign
	eta *= etasign
	backside := !t.extendp && xi > t.eu.E()
	if backside {
		xi = 2*t.eu.E() - xi
	}

	var u, v float64
	if xi == 0 && eta == t.ev.KE() {
		u = 0
		v = t.ev.K()
	} else {
		u, v = t.sigmainv(xi, eta)
	}

	snu, cnu, dnu := t.eu.sncndn(u)
	snv, cnv, dnv := t.ev.sncndn(v)

	if v != 0 || u != t.eu.K() {
		taup, lam := t.zeta(snu, cnu, dnu, snv, cnv, dnv)
		tau := tauf(taup, t.e)
		lat = atand(tau)
		lon = lam / degree
		gamma = atan2d(t.mv*snu*snv*cnv, cnu*dnu*dnv)
		k = t.scale(tau, snu, cnu, dnu, snv, cnv, dnv)
	} else {
		lat = 90
		lon = 0
		gamma = 0
		k = 1
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
