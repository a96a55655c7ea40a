package tmerc

import "math"

// ellipticFunction bundles the elliptic integrals and Jacobi elliptic
// functions for a fixed squared modulus k2, with kp2 = 1 - k2 the squared
// complementary modulus.  The complete integrals are evaluated once at
// construction via Carlson's symmetric integrals.
type ellipticFunction struct {
	k2  float64
	kp2 float64
	kc  float64 // complete integral of the first kind, K(k)
	ec  float64 // complete integral of the second kind, E(k)
}

func newEllipticFunction(k2 float64) ellipticFunction {
	e := ellipticFunction{k2: k2, kp2: 1 - k2}
	if e.kp2 != 0 {
		e.kc = rf(0, e.kp2, 1)
		e.ec = 2 * rg(0, e.kp2, 1)
	} else {
		e.kc = math.Inf(1)
		e.ec = 1
	}
	return e
}

// K returns the complete elliptic integral of the first kind.
func (e *ellipticFunction) K() float64 { return e.kc }

// E returns the complete elliptic integral of the second kind.
func (e *ellipticFunction) E() float64 { return e.ec }

// KE returns K(k) - E(k).
func (e *ellipticFunction) KE() float64 { return e.kc - e.ec }

// rf computes Carlson's symmetric integral RF(x, y, z) by the duplication
// method (Carlson 1995, eqs 2.2-2.7); requires at most one of x, y, z to be
// zero.
func rf(x, y, z float64) float64 {
	tolRF := math.Pow(3*epsilon*0.01, 1./8)
	a0 := (x + y + z) / 3
	an := a0
	q := math.Max(math.Max(math.Abs(a0-x), math.Abs(a0-y)), math.Abs(a0-z)) / tolRF
	x0, y0, z0 := x, y, z
	mul := 1.0
	for q >= mul*math.Abs(an) {
		// Max 6 trips
		lam := math.Sqrt(x0)*math.Sqrt(y0) + math.Sqrt(y0)*math.Sqrt(z0) +
			math.Sqrt(z0)*math.Sqrt(x0)
		an = (an + lam) / 4
		x0 = (x0 + lam) / 4
		y0 = (y0 + lam) / 4
		z0 = (z0 + lam) / 4
		mul *= 4
	}
	xx := (a0 - x) / (mul * an)
	yy := (a0 - y) / (mul * an)
	zz := -(xx + yy)
	e2 := xx*yy - zz*zz
	e3 := xx * yy * zz
	// https://dlmf.nist.gov/19.36.E1
	return (1 - e2/10 + e3/14 + e2*e2/24 - 3*e2*e3/44 -
		5*e2*e2*e2/208 + 3*e3*e3/104 + e2*e2*e3/16) / math.Sqrt(an)
}

// rd computes Carlson's degenerate symmetric integral RD(x, y, z);
// requires z > 0 and at most one of x, y to be zero.
func rd(x, y, z float64) float64 {
	tolRD := math.Pow(0.2*epsilon*0.01, 1./8)
	a0 := (x + y + 3*z) / 5
	an := a0
	q := math.Max(math.Max(math.Abs(a0-x), math.Abs(a0-y)), math.Abs(a0-z)) / tolRD
	x0, y0, z0 := x, y, z
	mul := 1.0
	s := 0.0
	for q >= mul*math.Abs(an) {
		// Max 7 trips
		lam := math.Sqrt(x0)*math.Sqrt(y0) + math.Sqrt(y0)*math.Sqrt(z0) +
			math.Sqrt(z0)*math.Sqrt(x0)
		s += 1 / (mul * math.Sqrt(z0) * (z0 + lam))
		an = (an + lam) / 4
		x0 = (x0 + lam) / 4
		y0 = (y0 + lam) / 4
		z0 = (z0 + lam) / 4
		mul *= 4
	}
	xx := (a0 - x) / (mul * an)
	yy := (a0 - y) / (mul * an)
	zz := -(xx + yy) / 3
	e2 := xx*yy - 6*zz*zz
	e3 := (3*xx*yy - 8*zz*zz) * zz
	e4 := 3 * (xx*yy - zz*zz) * zz * zz
	e5 := xx * yy * zz * zz * zz
	// https://dlmf.nist.gov/19.36.E2
	return (1 - 3*e2/14 + e3/6 + 9*e2*e2/88 - 3*e4/22 -
		9*e2*e3/52 + 3*e5/26) / (mul * an * math.Sqrt(an)) + 3*s
}

// rg computes Carlson's symmetric integral RG(x, y, z); requires at most
// one of x, y, z to be zero.
func rg(x, y, z float64) float64 {
	if z == 0 {
		y, z = z, y
	}
	// Carlson, eq 1.7
	return (z*rf(x, y, z) - (x-z)*(y-z)*rd(x, y, z)/3 + math.Sqrt(x*y/z)) / 2
}

// sncndn computes the Jacobi elliptic functions sn(x, k), cn(x, k) and
// dn(x, k) by Bulirsch's descending transformation (Bulirsch 1965, p 89).
func (e *ellipticFunction) sncndn(x float64) (sn, cn, dn float64) {
	tolJAC := math.Sqrt(epsilon * 0.01)
	if e.kp2 != 0 {
		mc := e.kp2
		var m, nn [13]float64
		var c float64
		l := 0
		for a := 1.0; l < len(m); l++ {
			// This converges quadratically; max 5 trips.
			m[l] = a
			mc = math.Sqrt(mc)
			nn[l] = mc
			c = (a + mc) / 2
			if !(math.Abs(a-mc) > tolJAC*a) {
				l++
				break
			}
			mc *= a
			a = c
		}
		x *= c
		sn = math.Sin(x)
		cn = math.Cos(x)
		dn = 1
		if sn != 0 {
			a := cn / sn
			c *= a
			for l--; l >= 0; l-- {
				b := m[l]
				a *= c
				c *= dn
				dn = (nn[l] + a) / (b + a)
				a = c / b
			}
			a = 1 / math.Hypot(1, c)
			if math.Signbit(sn) {
				sn = -a
			} else {
				sn = a
			}
			cn = c * sn
		}
	} else {
		sn = math.Tanh(x)
		cn = 1 / math.Cosh(x)
		dn = cn
	}
	return sn, cn, dn
}

// einc computes the incomplete integral of the second kind
// E(am(x, k), k) given sn = sn(x, k), cn = cn(x, k), dn = dn(x, k).
// Valid for 0 <= k2 <= 1.
func (e *ellipticFunction) einc(sn, cn, dn float64) float64 {
	cn2, dn2, sn2 := cn*cn, dn*dn, sn*sn
	var ei float64
	if cn2 != 0 {
		// https://dlmf.nist.gov/19.25.E10
		ei = math.Abs(sn) * (e.kp2*rf(cn2, dn2, 1) +
			e.k2*e.kp2*sn2*rd(cn2, 1, dn2)/3 +
			e.k2*math.Abs(cn)/dn)
	} else {
		ei = e.ec
	}
	// Enforce the usual trig-like symmetries.
	if math.Signbit(cn) {
		ei = 2*e.ec - ei
	}
	return math.Copysign(ei, sn)
}
