package tmerc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treilly/tmerc"
)

func newExactProjection(t *testing.T, extendp bool) *tmerc.TransverseMercatorExact {
	t.Helper()
	tm, err := tmerc.NewTransverseMercatorExact(tmerc.WGS84EquatorialRadius,
		tmerc.WGS84Flattening, tmerc.UTMCentralScale, extendp)
	require.NoError(t, err)
	return tm
}

func TestExactReferenceVectors(t *testing.T) {
	tm := newExactProjection(t, false)
	vectors := []struct {
		lat, lon float64
		x, y     float64
		gamma, k float64
	}{
		{33.3, 44.4, 4274831.980338764, 4721401.4451253675, 28.322998742228208, 1.2330909126281266},
		// Beyond 90 degrees from the central meridian, where the series
		// formulation is not usable.
		{10.0, 120.0, 8091863.773558542, 17829873.370000288, 162.97715077246485, 1.9285171821230447},
		{85.0, 170.0, 96820.41263714481, 10547758.36975816, 170.0372890982235, 0.9997145049465456},
	}
	for _, v := range vectors {
		x, y, gamma, k := tm.Forward(0, v.lat, v.lon)
		assert.InDelta(t, v.x, x, 1e-5, "x at (%v, %v)", v.lat, v.lon)
		assert.InDelta(t, v.y, y, 1e-5, "y at (%v, %v)", v.lat, v.lon)
		assert.InDelta(t, v.gamma, gamma, 1e-9, "gamma at (%v, %v)", v.lat, v.lon)
		assert.InDelta(t, v.k, k, 1e-9, "k at (%v, %v)", v.lat, v.lon)
	}
}

func TestExactMatchesSeries(t *testing.T) {
	exact := newExactProjection(t, false)
	series := newUTMProjection(t)
	// The two formulations are independent; agreement to within a few
	// nanometers checks both.
	for lat := -85.0; lat <= 85; lat += 10 {
		for lon := 0.0; lon <= 40; lon += 8 {
			xs, ys, gs, ks := series.Forward(0, lat, lon)
			xe, ye, ge, ke := exact.Forward(0, lat, lon)
			assert.InDelta(t, xs, xe, 1e-6, "x at (%v, %v)", lat, lon)
			assert.InDelta(t, ys, ye, 1e-6, "y at (%v, %v)", lat, lon)
			assert.InDelta(t, gs, ge, 1e-7, "gamma at (%v, %v)", lat, lon)
			assert.InDelta(t, ks, ke, 1e-9, "k at (%v, %v)", lat, lon)
		}
	}
}

func TestExactRoundTrip(t *testing.T) {
	tm := newExactProjection(t, false)
	for lat := -85.0; lat <= 85; lat += 10 {
		for lon := 10.0; lon <= 170; lon += 20 {
			x, y, _, _ := tm.Forward(0, lat, lon)
			lat2, lon2, _, _ := tm.Reverse(0, x, y)
			assert.InDelta(t, lat, lat2, 1e-9, "lat at (%v, %v)", lat, lon)
			assert.InDelta(t, lon, lon2, 1e-9, "lon at (%v, %v)", lat, lon)
		}
	}
}

func TestExactPole(t *testing.T) {
	tm := newExactProjection(t, false)
	x, y, gamma, k := tm.Forward(0, 90, 60)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, utmQuarterMeridian, y, 1e-6)
	assert.Equal(t, 60.0, gamma)
	assert.InDelta(t, tmerc.UTMCentralScale, k, 1e-12)
}

func TestExactExtendedDomain(t *testing.T) {
	tm := newExactProjection(t, true)
	// With the extended domain the backside fold is suppressed and the
	// projection remains continuous past 90 degrees of longitude.
	for _, p := range []struct{ lat, lon float64 }{
		{10, 120}, {40, 100}, {70, 160},
	} {
		x, y, _, _ := tm.Forward(0, p.lat, p.lon)
		lat2, lon2, _, _ := tm.Reverse(0, x, y)
		assert.InDelta(t, p.lat, lat2, 1e-8, "lat at (%v, %v)", p.lat, p.lon)
		assert.InDelta(t, p.lon, lon2, 1e-8, "lon at (%v, %v)", p.lat, p.lon)
	}
}

func TestExactValidation(t *testing.T) {
	// The elliptic-function formulation needs a genuinely oblate ellipsoid.
	_, err := tmerc.NewTransverseMercatorExact(6.4e6, 0, 1, false)
	require.EqualError(t, err, "flattening is not positive")
	_, err = tmerc.NewTransverseMercatorExact(6.4e6, -0.01, 1, false)
	require.EqualError(t, err, "flattening is not positive")
	_, err = tmerc.NewTransverseMercatorExact(0, 0.01, 1, false)
	require.EqualError(t, err, "equatorial radius is not positive")
	_, err = tmerc.NewTransverseMercatorExact(6.4e6, 0.01, math.Inf(1), false)
	require.EqualError(t, err, "scale is not positive")
}

func TestExactDelegation(t *testing.T) {
	// Constructing the series type with the exact flag routes every call
	// through the elliptic-function engine.
	del, err := tmerc.NewTransverseMercator(tmerc.WGS84EquatorialRadius,
		tmerc.WGS84Flattening, tmerc.UTMCentralScale, true, false)
	require.NoError(t, err)
	exact := newExactProjection(t, false)
	for _, p := range []struct{ lat, lon float64 }{{40, 15}, {-20, 100}, {75, 3}} {
		x1, y1, g1, k1 := del.Forward(0, p.lat, p.lon)
		x2, y2, g2, k2 := exact.Forward(0, p.lat, p.lon)
		assert.Equal(t, x2, x1)
		assert.Equal(t, y2, y1)
		assert.Equal(t, g2, g1)
		assert.Equal(t, k2, k1)
	}
}

func TestExactAccessors(t *testing.T) {
	tm := newExactProjection(t, false)
	assert.Equal(t, tmerc.WGS84EquatorialRadius, tm.EquatorialRadius())
	assert.Equal(t, tmerc.WGS84Flattening, tm.Flattening())
	assert.Equal(t, tmerc.UTMCentralScale, tm.CentralScale())
}
