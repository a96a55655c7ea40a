package tmerc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSincosdExactAtQuadrants(t *testing.T) {
	cases := []struct {
		x        float64
		sin, cos float64
	}{
		{0, 0, 1},
		{90, 1, 0},
		{180, 0, -1},
		{270, -1, 0},
		{360, 0, 1},
		{-90, -1, 0},
		{-180, 0, -1},
		{-270, 1, 0},
		{720, 0, 1},
		{-720, 0, 1},
	}
	for _, c := range cases {
		s, cs := sincosd(c.x)
		assert.Equal(t, c.sin, s, "sin(%v)", c.x)
		assert.Equal(t, c.cos, cs, "cos(%v)", c.x)
	}
}

func TestSincosdSignedZero(t *testing.T) {
	s, _ := sincosd(180)
	assert.False(t, math.Signbit(s), "sin(180) should be +0")
	s, _ = sincosd(-180)
	assert.True(t, math.Signbit(s), "sin(-180) should be -0")
	_, c := sincosd(90)
	assert.False(t, math.Signbit(c), "cos(90) should be +0")
}

func TestSincosdMatchesRadians(t *testing.T) {
	for x := -360.0; x <= 360; x += 7.25 {
		s, c := sincosd(x)
		assert.InDelta(t, math.Sin(x*degree), s, 1e-15, "sin(%v)", x)
		assert.InDelta(t, math.Cos(x*degree), c, 1e-15, "cos(%v)", x)
	}
}

func TestAtan2d(t *testing.T) {
	assert.Equal(t, 0.0, atan2d(0, 1))
	assert.Equal(t, 90.0, atan2d(1, 0))
	assert.Equal(t, -90.0, atan2d(-1, 0))
	assert.Equal(t, 180.0, atan2d(0, -1))
	assert.Equal(t, -180.0, atan2d(math.Copysign(0, -1), -1))
	assert.Equal(t, 45.0, atan2d(1, 1))
	assert.Equal(t, -135.0, atan2d(-1, -1))
}

func TestAngNormalize(t *testing.T) {
	assert.Equal(t, 180.0, angNormalize(180))
	assert.Equal(t, 180.0, angNormalize(-180))
	assert.Equal(t, 180.0, angNormalize(540))
	assert.Equal(t, 0.0, angNormalize(360))
	assert.Equal(t, -170.0, angNormalize(190))
	assert.Equal(t, 170.0, angNormalize(-190))
}

func TestAngDiff(t *testing.T) {
	assert.Equal(t, 20.0, angDiff(350, 10))
	assert.Equal(t, -20.0, angDiff(10, 350))
	assert.Equal(t, 180.0, angDiff(0, 180))
	assert.Equal(t, 0.0, angDiff(90, 90))
	// The error-free sum keeps tiny differences across the wrap. The
	// argument itself rounds to a float64 about one ulp at 180 away
	// from the decimal value, so allow that much slack.
	assert.InDelta(t, 1e-10, angDiff(180, -180+1e-10), 1e-13)
}

func TestLatFix(t *testing.T) {
	assert.True(t, math.IsNaN(latFix(90.5)))
	assert.True(t, math.IsNaN(latFix(-91)))
	assert.Equal(t, 90.0, latFix(90))
	assert.Equal(t, -45.0, latFix(-45))
}

func TestPolyval(t *testing.T) {
	// 2x^2 - 3x + 1 at x = 2
	assert.Equal(t, 3.0, polyval([]float64{2, -3, 1}, 2))
	assert.Equal(t, 0.0, polyval(nil, 5))
}

func TestTaupfTaufRoundTrip(t *testing.T) {
	es := math.Sqrt(WGS84Flattening * (2 - WGS84Flattening))
	for _, tau := range []float64{0, 1e-3, 0.5, 1, 2, 10, 100, 1e5, -1, -50} {
		taup := taupf(tau, es)
		back := tauf(taup, es)
		assert.InDelta(t, tau, back, 1e-12*(1+math.Abs(tau)), "tau=%v", tau)
	}
}

func TestTaupfWGS84(t *testing.T) {
	es := math.Sqrt(WGS84Flattening * (2 - WGS84Flattening))
	// tan(chi) for phi = 45 degrees on WGS84.
	require.InDelta(t, 0.9933093395352243, taupf(1, es), 1e-15)
}

func TestTaupfSphere(t *testing.T) {
	// Zero eccentricity: conformal latitude equals geographic latitude.
	for _, tau := range []float64{0, 0.5, -3, 42} {
		assert.Equal(t, tau, taupf(tau, 0))
		assert.Equal(t, tau, tauf(tau, 0))
	}
}

func TestTaufLargeArgument(t *testing.T) {
	es := math.Sqrt(WGS84Flattening * (2 - WGS84Flattening))
	taup := taupf(1e9, es)
	back := tauf(taup, es)
	assert.InEpsilon(t, 1e9, back, 1e-9)
	assert.True(t, math.IsInf(taupf(math.Inf(1), es), 1))
}
