package tmerc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCoefficientsWGS84(t *testing.T) {
	n := WGS84Flattening / (2 - WGS84Flattening)
	var alp, bet [tmOrder + 1]float64
	b1 := generateCoefficients(n, alp[:], bet[:])

	require.InDelta(t, 0.9983242984312527, b1, 1e-15)

	wantAlp := []float64{0,
		8.377318206244698e-04,
		7.608527773572309e-07,
		1.1976455033294525e-09,
		2.429170607201359e-12,
		5.711757677865804e-15,
		1.4911177312583895e-17,
	}
	wantBet := []float64{0,
		8.377321640579486e-04,
		5.9058701522202026e-08,
		1.6734826652839968e-10,
		2.1647980400627056e-13,
		3.787978046168606e-16,
		7.2487488906941545e-19,
	}
	for j := 1; j <= tmOrder; j++ {
		assert.InEpsilon(t, wantAlp[j], alp[j], 1e-12, "alp[%d]", j)
		assert.InEpsilon(t, wantBet[j], bet[j], 1e-12, "bet[%d]", j)
	}
}

func TestGenerateCoefficientsSphere(t *testing.T) {
	// n = 0: the series collapses and the rectifying radius equals a.
	var alp, bet [tmOrder + 1]float64
	b1 := generateCoefficients(0, alp[:], bet[:])
	assert.Equal(t, 1.0, b1)
	for j := 1; j <= tmOrder; j++ {
		assert.Zero(t, alp[j], "alp[%d]", j)
		assert.Zero(t, bet[j], "bet[%d]", j)
	}
}

func TestCoeffTablesOrders(t *testing.T) {
	for order := 4; order <= 8; order++ {
		b1c, alpc, betc := coeffTables(order)
		// m+2 entries for b1, and per degree j a polynomial of order-j
		// numerator coefficients plus a denominator.
		assert.Len(t, b1c, order/2+2, "order %d", order)
		count := 0
		for j := 1; j <= order; j++ {
			count += (order - j + 1) + 1
		}
		assert.Len(t, alpc, count, "order %d", order)
		assert.Len(t, betc, count, "order %d", order)
	}
	assert.Panics(t, func() { coeffTables(3) })
	assert.Panics(t, func() { coeffTables(9) })
}

func TestMeridianQuarterLength(t *testing.T) {
	// The rectifying radius times pi/2 is the length of the quarter
	// meridian; WGS84's is 10001965.729 m.
	n := WGS84Flattening / (2 - WGS84Flattening)
	var alp, bet [tmOrder + 1]float64
	b1 := generateCoefficients(n, alp[:], bet[:])
	quarter := b1 * WGS84EquatorialRadius * math.Pi / 2
	assert.InDelta(t, 10001965.729, quarter, 1e-3)
}
