package tmerc

// tmOrder is the truncation order of the Krüger series used by the forward
// and reverse transformations.  Legal values are 4 through 8.  At order 4
// the truncation error over the UTM range of coordinates is about 200 nm;
// at the default order 6 it is about 5 nm.
const tmOrder = 6

// The rational coefficients below are the closed-form series coefficients
// of Krüger's flattened-sphere expansion, as tabulated by Karney (2011),
// "Transverse Mercator with an accuracy of a few nanometers".  Each block
// holds the numerator coefficients of a polynomial in n (highest degree
// first) followed by the common denominator.

var b1Coeff2 = []float64{
	// b1*(n+1), polynomial in n2 of order 2
	1, 16, 64, 64,
}

var b1Coeff3 = []float64{
	// b1*(n+1), polynomial in n2 of order 3
	1, 4, 64, 256, 256,
}

var b1Coeff4 = []float64{
	// b1*(n+1), polynomial in n2 of order 4
	25, 64, 256, 4096, 16384, 16384,
}

var alpCoeff4 = []float64{
	// alp[1]/n^1, polynomial in n of order 3
	164, 225, -480, 360, 720,
	// alp[2]/n^2, polynomial in n of order 2
	557, -864, 390, 1440,
	// alp[3]/n^3, polynomial in n of order 1
	-1236, 427, 1680,
	// alp[4]/n^4, polynomial in n of order 0
	49561, 161280,
}

var alpCoeff5 = []float64{
	// alp[1]/n^1, polynomial in n of order 4
	-635, 328, 450, -960, 720, 1440,
	// alp[2]/n^2, polynomial in n of order 3
	4496, 3899, -6048, 2730, 10080,
	// alp[3]/n^3, polynomial in n of order 2
	15061, -19776, 6832, 26880,
	// alp[4]/n^4, polynomial in n of order 1
	-171840, 49561, 161280,
	// alp[5]/n^5, polynomial in n of order 0
	34729, 80640,
}

var alpCoeff6 = []float64{
	// alp[1]/n^1, polynomial in n of order 5
	31564, -66675, 34440, 47250, -100800, 75600, 151200,
	// alp[2]/n^2, polynomial in n of order 4
	-1983433, 863232, 748608, -1161216, 524160, 1935360,
	// alp[3]/n^3, polynomial in n of order 3
	670412, 406647, -533952, 184464, 725760,
	// alp[4]/n^4, polynomial in n of order 2
	6601661, -7732800, 2230245, 7257600,
	// alp[5]/n^5, polynomial in n of order 1
	-13675556, 3438171, 7983360,
	// alp[6]/n^6, polynomial in n of order 0
	212378941, 319334400,
}

var alpCoeff7 = []float64{
	// alp[1]/n^1, polynomial in n of order 6
	1804025, 2020096, -4267200, 2204160, 3024000, -6451200, 4838400, 9676800,
	// alp[2]/n^2, polynomial in n of order 5
	4626384, -9917165, 4316160, 3743040, -5806080, 2620800, 9676800,
	// alp[3]/n^3, polynomial in n of order 4
	-67102379, 26816480, 16265880, -21358080, 7378560, 29030400,
	// alp[4]/n^4, polynomial in n of order 3
	155912000, 72618271, -85060800, 24532695, 79833600,
	// alp[5]/n^5, polynomial in n of order 2
	102508609, -109404448, 27505368, 63866880,
	// alp[6]/n^6, polynomial in n of order 1
	-12282192400, 2760926233, 4151347200,
	// alp[7]/n^7, polynomial in n of order 0
	1522256789, 1383782400,
}

var alpCoeff8 = []float64{
	// alp[1]/n^1, polynomial in n of order 7
	-75900428, 37884525, 42422016, -89611200, 46287360, 63504000, -135475200,
	101606400, 203212800,
	// alp[2]/n^2, polynomial in n of order 6
	148003883, 83274912, -178508970, 77690880, 67374720, -104509440,
	47174400, 174182400,
	// alp[3]/n^3, polynomial in n of order 5
	318729724, -738126169, 294981280, 178924680, -234938880, 81164160,
	319334400,
	// alp[4]/n^4, polynomial in n of order 4
	-40176129013, 14967552000, 6971354016, -8165836800, 2355138720,
	7664025600,
	// alp[5]/n^5, polynomial in n of order 3
	10421654396, 3997835751, -4266773472, 1072709352, 2490808320,
	// alp[6]/n^6, polynomial in n of order 2
	175214326799, -171950693600, 38652967262, 58118860800,
	// alp[7]/n^7, polynomial in n of order 1
	-67039739596, 13700311101, 12454041600,
	// alp[8]/n^8, polynomial in n of order 0
	1424729850961, 743921418240,
}

var betCoeff4 = []float64{
	// bet[1]/n^1, polynomial in n of order 3
	-4, 555, -960, 720, 1440,
	// bet[2]/n^2, polynomial in n of order 2
	-437, 96, 30, 1440,
	// bet[3]/n^3, polynomial in n of order 1
	-148, 119, 3360,
	// bet[4]/n^4, polynomial in n of order 0
	4397, 161280,
}

var betCoeff5 = []float64{
	// bet[1]/n^1, polynomial in n of order 4
	-3645, -64, 8880, -15360, 11520, 23040,
	// bet[2]/n^2, polynomial in n of order 3
	4416, -3059, 672, 210, 10080,
	// bet[3]/n^3, polynomial in n of order 2
	-627, -592, 476, 13440,
	// bet[4]/n^4, polynomial in n of order 1
	-3520, 4397, 161280,
	// bet[5]/n^5, polynomial in n of order 0
	4583, 161280,
}

var betCoeff6 = []float64{
	// bet[1]/n^1, polynomial in n of order 5
	384796, -382725, -6720, 932400, -1612800, 1209600, 2419200,
	// bet[2]/n^2, polynomial in n of order 4
	-1118711, 1695744, -1174656, 258048, 80640, 3870720,
	// bet[3]/n^3, polynomial in n of order 3
	22276, -16929, -15984, 12852, 362880,
	// bet[4]/n^4, polynomial in n of order 2
	-830251, -158400, 197865, 7257600,
	// bet[5]/n^5, polynomial in n of order 1
	-435388, 453717, 15966720,
	// bet[6]/n^6, polynomial in n of order 0
	20648693, 638668800,
}

var betCoeff7 = []float64{
	// bet[1]/n^1, polynomial in n of order 6
	-5406467, 6156736, -6123600, -107520, 14918400, -25804800, 19353600,
	38707200,
	// bet[2]/n^2, polynomial in n of order 5
	829456, -5593555, 8478720, -5873280, 1290240, 403200, 19353600,
	// bet[3]/n^3, polynomial in n of order 4
	9261899, 3564160, -2708640, -2557440, 2056320, 58060800,
	// bet[4]/n^4, polynomial in n of order 3
	14928352, -9132761, -1742400, 2176515, 79833600,
	// bet[5]/n^5, polynomial in n of order 2
	-8005831, -1741552, 1814868, 63866880,
	// bet[6]/n^6, polynomial in n of order 1
	-261810608, 268433009, 8302694400,
	// bet[7]/n^7, polynomial in n of order 0
	219941297, 5535129600,
}

var betCoeff8 = []float64{
	// bet[1]/n^1, polynomial in n of order 7
	31777436, -37845269, 43097152, -42865200, -752640, 104428800, -180633600,
	135475200, 270950400,
	// bet[2]/n^2, polynomial in n of order 6
	24749483, 14930208, -100683990, 152616960, -105719040, 23224320, 7257600,
	348364800,
	// bet[3]/n^3, polynomial in n of order 5
	-232468668, 101880889, 39205760, -29795040, -28131840, 22619520,
	638668800,
	// bet[4]/n^4, polynomial in n of order 4
	324154477, 1433121792, -876745056, -167270400, 208945440, 7664025600,
	// bet[5]/n^5, polynomial in n of order 3
	457888660, -312227409, -67920528, 70779852, 2490808320,
	// bet[6]/n^6, polynomial in n of order 2
	-19841813847, -3665348512, 3758062126, 116237721600,
	// bet[7]/n^7, polynomial in n of order 1
	-1989295244, 1979471673, 49816166400,
	// bet[8]/n^8, polynomial in n of order 0
	191773887257, 3719607091200,
}

// coeffTables returns the b1, alp and bet coefficient tables for the given
// series order.  The order is fixed at compile time; this lookup runs once
// per construction, never on the transform path.
func coeffTables(order int) (b1c, alpc, betc []float64) {
	switch order {
	case 4:
		return b1Coeff2, alpCoeff4, betCoeff4
	case 5:
		return b1Coeff2, alpCoeff5, betCoeff5
	case 6:
		return b1Coeff3, alpCoeff6, betCoeff6
	case 7:
		return b1Coeff3, alpCoeff7, betCoeff7
	case 8:
		return b1Coeff4, alpCoeff8, betCoeff8
	default:
		panic("tmerc: series order must be between 4 and 8")
	}
}

// generateCoefficients evaluates the coefficient tables for third
// flattening n, producing the meridian-arc scale b1 and the forward (alp)
// and reverse (bet) series coefficients.  This depends only on the shape of
// the ellipsoid, not its size.
func generateCoefficients(n float64, alp, bet []float64) (b1 float64) {
	b1c, alpc, betc := coeffTables(tmOrder)
	m := tmOrder / 2
	b1 = polyval(b1c[:m+1], sq(n)) / (b1c[m+1] * (1 + n))
	o := 0
	d := n
	for l := 1; l <= tmOrder; l++ {
		m = tmOrder - l
		alp[l] = d * polyval(alpc[o:o+m+1], n) / alpc[o+m+1]
		bet[l] = d * polyval(betc[o:o+m+1], n) / betc[o+m+1]
		o += m + 2
		d *= n
	}
	return b1
}
