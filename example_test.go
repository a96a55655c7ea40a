package tmerc_test

import (
	"fmt"

	"github.com/golang/geo/s2"

	"github.com/treilly/tmerc"
)

func ExampleTransverseMercator_Forward() {
	// Project Madrid with the central meridian at Greenwich.
	tm := tmerc.UTM()
	x, y, gamma, k := tm.Forward(0, 40.5, -3.5)
	fmt.Printf("x = %.2f m, y = %.2f m\n", x, y)
	fmt.Printf("convergence = %.4f deg, scale = %.6f\n", gamma, k)
	// Output:
	// x = -296597.68 m, y = 4489142.10 m
	// convergence = -2.2747 deg, scale = 1.000683
}

func ExampleUTMConverter_ConvertFromGeodetic() {
	utm, _ := tmerc.NewUTMConverter()
	uc, _ := utm.ConvertFromGeodetic(s2.LatLngFromDegrees(40.7128, -74.006), 0)
	fmt.Printf("zone %d %s\n", uc.Zone, uc.Hemisphere)
	fmt.Printf("easting %.2f m, northing %.2f m\n", uc.Easting, uc.Northing)
	// Output:
	// zone 18 north
	// easting 583959.37 m, northing 4507351.00 m
}
