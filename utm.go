package tmerc

import (
	"errors"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Hemisphere identifies the hemisphere of a UTM coordinate.
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "north"
	case HemisphereSouth:
		return "south"
	}
	return "invalid"
}

// UTMCoord is a UTM coordinate, augmented with the meridian convergence
// (degrees) and point scale at the position.
type UTMCoord struct {
	Zone        int
	Hemisphere  Hemisphere
	Easting     float64
	Northing    float64
	Convergence float64
	Scale       float64
}

// UTMConverter converts between geodetic coordinates and UTM (zone,
// hemisphere, easting and northing) coordinates.
type UTMConverter struct {
	tm          *TransverseMercator
	utmOverride int
}

const utmMinLat = -80.5 // degrees
const utmMaxLat = 84.5  // degrees
const utmFalseEasting = 500000.0
const utmFalseNorthing = 10000000.0 // for the southern hemisphere
const utmMinEasting = 100000.0
const utmMaxEasting = 900000.0
const utmMinNorthing = 0.0
const utmMaxNorthing = 10000000.0

const epsilonDegrees = 1.0e-5 // about 1 meter

// utmCentralMeridian returns the central meridian of a UTM zone in
// degrees.
func utmCentralMeridian(zone int) float64 {
	return float64(6*zone - 183)
}

// NewUTMConverter constructs a UTM converter for the WGS84 ellipsoid.
func NewUTMConverter() (*UTMConverter, error) {
	return NewUTMConverterForEllipsoid(WGS84EquatorialRadius, WGS84Flattening, 0)
}

// NewUTMConverterForEllipsoid receives the ellipsoid parameters and UTM
// zone override parameter as inputs, and sets the corresponding state
// variables.  override is the UTM override zone, 0 indicates no override.
func NewUTMConverterForEllipsoid(ellipsoidSemiMajorAxis, ellipsoidFlattening float64, override int) (*UTMConverter, error) {
	if ellipsoidSemiMajorAxis <= 0.0 {
		return nil, errors.New("Semi-major axis must be greater than zero")
	}
	invF := 1 / ellipsoidFlattening
	if (invF < 250) || (invF > 350) {
		return nil, errors.New("Inverse flattening must be between 250 and 350")
	}
	if (override < 0) || (override > 60) {
		return nil, errors.New("zone override out of range")
	}

	tm, err := NewTransverseMercator(ellipsoidSemiMajorAxis, ellipsoidFlattening,
		UTMCentralScale, false, false)
	if err != nil {
		return nil, err
	}
	return &UTMConverter{tm: tm, utmOverride: override}, nil
}

// zoneFromPosition computes the natural UTM zone for a position (longitude
// in [0, 360)), applying the special zone cases over southern Norway and
// Svalbard.
func zoneFromPosition(latDeg, lonDeg float64) int {
	var zone int
	if lonDeg < 180 {
		zone = int(31 + (lonDeg+1.0e-10)/6.0)
	} else {
		zone = int((lonDeg+1.0e-10)/6.0 - 29)
	}
	if zone > 60 {
		zone = 1
	}

	latDegrees := int(latDeg)
	lonDegrees := int(lonDeg)
	if lonDeg >= 180 {
		lonDegrees = int(lonDeg - 360)
	}

	// check for special zone cases over southern Norway and Svalbard
	if (latDegrees > 55) && (latDegrees < 64) && (lonDegrees > -1) &&
		(lonDegrees < 3) {
		zone = 31
	}
	if (latDegrees > 55) && (latDegrees < 64) && (lonDegrees > 2) &&
		(lonDegrees < 12) {
		zone = 32
	}
	if (latDegrees > 71) && (lonDegrees > -1) && (lonDegrees < 9) {
		zone = 31
	}
	if (latDegrees > 71) && (lonDegrees > 8) && (lonDegrees < 21) {
		zone = 33
	}
	if (latDegrees > 71) && (lonDegrees > 20) && (lonDegrees < 33) {
		zone = 35
	}
	if (latDegrees > 71) && (lonDegrees > 32) && (lonDegrees < 42) {
		zone = 37
	}
	return zone
}

// applyOverride validates an override zone against the natural zone,
// allowing an override up to +/- one zone (with wraparound at zone 60).
func applyOverride(zone, override int) (int, error) {
	switch {
	case zone == 1 && override == 60:
		return override, nil
	case zone == 60 && override == 1:
		return override, nil
	case (zone-1) <= override && override <= (zone+1):
		return override, nil
	}
	return 0, errors.New("zone out of range")
}

// ConvertFromGeodetic converts geodetic (latitude and longitude)
// coordinates to UTM projection (zone, hemisphere, easting and northing)
// coordinates according to the current ellipsoid and UTM zone override
// parameters.
func (u *UTMConverter) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, utmZoneOverride int) (UTMCoord, error) {
	latitude := geodeticCoordinates.Lat.Degrees()
	longitude := geodeticCoordinates.Lng.Degrees()

	if (latitude < (utmMinLat - epsilonDegrees)) ||
		(latitude >= (utmMaxLat + epsilonDegrees)) {
		return UTMCoord{}, errors.New("latitude out of range")
	}
	if (longitude < (-180 - epsilonDegrees)) ||
		(longitude > (360 + epsilonDegrees)) {
		return UTMCoord{}, errors.New("longitude out of range")
	}

	if (latitude > -1.0e-9) && (latitude < 0) {
		latitude = 0.0
	}
	if longitude < 0 {
		longitude += 360
	}

	zone := zoneFromPosition(latitude, longitude)

	// allow UTM zone override up to +/- one zone of the calculated zone
	var err error
	if utmZoneOverride != 0 {
		zone, err = applyOverride(zone, utmZoneOverride)
	} else if u.utmOverride != 0 {
		zone, err = applyOverride(zone, u.utmOverride)
	}
	if err != nil {
		return UTMCoord{}, err
	}

	x, y, gamma, k := u.tm.Forward(utmCentralMeridian(zone), latitude, longitude)

	hemisphere := HemisphereNorth
	falseNorthing := 0.0
	if latitude < 0 {
		hemisphere = HemisphereSouth
		falseNorthing = utmFalseNorthing
	}
	easting := x + utmFalseEasting
	northing := y + falseNorthing

	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return UTMCoord{}, errors.New("easting out of range")
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return UTMCoord{}, errors.New("northing out of range")
	}

	return UTMCoord{
		Zone:        zone,
		Hemisphere:  hemisphere,
		Easting:     easting,
		Northing:    northing,
		Convergence: gamma,
		Scale:       k,
	}, nil
}

// ConvertToGeodetic converts UTM projection (zone, hemisphere, easting and
// northing) coordinates to geodetic (latitude and longitude) coordinates,
// according to the current ellipsoid parameters.
func (u *UTMConverter) ConvertToGeodetic(utmCoordinates UTMCoord) (s2.LatLng, error) {
	zone := utmCoordinates.Zone
	hemisphere := utmCoordinates.Hemisphere
	easting := utmCoordinates.Easting
	northing := utmCoordinates.Northing

	if (zone < 1) || (zone > 60) {
		return s2.LatLng{}, errors.New("zone out of range")
	}
	if (hemisphere != HemisphereSouth) && (hemisphere != HemisphereNorth) {
		return s2.LatLng{}, errors.New("hemisphere out of range")
	}
	if (easting < utmMinEasting) || (easting > utmMaxEasting) {
		return s2.LatLng{}, errors.New("easting out of range")
	}
	if (northing < utmMinNorthing) || (northing > utmMaxNorthing) {
		return s2.LatLng{}, errors.New("northing out of range")
	}

	falseNorthing := 0.0
	if hemisphere == HemisphereSouth {
		falseNorthing = utmFalseNorthing
	}

	latitude, longitude, _, _ := u.tm.Reverse(utmCentralMeridian(zone),
		easting-utmFalseEasting, northing-falseNorthing)

	if (latitude < (utmMinLat - epsilonDegrees)) ||
		(latitude >= (utmMaxLat + epsilonDegrees)) {
		return s2.LatLng{}, errors.New("latitude out of range")
	}

	return s2.LatLng{Lat: s1.Angle(latitude * degree), Lng: s1.Angle(longitude * degree)}, nil
}
