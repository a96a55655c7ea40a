package tmerc

// Reference ellipsoid and grid constants.
const (
	// WGS84EquatorialRadius is the WGS84 semi-major axis in meters.
	WGS84EquatorialRadius = 6378137.0
	// WGS84Flattening is the WGS84 flattening.
	WGS84Flattening = 1 / 298.257223563
	// UTMCentralScale is the scale factor on the central meridian of a UTM
	// zone.
	UTMCentralScale = 0.9996
)
