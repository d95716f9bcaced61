package crs

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/tingold/orb-crs/units"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func epsg(code string) []Identifier {
	return []Identifier{{Authority: "EPSG", Code: code}}
}

var world = &Extent{Description: "World", Bound: &orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}}

// Ellipsoids.
var (
	WGS84Ellipsoid = must(NewFlattenedSphere(Properties{Name: "WGS 84", Aliases: []string{"WGS84"}, Identifiers: epsg("7030")},
		6378137, 298.257223563, units.Metre))
	GRS80Ellipsoid = must(NewFlattenedSphere(Properties{Name: "GRS 1980", Aliases: []string{"GRS80"}, Identifiers: epsg("7019")},
		6378137, 298.257222101, units.Metre))
	International1924 = must(NewFlattenedSphere(Properties{Name: "International 1924", Identifiers: epsg("7022")},
		6378388, 297, units.Metre))
)

// Prime meridians.
var (
	Greenwich = must(NewPrimeMeridian(Properties{Name: "Greenwich", Identifiers: epsg("8901")}, 0, units.Degree))
	Paris     = must(NewPrimeMeridian(Properties{Name: "Paris", Identifiers: epsg("8903")}, 2.5969213, units.Grad))
)

// WGS84Datum is the World Geodetic System 1984 datum.
var WGS84Datum = must(NewGeodeticDatum(Properties{
	Name:        "World Geodetic System 1984",
	Aliases:     []string{"WGS84"},
	Identifiers: epsg("6326"),
	Domain:      world,
}, WGS84Ellipsoid, Greenwich, nil))

// Axes shared by the well-known coordinate systems.
var (
	GeodeticLongitude     = NewAxis("Geodetic longitude", "Lon", East, units.Degree).WithRange(-180, 180, Wraparound)
	GeodeticLatitude      = NewAxis("Geodetic latitude", "Lat", North, units.Degree).WithRange(-90, 90, Exact)
	EllipsoidalHeightAxis = NewAxis("Ellipsoidal height", "h", Up, units.Metre)
	GravityHeightAxis     = NewAxis("Gravity-related height", "H", Up, units.Metre)
	Easting               = NewAxis("Easting", "E", East, units.Metre)
	Northing              = NewAxis("Northing", "N", North, units.Metre)
)

// Coordinate systems.
var (
	LonLatCS = must(NewCoordinateSystem(EllipsoidalCS, Properties{Name: "Ellipsoidal CS: E,N", Identifiers: epsg("6424")},
		GeodeticLongitude, GeodeticLatitude))
	LonLatHeightCS = must(NewCoordinateSystem(EllipsoidalCS, Properties{Name: "Ellipsoidal CS: E,N,h"},
		GeodeticLongitude, GeodeticLatitude, EllipsoidalHeightAxis))
	GeocentricCS = must(NewCoordinateSystem(CartesianCS, Properties{Name: "Earth centred", Identifiers: epsg("6500")},
		NewAxis("Geocentric X", "X", GeocentricX, units.Metre),
		NewAxis("Geocentric Y", "Y", GeocentricY, units.Metre),
		NewAxis("Geocentric Z", "Z", GeocentricZ, units.Metre)))
	ProjectedCS = must(NewCoordinateSystem(CartesianCS, Properties{Name: "Cartesian 2D CS: E,N", Identifiers: epsg("4400")},
		Easting, Northing))
	EllipsoidalHeightCS = must(NewCoordinateSystem(VerticalCS, Properties{Name: "Ellipsoidal height"}, EllipsoidalHeightAxis))
	GravityHeightCS     = must(NewCoordinateSystem(VerticalCS, Properties{Name: "Gravity-related height"}, GravityHeightAxis))

	cartesian2DCS = must(NewCoordinateSystem(CartesianCS, Properties{Name: "Cartesian 2D"},
		NewAxis("x", "x", East, units.Metre), NewAxis("y", "y", North, units.Metre)))
	cartesian3DCS = must(NewCoordinateSystem(CartesianCS, Properties{Name: "Cartesian 3D"},
		NewAxis("x", "x", East, units.Metre), NewAxis("y", "y", North, units.Metre), NewAxis("z", "z", Up, units.Metre)))
	generic2DCS = must(NewCoordinateSystem(AffineCS, Properties{Name: "Generic 2D"},
		NewAxis("x", "x", East, units.Unity), NewAxis("y", "y", North, units.Unity)))
	generic3DCS = must(NewCoordinateSystem(AffineCS, Properties{Name: "Generic 3D"},
		NewAxis("x", "x", East, units.Unity), NewAxis("y", "y", North, units.Unity), NewAxis("z", "z", Up, units.Unity)))
	daysCS    = must(NewCoordinateSystem(TimeCS, Properties{Name: "Days"}, NewAxis("Time", "t", Future, units.Day)))
	secondsCS = must(NewCoordinateSystem(TimeCS, Properties{Name: "Seconds"}, NewAxis("Time", "t", Future, units.Second)))
)

var (
	unknownEngineering = must(NewEngineeringDatum(Properties{Name: "Unknown"}))
	ellipsoidDatum     = must(NewVerticalDatum(Properties{Name: "Ellipsoid"}, VerticalEllipsoidal))
	geoidDatum         = must(NewVerticalDatum(Properties{Name: "Geoid"}, VerticalGeoidal))
)

func temporalDatum(name string, origin time.Time) *TemporalDatum {
	return must(NewTemporalDatum(Properties{Name: name}, origin))
}

// Well-known geodetic CRS.
var (
	// WGS84 is the two-dimensional geographic CRS on WGS 84 with longitude
	// first, in decimal degrees.
	WGS84 = must(NewGeographic(Properties{
		Name:        "WGS84(DD)",
		Aliases:     []string{"WGS 84"},
		Identifiers: []Identifier{{Authority: "CRS", Code: "84"}},
		Domain:      world,
	}, WGS84Datum, LonLatCS))
	// WGS84_3D adds the ellipsoidal height to WGS84.
	WGS84_3D = must(NewGeographic(Properties{Name: "WGS84(3D)", Domain: world}, WGS84Datum, LonLatHeightCS))
	// GeocentricCartesian is the Earth-centred Cartesian CRS on WGS 84.
	GeocentricCartesian = must(NewGeocentric(Properties{Name: "Earth centred", Identifiers: epsg("4978")}, WGS84Datum, GeocentricCS))
)

// Well-known vertical CRS.
var (
	EllipsoidalHeight = must(NewVertical(Properties{Name: "Ellipsoidal height"}, ellipsoidDatum, EllipsoidalHeightCS))
	GeoidalHeight     = must(NewVertical(Properties{Name: "Geoidal height"}, geoidDatum, GravityHeightCS))
)

// Well-known engineering CRS. The Cartesian ones are in metres, the generic
// ones in unknown units.
var (
	Cartesian2D = must(NewEngineering(Properties{Name: "Cartesian 2D"}, unknownEngineering, cartesian2DCS))
	Cartesian3D = must(NewEngineering(Properties{Name: "Cartesian 3D"}, unknownEngineering, cartesian3DCS))
	Generic2D   = must(NewEngineering(Properties{Name: "Generic 2D"}, unknownEngineering, generic2DCS))
	Generic3D   = must(NewEngineering(Properties{Name: "Generic 3D"}, unknownEngineering, generic3DCS))
)

// Well-known temporal CRS.
var (
	// Julian counts days since 4713 BC January 1st at noon (Julian calendar).
	Julian = must(NewTemporal(Properties{Name: "Julian"},
		temporalDatum("Julian", time.Date(-4713, time.November, 24, 12, 0, 0, 0, time.UTC)), daysCS))
	ModifiedJulian = must(NewTemporal(Properties{Name: "Modified Julian"},
		temporalDatum("Modified Julian", time.Date(1858, time.November, 17, 0, 0, 0, 0, time.UTC)), daysCS))
	TruncatedJulian = must(NewTemporal(Properties{Name: "Truncated Julian"},
		temporalDatum("Truncated Julian", time.Date(1968, time.May, 24, 0, 0, 0, 0, time.UTC)), daysCS))
	DublinJulian = must(NewTemporal(Properties{Name: "Dublin Julian"},
		temporalDatum("Dublin Julian", time.Date(1899, time.December, 31, 12, 0, 0, 0, time.UTC)), daysCS))
	Unix = must(NewTemporal(Properties{Name: "Unix/POSIX"},
		temporalDatum("Unix/POSIX", time.Unix(0, 0)), secondsCS))
)

// WellKnown returns the well-known CRS in a stable order.
func WellKnown() []*CRS {
	return []*CRS{
		WGS84, WGS84_3D, GeocentricCartesian,
		EllipsoidalHeight, GeoidalHeight,
		Cartesian2D, Cartesian3D, Generic2D, Generic3D,
		Julian, ModifiedJulian, TruncatedJulian, DublinJulian, Unix,
	}
}
