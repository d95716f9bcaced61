package crs

import (
	"fmt"

	"github.com/tingold/orb-crs/transform"
	"github.com/tingold/orb-crs/units"
)

// TMParams are the parameters of a Transverse Mercator projection. Angles
// are in degrees and lengths in metres. SemiMajor and SemiMinor default to
// the axes of the base ellipsoid; setting them overrides the ellipsoid.
type TMParams struct {
	CentralMeridian  float64
	LatitudeOfOrigin float64
	ScaleFactor      float64
	FalseEasting     float64
	FalseNorthing    float64
	SemiMajor        float64
	SemiMinor        float64
}

var transverseMercatorMethod = OperationMethod{
	Name:       "Transverse_Mercator",
	Identifier: Identifier{Authority: "EPSG", Code: "9807"},
}

// NewTransverseMercator creates a projected CRS on a geographic base whose
// first two axes are longitude and latitude in degrees. The projected axes
// are easting and northing in metres.
func NewTransverseMercator(p Properties, base *CRS, tm TMParams) (*CRS, error) {
	if base == nil || base.kind != Geographic {
		return nil, kindError("Transverse Mercator CRS", "base CRS", Geographic.String(), kindOf(base))
	}
	cs := base.cs
	if cs.Dimension() != 2 || cs.axes[0].Direction != East || cs.axes[1].Direction != North ||
		cs.axes[0].Unit != units.Degree || cs.axes[1].Unit != units.Degree {
		return nil, fmt.Errorf("%w: base CRS %q must have longitude and latitude axes in degrees", ErrInvalidParameter, base.name)
	}
	e := base.GeodeticDatum().Ellipsoid()
	toMetre, err := e.Unit().Convert(1, units.Metre)
	if err != nil {
		return nil, err
	}
	if tm.SemiMajor == 0 {
		tm.SemiMajor = e.SemiMajorAxis() * toMetre
	}
	if tm.SemiMinor == 0 {
		tm.SemiMinor = e.SemiMinorAxis() * toMetre
	}
	if tm.ScaleFactor == 0 {
		tm.ScaleFactor = 1
	}
	if !(tm.SemiMinor < tm.SemiMajor) {
		return nil, fmt.Errorf("%w: semi-minor axis %v must be shorter than semi-major axis %v",
			ErrInvalidParameter, tm.SemiMinor, tm.SemiMajor)
	}
	mt, err := transform.NewTransverseMercator(transform.TransverseMercatorParams{
		SemiMajor:         tm.SemiMajor,
		InverseFlattening: tm.SemiMajor / (tm.SemiMajor - tm.SemiMinor),
		CentralMeridian:   tm.CentralMeridian,
		LatitudeOfOrigin:  tm.LatitudeOfOrigin,
		ScaleFactor:       tm.ScaleFactor,
		FalseEasting:      tm.FalseEasting,
		FalseNorthing:     tm.FalseNorthing,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	params := []ParameterValue{
		{Name: "semi_major", Value: tm.SemiMajor, Unit: units.Metre},
		{Name: "semi_minor", Value: tm.SemiMinor, Unit: units.Metre},
		{Name: "latitude_of_origin", Value: tm.LatitudeOfOrigin, Unit: units.Degree},
		{Name: "central_meridian", Value: tm.CentralMeridian, Unit: units.Degree},
		{Name: "scale_factor", Value: tm.ScaleFactor, Unit: units.Unity},
		{Name: "false_easting", Value: tm.FalseEasting, Unit: units.Metre},
		{Name: "false_northing", Value: tm.FalseNorthing, Unit: units.Metre},
	}
	conv, err := NewConversion(Properties{Name: p.Name}, CylindricalProjection, transverseMercatorMethod, params, mt)
	if err != nil {
		return nil, err
	}
	return NewProjected(p, base, conv, ProjectedCS)
}

func kindOf(c *CRS) string {
	if c == nil {
		return "nil"
	}
	return c.kind.String()
}

// UTM returns the WGS 84 Universal Transverse Mercator CRS of the given zone
// (1 to 60) and hemisphere.
func UTM(zone int, north bool) (*CRS, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("%w: UTM zone %d", ErrInvalidParameter, zone)
	}
	hemisphere, code, northing := "N", 32600+zone, 0.0
	if !north {
		hemisphere, code, northing = "S", 32700+zone, 10000000
	}
	return NewTransverseMercator(Properties{
		Name:        fmt.Sprintf("WGS 84 / UTM zone %d%s", zone, hemisphere),
		Identifiers: epsg(fmt.Sprint(code)),
	}, WGS84, TMParams{
		CentralMeridian: float64(zone*6 - 183),
		ScaleFactor:     0.9996,
		FalseEasting:    500000,
		FalseNorthing:   northing,
	})
}
