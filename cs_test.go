package crs

import (
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingold/orb-crs/units"
)

func TestNewCoordinateSystem_Validation(t *testing.T) {
	lon, lat, h := GeodeticLongitude, GeodeticLatitude, EllipsoidalHeightAxis
	tests := []struct {
		name string
		kind CSKind
		axes []Axis
		want error
	}{
		{"ellipsoidal 2D", EllipsoidalCS, []Axis{lon, lat}, nil},
		{"ellipsoidal 3D", EllipsoidalCS, []Axis{lon, lat, h}, nil},
		{"ellipsoidal 1D", EllipsoidalCS, []Axis{lon}, ErrMismatchedDimension},
		{"ellipsoidal linear", EllipsoidalCS, []Axis{Easting, Northing}, ErrInvalidKind},
		{"cartesian 1D", CartesianCS, []Axis{Easting}, nil},
		{"cartesian 2D", CartesianCS, []Axis{Easting, Northing}, nil},
		{"cartesian 3D", CartesianCS, []Axis{Easting, Northing, h}, nil},
		{"cartesian 4D", CartesianCS, []Axis{Easting, Northing, h, h}, ErrMismatchedDimension},
		{"cartesian angular", CartesianCS, []Axis{lon, lat}, ErrInvalidKind},
		{"vertical 2D", VerticalCS, []Axis{h, h}, ErrMismatchedDimension},
		{"time in metres", TimeCS, []Axis{h}, ErrInvalidKind},
		{"spherical 2D", SphericalCS, []Axis{lon, lat}, ErrMismatchedDimension},
		{"no unit", CartesianCS, []Axis{{Name: "x"}}, ErrInvalidParameter},
		{"unknown kind", CSKind(99), []Axis{h}, ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := NewCoordinateSystem(tt.kind, Properties{Name: tt.name}, tt.axes...)
			if tt.want == nil {
				require.NoError(t, err)
				assert.Equal(t, len(tt.axes), cs.Dimension())
				return
			}
			assert.Nil(t, cs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCartesianCoordinateSystems(t *testing.T) {
	for cs, dim := range map[*CoordinateSystem]int{
		GeocentricCS:                          3,
		ProjectedCS:                           2,
		Cartesian2D.CoordinateSystem():        2,
		Cartesian3D.CoordinateSystem():        3,
		GeocentricCartesian.CoordinateSystem(): 3,
	} {
		assert.Equal(t, CartesianCS, cs.Kind(), cs.Name())
		assert.Equal(t, dim, cs.Dimension(), cs.Name())
	}
}

func TestCoordinateSystem_UnitOf(t *testing.T) {
	u, ok := LonLatHeightCS.UnitOf(units.Angular)
	require.True(t, ok)
	assert.Equal(t, units.Degree, u)

	u, ok = LonLatHeightCS.UnitOf(units.Linear)
	require.True(t, ok)
	assert.Equal(t, units.Metre, u)

	_, ok = LonLatCS.UnitOf(units.Time)
	assert.False(t, ok)

	mixed, err := NewCoordinateSystem(CartesianCS, Properties{Name: "mixed"},
		NewAxis("x", "x", East, units.Metre), NewAxis("y", "y", North, units.Foot))
	require.NoError(t, err)
	_, ok = mixed.UnitOf(units.Linear)
	assert.False(t, ok)
}

func TestCoordinateSystem_AxesAreCopies(t *testing.T) {
	axes := LonLatCS.Axes()
	axes[0].Minimum = 0
	assert.Equal(t, -180.0, LonLatCS.Axis(0).Minimum)
}

func TestAxis_IsLongitude(t *testing.T) {
	assert.True(t, GeodeticLongitude.IsLongitude())
	assert.False(t, GeodeticLatitude.IsLongitude())
	assert.False(t, Easting.IsLongitude())
	assert.False(t, NewAxis("Lon", "Lon", East, units.Degree).IsLongitude())
	assert.True(t, math.IsInf(Easting.Maximum, 1))
}

func TestEllipsoid(t *testing.T) {
	assert.InDelta(t, 6356752.314245, WGS84Ellipsoid.SemiMinorAxis(), 1e-6)
	assert.True(t, WGS84Ellipsoid.IsIvfDefinitive())
	assert.False(t, WGS84Ellipsoid.IsSphere())

	sphere, err := NewFlattenedSphere(Properties{Name: "Sphere"}, 6371000, math.Inf(1), units.Metre)
	require.NoError(t, err)
	assert.True(t, sphere.IsSphere())

	fromAxes, err := NewEllipsoid(Properties{Name: "Clarke 1866"}, 6378206.4, 6356583.8, units.Metre)
	require.NoError(t, err)
	assert.InDelta(t, 294.978698, fromAxes.InverseFlattening(), 1e-6)

	_, err = NewEllipsoid(Properties{Name: "bad"}, 1, 2, units.Metre)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewEllipsoid(Properties{Name: "bad"}, 2, 1, units.Degree)
	assert.ErrorIs(t, err, ErrInvalidKind)
	_, err = NewFlattenedSphere(Properties{Name: "bad"}, 2, 0.5, units.Metre)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestPrimeMeridian(t *testing.T) {
	deg, err := Paris.GreenwichLongitudeIn(units.Degree)
	require.NoError(t, err)
	assert.InDelta(t, 2.33722917, deg, 1e-8)

	_, err = NewPrimeMeridian(Properties{Name: "bad"}, 1, units.Metre)
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestGeodeticDatum(t *testing.T) {
	d, err := NewGeodeticDatum(Properties{Name: "ED50"}, International1924, nil,
		&BursaWolfParameters{Dx: -87, Dy: -98, Dz: -121})
	require.NoError(t, err)
	assert.Same(t, Greenwich, d.PrimeMeridian())
	bw, ok := d.ToWGS84()
	require.True(t, ok)
	assert.Equal(t, [7]float64{-87, -98, -121, 0, 0, 0, 0}, bw.Values())

	_, ok = WGS84Datum.ToWGS84()
	assert.False(t, ok)

	assert.False(t, DatumEquals(d, WGS84Datum, Approximate))
	assert.True(t, DatumEquals(WGS84Datum, WGS84Datum, Strict))
	assert.False(t, DatumEquals(WGS84Datum, geoidDatum, Approximate))

	_, err = NewGeodeticDatum(Properties{Name: "none"}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTemporalDatum_UTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	d, err := NewTemporalDatum(Properties{Name: "t"}, time.Date(2000, 1, 1, 2, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Origin().Location())
	assert.Equal(t, 0, d.Origin().Hour())

	days := float64(Unix.TemporalDatum().Origin().Unix()-Julian.TemporalDatum().Origin().Unix()) / 86400
	assert.Equal(t, 2440587.5, days)
}

func TestIdentification(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{5, 45}, Max: orb.Point{10, 50}}
	p := Properties{
		Name:        "  Test  ",
		Aliases:     []string{"T"},
		Identifiers: []Identifier{{Authority: "EPSG", Code: "1"}},
		Domain:      &Extent{Description: "Alps", Bound: &bound},
	}
	c, err := NewGeographic(p, WGS84Datum, LonLatCS)
	require.NoError(t, err)
	assert.Equal(t, "Test", c.Name())

	id, ok := c.Identifier()
	require.True(t, ok)
	assert.Equal(t, "EPSG:1", id.String())

	bound.Max[0] = 99
	p.Aliases[0] = "changed"
	assert.Equal(t, 10.0, c.Domain().Bound.Max[0])
	assert.Equal(t, []string{"T"}, c.Aliases())

	c.Domain().Bound.Max[0] = 42
	assert.Equal(t, 10.0, c.Domain().Bound.Max[0])
}
