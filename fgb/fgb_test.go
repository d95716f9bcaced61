package fgb

import (
	"bytes"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crs "github.com/tingold/orb-crs"
)

func cities() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	add := func(name string, lon, lat float64, population int, capital bool, elevation float64) {
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.Properties = geojson.Properties{
			"name":       name,
			"population": population,
			"capital":    capital,
			"elevation":  elevation,
		}
		fc.Append(f)
	}
	add("Paris", 2.3522, 48.8566, 2102650, true, 35)
	add("New York", -73.9857, 40.7484, 8336817, false, 10)
	add("Tokyo", 139.6917, 35.6895, 13960000, true, 40.5)
	return fc
}

func write(t *testing.T, fc *geojson.FeatureCollection, opts *Options) *Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteFeatures(&buf, fc, opts))
	r, err := NewReaderFromData(buf.Bytes())
	require.NoError(t, err)
	return r
}

func byName(t *testing.T, fc *geojson.FeatureCollection) map[string]*geojson.Feature {
	t.Helper()
	m := make(map[string]*geojson.Feature)
	for _, f := range fc.Features {
		m[f.Properties.MustString("name")] = f
	}
	return m
}

func TestWriteFeatures_RoundTrip(t *testing.T) {
	opts := DefaultOptions()
	opts.Name = "cities"
	opts.CRS = crs.WGS84
	r := write(t, cities(), opts)
	defer r.Close()

	h := r.Header()
	require.NotNil(t, h)
	assert.Equal(t, "cities", h.Name)
	assert.Equal(t, "Point", h.GeometryType)
	assert.Equal(t, uint64(3), h.FeaturesCount)
	assert.True(t, h.HasIndex)
	assert.InDelta(t, -73.9857, h.Envelope[0], 1e-9)
	assert.InDelta(t, 139.6917, h.Envelope[2], 1e-9)

	require.Len(t, h.Columns, 4)
	assert.Equal(t, ColumnInfo{Name: "capital", Type: "Bool", Nullable: true}, h.Columns[0])
	assert.Equal(t, "Double", h.Columns[1].Type)
	assert.Equal(t, "String", h.Columns[2].Type)
	assert.Equal(t, "Long", h.Columns[3].Type)

	fc, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	got := byName(t, fc)
	require.Contains(t, got, "Tokyo")
	assert.Equal(t, orb.Point{139.6917, 35.6895}, got["Tokyo"].Geometry)
	assert.Equal(t, int64(13960000), got["Tokyo"].Properties["population"])
	assert.Equal(t, true, got["Tokyo"].Properties["capital"])
	assert.Equal(t, 40.5, got["Tokyo"].Properties["elevation"])
	assert.Equal(t, 35.0, got["Paris"].Properties["elevation"])

	found, err := r.Search(orb.Bound{Min: orb.Point{0, 40}, Max: orb.Point{10, 50}})
	require.NoError(t, err)
	require.Len(t, found.Features, 1)
	assert.Equal(t, "Paris", found.Features[0].Properties.MustString("name"))
}

func TestWriteFeatures_CRSHeader(t *testing.T) {
	r := write(t, cities(), &Options{IncludeIndex: true, CRS: crs.WGS84})
	h := r.Header()
	require.NotNil(t, h.CRS)
	assert.Equal(t, "CRS", h.CRS.Org)
	assert.Equal(t, int32(84), h.CRS.Code)
	assert.Equal(t, "WGS84(DD)", h.CRS.Name)
	assert.Contains(t, h.CRS.WKT, `GEOGCS["WGS84(DD)", DATUM["World Geodetic System 1984"`)

	c, err := r.CRS(nil)
	require.NoError(t, err)
	assert.Same(t, crs.WGS84, c)
}

func TestReader_CRSResolvesThroughRegistry(t *testing.T) {
	utm, err := crs.UTM(33, true)
	require.NoError(t, err)
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString{{400000, 5000000}, {410000, 5010000}}))
	r := write(t, fc, &Options{IncludeIndex: true, CRS: utm})

	info := r.Header().CRS
	require.NotNil(t, info)
	assert.Equal(t, "EPSG:32633", info.Key())
	assert.Contains(t, info.WKT, `PROJCS["WGS 84 / UTM zone 33N"`)

	_, err = r.CRS(nil)
	assert.ErrorIs(t, err, ErrUnknownCRS)

	reg := crs.NewRegistry()
	require.NoError(t, reg.Register(utm))
	c, err := r.CRS(reg)
	require.NoError(t, err)
	assert.Same(t, utm, c)
}

func TestReader_NoCRS(t *testing.T) {
	r := write(t, cities(), nil)
	assert.Nil(t, r.Header().CRS)
	_, err := r.CRS(nil)
	assert.ErrorIs(t, err, ErrNoCRS)
}

func TestWrite_MixedGeometries(t *testing.T) {
	geoms := []orb.Geometry{
		orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{2, 2}, {4, 2}, {4, 4}, {2, 2}},
		},
		orb.MultiLineString{{{20, 20}, {21, 21}}, {{22, 22}, {23, 23}, {24, 24}}},
		orb.MultiPolygon{{{{30, 30}, {31, 30}, {31, 31}, {30, 30}}}},
		nil,
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, geoms, nil))
	r, err := NewReaderFromData(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Unknown", r.Header().GeometryType)

	fc, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)

	var poly orb.Polygon
	var mls orb.MultiLineString
	var mp orb.MultiPolygon
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			poly = g
		case orb.MultiLineString:
			mls = g
		case orb.MultiPolygon:
			mp = g
		}
	}
	assert.Equal(t, geoms[0], poly)
	assert.Equal(t, geoms[1], mls)
	assert.Equal(t, geoms[2], mp)
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, nil, nil), ErrNilGeometry)
	assert.ErrorIs(t, WriteFeature(&buf, nil, nil), ErrNilGeometry)
	assert.ErrorIs(t, Write(&buf, []orb.Geometry{orb.Collection{orb.Point{1, 2}}}, nil), ErrUnsupportedType)
}

func TestWrite_WithoutIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFeatures(&buf, cities(), &Options{CRS: crs.WGS84}))
	r, err := NewReaderFromData(buf.Bytes())
	require.NoError(t, err)
	assert.False(t, r.Header().HasIndex)
	assert.NotNil(t, r.Header().CRS)
	_, err = r.Search(orb.Bound{Max: orb.Point{1, 1}})
	assert.ErrorIs(t, err, ErrNoIndex)
}

func TestNormalizeLongitudes(t *testing.T) {
	line := orb.LineString{{170, 10}, {190, 10}, {-190, 10}, {540, 0}}
	got := NormalizeLongitudes(line, crs.WGS84)
	assert.Equal(t, orb.LineString{{170, 10}, {-170, 10}, {170, 10}, {-180, 0}}, got)
	assert.Equal(t, 190.0, line[1][0])

	positive := crs.WGS84.ShiftAxisRange(crs.PositiveLongitude)
	assert.Equal(t, orb.Point{286.0143, 40.7484}, roundPoint(NormalizeLongitudes(orb.Point{-73.9857, 40.7484}, positive).(orb.Point)))

	assert.Equal(t, line, NormalizeLongitudes(line, crs.Cartesian2D))
	assert.Nil(t, NormalizeLongitudes(nil, crs.WGS84))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max float64
		want        float64
	}{
		{"inside", 10, -180, 180, 10},
		{"above", 190, -180, 180, -170},
		{"below", -190, -180, 180, 170},
		{"positive range", -90, 0, 360, 270},
		{"empty range", 190, 0, 0, 190},
		{"inverted range", 190, 10, -10, 190},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.v, tt.min, tt.max)
			assert.False(t, math.IsNaN(got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func roundPoint(p orb.Point) orb.Point {
	const scale = 1e4
	for i := range p {
		p[i] = float64(int64(p[i]*scale+0.5)) / scale
	}
	return p
}

func TestWriteFeatures_NormalizeLongitudes(t *testing.T) {
	positive := crs.WGS84.ShiftAxisRange(crs.PositiveLongitude)
	r := write(t, cities(), &Options{IncludeIndex: true, CRS: positive, NormalizeLongitudes: true})

	h := r.Header()
	assert.GreaterOrEqual(t, h.Envelope[0], 0.0)
	assert.Equal(t, positive.Name(), h.CRS.Name)
	assert.Contains(t, h.CRS.WKT, `AXIS["Geodetic longitude", EAST]`)

	fc, err := r.ReadAll()
	require.NoError(t, err)
	ny := byName(t, fc)["New York"].Geometry.(orb.Point)
	assert.InDelta(t, 286.0143, ny[0], 1e-9)

	// The registry entry of the same name carries an AUTHORITY the shifted
	// CRS lacks.
	_, err = r.CRS(nil)
	assert.ErrorIs(t, err, ErrUnknownCRS)
}

func TestDescribe(t *testing.T) {
	info, err := Describe(crs.Julian)
	require.NoError(t, err)
	assert.Equal(t, "", info.Key())
	assert.Contains(t, info.WKT, "TIMECRS")

	_, err = Describe(nil)
	assert.Error(t, err)
}
