package crs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingold/orb-crs/units"
)

func TestShiftAxisRange_WGS84(t *testing.T) {
	positive := WGS84.ShiftAxisRange(PositiveLongitude)
	require.NotSame(t, WGS84, positive)
	assert.Equal(t, Geographic, positive.Kind())
	assert.Equal(t, "WGS84(DD)", positive.Name())
	assert.Empty(t, positive.Identifiers())
	assert.Same(t, WGS84Datum, positive.GeodeticDatum())

	lon := positive.CoordinateSystem().Axis(0)
	assert.Equal(t, 0.0, lon.Minimum)
	assert.Equal(t, 360.0, lon.Maximum)
	assert.Equal(t, Wraparound, lon.RangeMeaning)
	assert.Equal(t, GeodeticLatitude, positive.CoordinateSystem().Axis(1))

	assert.False(t, positive.Equals(WGS84, IgnoreMetadata))
	assert.True(t, positive.Equals(WGS84, Approximate))

	// The original axes are untouched.
	assert.Equal(t, -180.0, WGS84.CoordinateSystem().Axis(0).Minimum)
}

func TestShiftAxisRange_AlreadyInRange(t *testing.T) {
	assert.Same(t, WGS84, WGS84.ShiftAxisRange(SpanningZeroLongitude))
	assert.Same(t, WGS84_3D, WGS84_3D.ShiftAxisRange(SpanningZeroLongitude))
}

func TestShiftAxisRange_Idempotent(t *testing.T) {
	compound, err := NewCompound(Properties{Name: "c"}, WGS84, GeoidalHeight)
	require.NoError(t, err)

	for _, c := range []*CRS{WGS84, WGS84_3D, compound} {
		for _, k := range []AxisRangeKind{PositiveLongitude, SpanningZeroLongitude} {
			once := c.ShiftAxisRange(k)
			assert.Same(t, once, c.ShiftAxisRange(k), "%s %s cached", c, k)
			assert.Same(t, once, once.ShiftAxisRange(k), "%s %s twice", c, k)
		}
	}
}

func TestShiftAxisRange_Reciprocal(t *testing.T) {
	compound, err := NewCompound(Properties{Name: "c"}, WGS84_3D, Unix)
	require.NoError(t, err)

	for _, c := range []*CRS{WGS84, WGS84_3D, compound} {
		back := c.ShiftAxisRange(PositiveLongitude).ShiftAxisRange(SpanningZeroLongitude)
		assert.True(t, back.Equals(c, IgnoreMetadata), "%s", c)
		assert.Same(t, c, back, "%s", c)
	}
}

func TestShiftAxisRange_Compound(t *testing.T) {
	compound, err := NewCompound(Properties{Name: "WGS84 + height + time"}, WGS84, GeoidalHeight, Unix)
	require.NoError(t, err)

	shifted := compound.ShiftAxisRange(PositiveLongitude)
	require.NotSame(t, compound, shifted)
	comps := shifted.Components()
	require.Len(t, comps, 3)
	assert.Same(t, WGS84.ShiftAxisRange(PositiveLongitude), comps[0])
	assert.Same(t, GeoidalHeight, comps[1])
	assert.Same(t, Unix, comps[2])
	assert.Equal(t, 360.0, shifted.CoordinateSystem().Axis(0).Maximum)

	noGeographic, err := NewCompound(Properties{Name: "h+t"}, GeoidalHeight, Unix)
	require.NoError(t, err)
	assert.Same(t, noGeographic, noGeographic.ShiftAxisRange(PositiveLongitude))
}

func TestShiftAxisRange_OtherKinds(t *testing.T) {
	utm, err := UTM(33, false)
	require.NoError(t, err)
	for _, c := range []*CRS{GeocentricCartesian, EllipsoidalHeight, Julian, Cartesian2D, utm} {
		assert.Same(t, c, c.ShiftAxisRange(PositiveLongitude), "%s", c)
	}
}

func TestShiftAxisRange_Grads(t *testing.T) {
	lon := NewAxis("Longitude", "Lon", East, units.Grad).WithRange(-200, 200, Wraparound)
	lat := NewAxis("Latitude", "Lat", North, units.Grad).WithRange(-100, 100, Exact)
	cs, err := NewCoordinateSystem(EllipsoidalCS, Properties{Name: "grads"}, lon, lat)
	require.NoError(t, err)
	c, err := NewGeographic(Properties{Name: "NTF (Paris)"}, WGS84Datum, cs)
	require.NoError(t, err)

	shifted := c.ShiftAxisRange(PositiveLongitude).CoordinateSystem().Axis(0)
	assert.InDelta(t, 0, shifted.Minimum, 1e-9)
	assert.InDelta(t, 400, shifted.Maximum, 1e-9)
}

func TestShiftAxisRange_Concurrent(t *testing.T) {
	c := newTestGeographic(t, "Concurrent")
	kinds := []AxisRangeKind{PositiveLongitude, SpanningZeroLongitude}

	const workers = 32
	results := make([][2]*CRS, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range kinds {
				results[i][j] = c.ShiftAxisRange(kinds[(i+j)%2])
			}
		}(i)
	}
	wg.Wait()

	positive := c.ShiftAxisRange(PositiveLongitude)
	for i := range results {
		for j := range kinds {
			want := c
			if kinds[(i+j)%2] == PositiveLongitude {
				want = positive
			}
			assert.Same(t, want, results[i][j])
		}
	}
}

func TestShiftAxisRange_InvalidKindPanics(t *testing.T) {
	assert.Panics(t, func() { WGS84.ShiftAxisRange(AxisRangeKind(7)) })
}

func TestParseAxisRangeKind(t *testing.T) {
	k, err := ParseAxisRangeKind("positive")
	require.NoError(t, err)
	assert.Equal(t, PositiveLongitude, k)

	k, err = ParseAxisRangeKind("SPANNING_ZERO_LONGITUDE")
	require.NoError(t, err)
	assert.Equal(t, SpanningZeroLongitude, k)

	_, err = ParseAxisRangeKind("east")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
