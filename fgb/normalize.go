package fgb

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	crs "github.com/tingold/orb-crs"
)

// longitudeRange returns the index among the first two axes of c and the
// range of its longitude axis.
func longitudeRange(c *crs.CRS) (axis int, min, max float64, ok bool) {
	cs := c.CoordinateSystem()
	for i := 0; i < cs.Dimension() && i < 2; i++ {
		if a := cs.Axis(i); a.IsLongitude() {
			return i, a.Minimum, a.Maximum, true
		}
	}
	return 0, 0, 0, false
}

// wrap moves v into [min, max] by whole turns. Values already inside are
// returned unchanged, as are all values of an empty range.
func wrap(v, min, max float64) float64 {
	if v >= min && v <= max {
		return v
	}
	span := max - min
	if span <= 0 {
		return v
	}
	return v - math.Floor((v-min)/span)*span
}

// NormalizeLongitudes returns a copy of g with the longitudes wrapped into
// the longitude axis range of c. Use c.ShiftAxisRange first to write in the
// [0, 360] convention. g is returned as is when c has no bounded wraparound
// longitude axis.
func NormalizeLongitudes(g orb.Geometry, c *crs.CRS) orb.Geometry {
	if g == nil || c == nil {
		return g
	}
	axis, min, max, ok := longitudeRange(c)
	if !ok {
		return g
	}
	return project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		p[axis] = wrap(p[axis], min, max)
		return p
	})
}
