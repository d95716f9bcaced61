package crs

import (
	"fmt"
	"math"

	"github.com/tingold/orb-crs/units"
)

// AxisDirection is the direction of increasing values along an axis.
type AxisDirection int

const (
	DirectionOther AxisDirection = iota
	North
	South
	East
	West
	Up
	Down
	GeocentricX
	GeocentricY
	GeocentricZ
	Future
	Past
	ColumnPositive
	RowPositive
	DisplayRight
	DisplayDown
)

var directionNames = [...]string{
	"OTHER", "NORTH", "SOUTH", "EAST", "WEST", "UP", "DOWN",
	"GEOCENTRIC_X", "GEOCENTRIC_Y", "GEOCENTRIC_Z", "FUTURE", "PAST",
	"COLUMN_POSITIVE", "ROW_POSITIVE", "DISPLAY_RIGHT", "DISPLAY_DOWN",
}

func (d AxisDirection) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("AxisDirection(%d)", int(d))
	}
	return directionNames[d]
}

// RangeMeaning tells how values outside [Minimum, Maximum] are interpreted.
type RangeMeaning int

const (
	// Exact bounds: values outside the range are invalid.
	Exact RangeMeaning = iota
	// Wraparound bounds: the axis is cyclic, as longitude is.
	Wraparound
)

func (r RangeMeaning) String() string {
	if r == Wraparound {
		return "wraparound"
	}
	return "exact"
}

// Axis is one axis of a coordinate system. Axis is a value type: copies are
// independent and coordinate systems only hand out copies.
type Axis struct {
	Name         string
	Abbreviation string
	Direction    AxisDirection
	Unit         units.Unit
	Minimum      float64 // -Inf when unbounded
	Maximum      float64 // +Inf when unbounded
	RangeMeaning RangeMeaning
}

// NewAxis creates an unbounded axis.
func NewAxis(name, abbreviation string, direction AxisDirection, unit units.Unit) Axis {
	return Axis{
		Name:         name,
		Abbreviation: abbreviation,
		Direction:    direction,
		Unit:         unit,
		Minimum:      math.Inf(-1),
		Maximum:      math.Inf(1),
	}
}

// WithRange returns a copy of a with the given bounds.
func (a Axis) WithRange(min, max float64, meaning RangeMeaning) Axis {
	a.Minimum, a.Maximum, a.RangeMeaning = min, max, meaning
	return a
}

// IsBounded reports whether both bounds are finite.
func (a Axis) IsBounded() bool {
	return !math.IsInf(a.Minimum, 0) && !math.IsInf(a.Maximum, 0) &&
		!math.IsNaN(a.Minimum) && !math.IsNaN(a.Maximum)
}

// IsLongitude reports whether a is a cyclic east-west angular axis, the only
// kind of axis affected by range shifts.
func (a Axis) IsLongitude() bool {
	return (a.Direction == East || a.Direction == West) &&
		a.Unit.Kind == units.Angular &&
		a.RangeMeaning == Wraparound &&
		a.IsBounded()
}

func (a Axis) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name, a.Direction, a.Unit)
}

func (c *comparer) axis(a, b Axis) bool {
	if !c.metadataIgnored() && (a.Name != b.Name || a.Abbreviation != b.Abbreviation) {
		return false
	}
	if a.Direction != b.Direction || !c.unit(a.Unit, b.Unit) {
		return false
	}
	if c.approximate() {
		return true
	}
	return a.RangeMeaning == b.RangeMeaning && c.float(a.Minimum, b.Minimum) && c.float(a.Maximum, b.Maximum)
}

func (a Axis) hash() uint64 {
	h := uint64(a.Direction)
	h = h*31 + math.Float64bits(a.Unit.ToSI)
	h = h*31 + math.Float64bits(a.Minimum)
	return h*31 + math.Float64bits(a.Maximum)
}
