package crs

import (
	"fmt"
	"math"

	"github.com/tingold/orb-crs/units"
)

// CSKind identifies the family of a coordinate system.
type CSKind int

const (
	EllipsoidalCS CSKind = iota
	CartesianCS
	SphericalCS
	VerticalCS
	TimeCS
	AffineCS
	CompoundCS
)

var csKindNames = [...]string{"ellipsoidal", "Cartesian", "spherical", "vertical", "time", "affine", "compound"}

func (k CSKind) String() string {
	if k < 0 || int(k) >= len(csKindNames) {
		return fmt.Sprintf("CSKind(%d)", int(k))
	}
	return csKindNames[k]
}

// CoordinateSystem is an ordered, fixed-length sequence of axes.
type CoordinateSystem struct {
	identification
	kind CSKind
	axes []Axis
}

// NewCoordinateSystem creates a coordinate system of the given kind. The
// number of axes and their units must fit the kind: ellipsoidal systems have
// two angular axes and an optional linear height, Cartesian systems one to
// three linear axes, vertical systems one linear axis, time systems one time
// axis, spherical systems three axes and affine systems two or three.
func NewCoordinateSystem(kind CSKind, p Properties, axes ...Axis) (*CoordinateSystem, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if err := checkAxes(kind, id.name, axes); err != nil {
		return nil, err
	}
	return &CoordinateSystem{identification: id, kind: kind, axes: append([]Axis(nil), axes...)}, nil
}

func checkAxes(kind CSKind, name string, axes []Axis) error {
	min, max := 1, 3
	switch kind {
	case CartesianCS:
	case EllipsoidalCS, AffineCS:
		min = 2
	case SphericalCS:
		min = 3
	case VerticalCS, TimeCS:
		max = 1
	case CompoundCS:
		max = math.MaxInt
	default:
		return fmt.Errorf("%w: coordinate system kind %d", ErrInvalidParameter, int(kind))
	}
	if len(axes) < min || len(axes) > max {
		expected := min
		if len(axes) > max {
			expected = max
		}
		return &DimensionError{What: fmt.Sprintf("%s coordinate system %q", kind, name), Expected: expected, Actual: len(axes)}
	}
	object := kind.String() + " coordinate system"
	for i, a := range axes {
		if a.Unit.IsZero() {
			return fmt.Errorf("%w: axis %d of %q has no unit", ErrInvalidParameter, i, name)
		}
		want := units.None
		switch kind {
		case EllipsoidalCS:
			want = units.Angular
			if i == 2 {
				want = units.Linear
			}
		case CartesianCS, VerticalCS:
			want = units.Linear
		case TimeCS:
			want = units.Time
		}
		if want != units.None && a.Unit.Kind != want {
			return kindError(object, fmt.Sprintf("unit of axis %q", a.Name), want.String(), a.Unit.Kind.String())
		}
	}
	return nil
}

// Kind returns the coordinate system family.
func (cs *CoordinateSystem) Kind() CSKind { return cs.kind }

// Dimension returns the number of axes.
func (cs *CoordinateSystem) Dimension() int { return len(cs.axes) }

// Axis returns a copy of the axis at index i.
func (cs *CoordinateSystem) Axis(i int) Axis { return cs.axes[i] }

// Axes returns a copy of all axes.
func (cs *CoordinateSystem) Axes() []Axis {
	return append([]Axis(nil), cs.axes...)
}

// UnitOf returns the unit shared by every axis of the given unit kind. It
// returns false when no axis has that kind or when the axes disagree.
func (cs *CoordinateSystem) UnitOf(kind units.Kind) (units.Unit, bool) {
	var u units.Unit
	for _, a := range cs.axes {
		if a.Unit.Kind != kind {
			continue
		}
		if !u.IsZero() && u != a.Unit {
			return units.Unit{}, false
		}
		u = a.Unit
	}
	return u, !u.IsZero()
}

// Equals compares two coordinate systems in the given mode.
func (cs *CoordinateSystem) Equals(other any, mode ComparisonMode) bool {
	o, ok := other.(*CoordinateSystem)
	return ok && newComparer(mode).coordinateSystem(cs, o)
}

func (cs *CoordinateSystem) String() string {
	return fmt.Sprintf("%s CS %q (%d axes)", cs.kind, cs.name, len(cs.axes))
}

func (c *comparer) coordinateSystem(a, b *CoordinateSystem) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.kind != b.kind || len(a.axes) != len(b.axes) {
		return false
	}
	if !c.metadata(&a.identification, &b.identification) {
		return false
	}
	for i := range a.axes {
		if !c.axis(a.axes[i], b.axes[i]) {
			return false
		}
	}
	return true
}

func (cs *CoordinateSystem) hash() uint64 {
	h := cs.identification.hash()*31 + uint64(cs.kind)
	for _, a := range cs.axes {
		h = h*31 + a.hash()
	}
	return h
}

// turnEpsilon absorbs rounding in the half turn of non-degree units.
const turnEpsilon = 1e-9

// shiftLongitude returns a copy of cs whose longitude axis bounds follow the
// requested convention. It returns cs itself and false when no axis had to
// change. Bounds move by whole half turns expressed in the axis unit.
func (cs *CoordinateSystem) shiftLongitude(k AxisRangeKind) (*CoordinateSystem, bool) {
	var shifted []Axis
	for i, a := range cs.axes {
		if !a.IsLongitude() {
			continue
		}
		half, err := units.Degree.Convert(180, a.Unit)
		if err != nil {
			continue
		}
		offset := 0.0
		switch k {
		case PositiveLongitude:
			if a.Minimum < 0 {
				offset = math.Ceil(-a.Minimum/half-turnEpsilon) * half
			}
		case SpanningZeroLongitude:
			if a.Minimum >= 0 && a.Maximum > half {
				offset = -math.Round((a.Minimum+a.Maximum)/2/half) * half
			}
		}
		if offset == 0 {
			continue
		}
		if shifted == nil {
			shifted = cs.Axes()
		}
		shifted[i] = a.WithRange(a.Minimum+offset, a.Maximum+offset, a.RangeMeaning)
	}
	if shifted == nil {
		return cs, false
	}
	return &CoordinateSystem{identification: cs.identification.withoutIdentifiers(), kind: cs.kind, axes: shifted}, true
}

// composeCS concatenates the axes of the given systems into a compound
// coordinate system.
func composeCS(name string, parts []*CoordinateSystem) *CoordinateSystem {
	cs := &CoordinateSystem{identification: identification{name: name}, kind: CompoundCS}
	for _, p := range parts {
		cs.axes = append(cs.axes, p.axes...)
	}
	return cs
}
