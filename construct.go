package crs

import (
	"fmt"
)

// singleRules lists, for each single CRS kind, the accepted coordinate system
// kinds and the required datum kind.
var singleRules = map[Kind]struct {
	cs    []CSKind
	datum DatumKind
}{
	Geographic:  {[]CSKind{EllipsoidalCS}, GeodeticDatumKind},
	Geocentric:  {[]CSKind{CartesianCS, SphericalCS}, GeodeticDatumKind},
	Vertical:    {[]CSKind{VerticalCS}, VerticalDatumKind},
	Temporal:    {[]CSKind{TimeCS}, TemporalDatumKind},
	Engineering: {[]CSKind{CartesianCS, AffineCS, SphericalCS, VerticalCS}, EngineeringDatumKind},
	Image:       {[]CSKind{CartesianCS, AffineCS}, ImageDatumKind},
}

func objectName(k Kind) string {
	return k.String() + " CRS"
}

func checkCS(kind Kind, cs *CoordinateSystem, accepted ...CSKind) error {
	if cs == nil {
		return fmt.Errorf("%w: %s has no coordinate system", ErrInvalidParameter, objectName(kind))
	}
	for _, k := range accepted {
		if cs.kind == k {
			return nil
		}
	}
	names := make([]string, len(accepted))
	for i, k := range accepted {
		names[i] = k.String()
	}
	return kindError(objectName(kind), "coordinate system", joinOr(names), cs.kind.String())
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	s := names[0]
	for _, n := range names[1 : len(names)-1] {
		s += ", " + n
	}
	return s + " or " + names[len(names)-1]
}

func isNilDatum(d Datum) bool {
	if d == nil {
		return true
	}
	switch v := d.(type) {
	case *GeodeticDatum:
		return v == nil
	case *VerticalDatum:
		return v == nil
	case *TemporalDatum:
		return v == nil
	case *EngineeringDatum:
		return v == nil
	case *ImageDatum:
		return v == nil
	}
	return false
}

// NewSingle creates a single CRS of the given kind from a datum and a
// coordinate system. It fails with an error matching ErrInvalidKind when the
// datum or coordinate system does not fit the kind.
func NewSingle(kind Kind, p Properties, datum Datum, cs *CoordinateSystem) (*CRS, error) {
	rules, ok := singleRules[kind]
	if !ok {
		return nil, kindError("single CRS", "kind", "a single kind", kind.String())
	}
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if isNilDatum(datum) {
		return nil, fmt.Errorf("%w: %s %q has no datum", ErrInvalidParameter, objectName(kind), id.name)
	}
	if datum.Kind() != rules.datum {
		return nil, kindError(objectName(kind), "datum", rules.datum.String()+" datum", datumName(datum))
	}
	if err := checkCS(kind, cs, rules.cs...); err != nil {
		return nil, err
	}
	if kind == Geocentric && cs.Dimension() != 3 {
		return nil, &DimensionError{What: "geocentric coordinate system", Expected: 3, Actual: cs.Dimension()}
	}
	return &CRS{identification: id, kind: kind, cs: cs, datum: datum}, nil
}

// NewGeographic creates a geographic CRS. cs must be ellipsoidal.
func NewGeographic(p Properties, datum *GeodeticDatum, cs *CoordinateSystem) (*CRS, error) {
	return NewSingle(Geographic, p, datum, cs)
}

// NewGeocentric creates a geocentric CRS. cs must be a three-dimensional
// Cartesian or spherical system.
func NewGeocentric(p Properties, datum *GeodeticDatum, cs *CoordinateSystem) (*CRS, error) {
	return NewSingle(Geocentric, p, datum, cs)
}

// NewVertical creates a vertical CRS.
func NewVertical(p Properties, datum *VerticalDatum, cs *CoordinateSystem) (*CRS, error) {
	return NewSingle(Vertical, p, datum, cs)
}

// NewTemporal creates a temporal CRS.
func NewTemporal(p Properties, datum *TemporalDatum, cs *CoordinateSystem) (*CRS, error) {
	return NewSingle(Temporal, p, datum, cs)
}

// NewEngineering creates an engineering CRS.
func NewEngineering(p Properties, datum *EngineeringDatum, cs *CoordinateSystem) (*CRS, error) {
	return NewSingle(Engineering, p, datum, cs)
}

// NewImage creates an image CRS.
func NewImage(p Properties, datum *ImageDatum, cs *CoordinateSystem) (*CRS, error) {
	return NewSingle(Image, p, datum, cs)
}

// NewDerived creates a CRS derived from base by conv. The transform of conv
// must consume base coordinates and produce coordinates in cs; otherwise the
// error matches ErrMismatchedDimension.
func NewDerived(p Properties, base *CRS, conv *Conversion, cs *CoordinateSystem) (*CRS, error) {
	return newDerived(Derived, p, base, conv, cs)
}

// NewProjected creates a projected CRS. The base must be geographic, the
// conversion a map projection and cs Cartesian.
func NewProjected(p Properties, base *CRS, conv *Conversion, cs *CoordinateSystem) (*CRS, error) {
	return newDerived(Projected, p, base, conv, cs)
}

func newDerived(kind Kind, p Properties, base *CRS, conv *Conversion, cs *CoordinateSystem) (*CRS, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	object := objectName(kind)
	if base == nil {
		return nil, fmt.Errorf("%w: %s %q has no base CRS", ErrInvalidParameter, object, id.name)
	}
	if conv == nil {
		return nil, fmt.Errorf("%w: %s %q has no conversion", ErrInvalidParameter, object, id.name)
	}
	if base.kind == Compound {
		return nil, kindError(object, "base CRS", "a single CRS", base.kind.String())
	}
	if kind == Projected {
		if base.kind != Geographic {
			return nil, kindError(object, "base CRS", Geographic.String(), base.kind.String())
		}
		if !conv.ctype.IsProjection() {
			return nil, kindError(object, "conversion type", "a map projection", conv.ctype.String())
		}
		if err := checkCS(kind, cs, CartesianCS); err != nil {
			return nil, err
		}
	} else if err := checkCS(kind, cs, EllipsoidalCS, CartesianCS, SphericalCS, VerticalCS, TimeCS, AffineCS); err != nil {
		return nil, err
	}
	mt := conv.transform
	if mt.SourceDimension() != base.Dimension() {
		return nil, &DimensionError{What: "conversion source", Expected: base.Dimension(), Actual: mt.SourceDimension()}
	}
	if mt.TargetDimension() != cs.Dimension() {
		return nil, &DimensionError{What: "conversion target", Expected: cs.Dimension(), Actual: mt.TargetDimension()}
	}
	c := &CRS{identification: id, kind: kind, cs: cs, datum: base.datum, base: base}
	c.conversion = conv.bind(base, c)
	return c, nil
}

// NewCompound creates a compound CRS. Nested compound components are replaced
// by their own components, so the result only holds single CRS.
func NewCompound(p Properties, components ...*CRS) (*CRS, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	flat, err := flatten(components)
	if err != nil {
		return nil, err
	}
	return &CRS{identification: id, kind: Compound, components: flat}, nil
}

func flatten(components []*CRS) ([]*CRS, error) {
	var flat []*CRS
	for i, c := range components {
		switch {
		case c == nil:
			return nil, fmt.Errorf("%w: compound component %d is nil", ErrInvalidParameter, i)
		case c.kind == Compound:
			flat = append(flat, c.components...)
		default:
			flat = append(flat, c)
		}
	}
	if len(flat) == 0 {
		return nil, ErrEmptyCompound
	}
	return flat, nil
}
