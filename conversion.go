package crs

import (
	"fmt"
	"strings"

	"github.com/tingold/orb-crs/transform"
	"github.com/tingold/orb-crs/units"
)

// ConversionType is the declared type of a conversion. Projected CRS only
// accept the projection family.
type ConversionType int

const (
	GenericConversion ConversionType = iota
	PlanarProjection
	CylindricalProjection
	ConicProjection
)

var conversionTypeNames = [...]string{"conversion", "planar projection", "cylindrical projection", "conic projection"}

func (t ConversionType) String() string {
	if t < 0 || int(t) >= len(conversionTypeNames) {
		return fmt.Sprintf("ConversionType(%d)", int(t))
	}
	return conversionTypeNames[t]
}

// IsProjection reports whether t belongs to the map projection family.
func (t ConversionType) IsProjection() bool {
	return t >= PlanarProjection && t <= ConicProjection
}

// OperationMethod names the algorithm of a conversion.
type OperationMethod struct {
	Name       string
	Identifier Identifier // Zero when the method has no authority code
}

// ParameterValue is one parameter of a conversion, in its declared unit.
type ParameterValue struct {
	Name  string
	Value float64
	Unit  units.Unit
}

// Conversion relates a derived CRS to its base CRS. Once bound by a derived
// CRS constructor, its source is the base CRS and its target is the derived
// CRS that owns it.
type Conversion struct {
	identification
	ctype     ConversionType
	method    OperationMethod
	params    []ParameterValue
	transform transform.MathTransform

	source *CRS
	target *CRS
}

// NewConversion creates an unbound conversion. mt goes from base to derived
// coordinates.
func NewConversion(p Properties, ctype ConversionType, method OperationMethod, params []ParameterValue, mt transform.MathTransform) (*Conversion, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if mt == nil {
		return nil, fmt.Errorf("%w: conversion %q has no transform", ErrInvalidParameter, id.name)
	}
	if strings.TrimSpace(method.Name) == "" {
		return nil, fmt.Errorf("%w: conversion %q has no method", ErrInvalidParameter, id.name)
	}
	return &Conversion{
		identification: id,
		ctype:          ctype,
		method:         method,
		params:         append([]ParameterValue(nil), params...),
		transform:      mt,
	}, nil
}

// bind returns a copy of cv attached to the given base and derived CRS.
func (cv *Conversion) bind(source, target *CRS) *Conversion {
	b := *cv
	b.source, b.target = source, target
	return &b
}

func (cv *Conversion) Type() ConversionType { return cv.ctype }
func (cv *Conversion) Method() OperationMethod { return cv.method }
func (cv *Conversion) Transform() transform.MathTransform { return cv.transform }

// Source returns the base CRS, or nil if the conversion is not bound.
func (cv *Conversion) Source() *CRS { return cv.source }

// Target returns the derived CRS owning the conversion, or nil if the
// conversion is not bound.
func (cv *Conversion) Target() *CRS { return cv.target }

// Parameters returns a copy of the parameter values.
func (cv *Conversion) Parameters() []ParameterValue {
	return append([]ParameterValue(nil), cv.params...)
}

// Parameter looks a parameter up by name, ignoring case.
func (cv *Conversion) Parameter(name string) (ParameterValue, bool) {
	for _, p := range cv.params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ParameterValue{}, false
}

// Equals compares two conversions in the given mode, including their source
// and target CRS.
func (cv *Conversion) Equals(other any, mode ComparisonMode) bool {
	o, ok := other.(*Conversion)
	return ok && newComparer(mode).conversion(cv, o)
}

func (c *comparer) conversion(a, b *Conversion) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ctype != b.ctype || !c.metadata(&a.identification, &b.identification) {
		return false
	}
	if !c.approximate() && !strings.EqualFold(a.method.Name, b.method.Name) {
		return false
	}
	if !c.metadataIgnored() && a.method.Identifier != b.method.Identifier {
		return false
	}
	if len(a.params) != len(b.params) {
		return false
	}
	for i, p := range a.params {
		q := b.params[i]
		if !strings.EqualFold(p.Name, q.Name) || !c.unit(p.Unit, q.Unit) || !c.float(p.Value, q.Value) {
			return false
		}
	}
	if !a.transform.Equal(b.transform, c.tolerance()) {
		return false
	}
	return c.crs(a.source, b.source) && c.crs(a.target, b.target)
}
