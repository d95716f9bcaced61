// Package units defines the units of measure carried by coordinate system axes,
// ellipsoids, prime meridians and operation parameters.
package units

import (
	"errors"
	"fmt"
	"math"
)

// ErrIncompatible is returned when converting between units of different kinds.
var ErrIncompatible = errors.New("units: incompatible units")

// Kind is the physical quantity measured by a unit.
type Kind int

const (
	// None is the kind of the zero Unit.
	None Kind = iota
	Angular
	Linear
	Time
	Scale
)

var kindNames = [...]string{"none", "angular", "linear", "time", "scale"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Unit is an immutable unit of measure. Two units are the same unit when all
// their fields are equal, so Unit values can be compared with ==.
type Unit struct {
	Name   string  // Name used in textual output (e.g. "degree")
	Symbol string  // Short symbol (e.g. "°")
	Kind   Kind    // Measured quantity
	ToSI   float64 // Factor converting a value in this unit to the SI unit of Kind
}

// Well-known units.
var (
	Radian    = Unit{Name: "radian", Symbol: "rad", Kind: Angular, ToSI: 1}
	Degree    = Unit{Name: "degree", Symbol: "°", Kind: Angular, ToSI: math.Pi / 180}
	Grad      = Unit{Name: "grad", Symbol: "grad", Kind: Angular, ToSI: math.Pi / 200}
	ArcSecond = Unit{Name: "arc-second", Symbol: "″", Kind: Angular, ToSI: math.Pi / (180 * 3600)}

	Metre        = Unit{Name: "metre", Symbol: "m", Kind: Linear, ToSI: 1}
	Kilometre    = Unit{Name: "kilometre", Symbol: "km", Kind: Linear, ToSI: 1000}
	Foot         = Unit{Name: "foot", Symbol: "ft", Kind: Linear, ToSI: 0.3048}
	USSurveyFoot = Unit{Name: "US survey foot", Symbol: "ftUS", Kind: Linear, ToSI: 1200.0 / 3937.0}

	Second      = Unit{Name: "second", Symbol: "s", Kind: Time, ToSI: 1}
	Millisecond = Unit{Name: "millisecond", Symbol: "ms", Kind: Time, ToSI: 0.001}
	Day         = Unit{Name: "day", Symbol: "d", Kind: Time, ToSI: 86400}

	Unity = Unit{Name: "unity", Symbol: "", Kind: Scale, ToSI: 1}
	PPM   = Unit{Name: "parts per million", Symbol: "ppm", Kind: Scale, ToSI: 1e-6}
)

// IsZero reports whether u is the zero Unit, meaning "no unit declared".
func (u Unit) IsZero() bool {
	return u == Unit{}
}

// Compatible reports whether values can be converted between u and other.
func (u Unit) Compatible(other Unit) bool {
	return u.Kind != None && u.Kind == other.Kind
}

// Convert converts v expressed in u into the unit to.
func (u Unit) Convert(v float64, to Unit) (float64, error) {
	if u == to {
		return v, nil
	}
	if !u.Compatible(to) {
		return v, fmt.Errorf("%w: %s to %s", ErrIncompatible, u.Name, to.Name)
	}
	return v * u.ToSI / to.ToSI, nil
}

// FromDegrees converts an angle in degrees into u. It returns NaN if u is not
// angular.
func (u Unit) FromDegrees(deg float64) float64 {
	v, err := Degree.Convert(deg, u)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (u Unit) String() string {
	if u.IsZero() {
		return "<none>"
	}
	return u.Name
}
