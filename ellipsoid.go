package crs

import (
	"fmt"
	"math"

	"github.com/tingold/orb-crs/units"
)

// Ellipsoid is the reference ellipsoid of a geodetic datum.
type Ellipsoid struct {
	identification
	semiMajor         float64
	semiMinor         float64
	inverseFlattening float64
	ivfDefinitive     bool
	unit              units.Unit
}

// NewEllipsoid creates an ellipsoid from its two axis lengths.
func NewEllipsoid(p Properties, semiMajor, semiMinor float64, unit units.Unit) (*Ellipsoid, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if err := checkEllipsoid(semiMajor, semiMinor, unit); err != nil {
		return nil, err
	}
	ivf := math.Inf(1)
	if semiMajor != semiMinor {
		ivf = semiMajor / (semiMajor - semiMinor)
	}
	return &Ellipsoid{identification: id, semiMajor: semiMajor, semiMinor: semiMinor, inverseFlattening: ivf, unit: unit}, nil
}

// NewFlattenedSphere creates an ellipsoid from its semi-major axis and inverse
// flattening. An infinite inverse flattening defines a sphere.
func NewFlattenedSphere(p Properties, semiMajor, inverseFlattening float64, unit units.Unit) (*Ellipsoid, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if !(inverseFlattening > 1) {
		return nil, fmt.Errorf("%w: inverse flattening %v", ErrInvalidParameter, inverseFlattening)
	}
	semiMinor := semiMajor
	if !math.IsInf(inverseFlattening, 1) {
		semiMinor = semiMajor * (1 - 1/inverseFlattening)
	}
	if err := checkEllipsoid(semiMajor, semiMinor, unit); err != nil {
		return nil, err
	}
	return &Ellipsoid{
		identification:    id,
		semiMajor:         semiMajor,
		semiMinor:         semiMinor,
		inverseFlattening: inverseFlattening,
		ivfDefinitive:     true,
		unit:              unit,
	}, nil
}

func checkEllipsoid(semiMajor, semiMinor float64, unit units.Unit) error {
	if !(semiMajor > 0) || !(semiMinor > 0) || math.IsInf(semiMajor, 0) || semiMinor > semiMajor {
		return fmt.Errorf("%w: ellipsoid axes %v, %v", ErrInvalidParameter, semiMajor, semiMinor)
	}
	if unit.Kind != units.Linear {
		return kindError("ellipsoid", "unit", "linear", unit.String())
	}
	return nil
}

// SemiMajorAxis returns the equatorial radius in Unit.
func (e *Ellipsoid) SemiMajorAxis() float64 { return e.semiMajor }

// SemiMinorAxis returns the polar radius in Unit.
func (e *Ellipsoid) SemiMinorAxis() float64 { return e.semiMinor }

// InverseFlattening returns a/(a-b), or +Inf for a sphere.
func (e *Ellipsoid) InverseFlattening() float64 { return e.inverseFlattening }

// IsIvfDefinitive reports whether the inverse flattening is the defining
// parameter rather than the semi-minor axis.
func (e *Ellipsoid) IsIvfDefinitive() bool { return e.ivfDefinitive }

// IsSphere reports whether both axes have the same length.
func (e *Ellipsoid) IsSphere() bool { return e.semiMajor == e.semiMinor }

// Unit returns the unit of the axis lengths.
func (e *Ellipsoid) Unit() units.Unit { return e.unit }

// Equals compares two ellipsoids in the given mode.
func (e *Ellipsoid) Equals(other any, mode ComparisonMode) bool {
	o, ok := other.(*Ellipsoid)
	return ok && newComparer(mode).ellipsoid(e, o)
}

func (c *comparer) ellipsoid(a, b *Ellipsoid) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !c.metadata(&a.identification, &b.identification) {
		return false
	}
	if !c.metadataIgnored() {
		return a.ivfDefinitive == b.ivfDefinitive && a.unit == b.unit &&
			a.semiMajor == b.semiMajor && a.semiMinor == b.semiMinor
	}
	am, _ := a.unit.Convert(1, units.Metre)
	bm, _ := b.unit.Convert(1, units.Metre)
	return c.float(a.semiMajor*am, b.semiMajor*bm) && c.float(a.semiMinor*am, b.semiMinor*bm)
}

func (e *Ellipsoid) hash() uint64 {
	h := e.identification.hash()
	h = h*31 + math.Float64bits(e.semiMajor)
	return h*31 + math.Float64bits(e.semiMinor)
}

// PrimeMeridian is the origin of longitudes of a geodetic datum.
type PrimeMeridian struct {
	identification
	greenwichLongitude float64
	unit               units.Unit
}

// NewPrimeMeridian creates a prime meridian at the given longitude from
// Greenwich, expressed in an angular unit.
func NewPrimeMeridian(p Properties, greenwichLongitude float64, unit units.Unit) (*PrimeMeridian, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if unit.Kind != units.Angular {
		return nil, kindError("prime meridian", "unit", "angular", unit.String())
	}
	return &PrimeMeridian{identification: id, greenwichLongitude: greenwichLongitude, unit: unit}, nil
}

// GreenwichLongitude returns the longitude from Greenwich in Unit.
func (pm *PrimeMeridian) GreenwichLongitude() float64 { return pm.greenwichLongitude }

// Unit returns the angular unit of GreenwichLongitude.
func (pm *PrimeMeridian) Unit() units.Unit { return pm.unit }

// GreenwichLongitudeIn returns the longitude from Greenwich converted to u.
func (pm *PrimeMeridian) GreenwichLongitudeIn(u units.Unit) (float64, error) {
	return pm.unit.Convert(pm.greenwichLongitude, u)
}

func (c *comparer) primeMeridian(a, b *PrimeMeridian) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !c.metadata(&a.identification, &b.identification) {
		return false
	}
	if !c.metadataIgnored() {
		return a.unit == b.unit && a.greenwichLongitude == b.greenwichLongitude
	}
	ad, _ := a.GreenwichLongitudeIn(units.Degree)
	bd, _ := b.GreenwichLongitudeIn(units.Degree)
	return c.float(ad, bd)
}

func (pm *PrimeMeridian) hash() uint64 {
	return pm.identification.hash()*31 + math.Float64bits(pm.greenwichLongitude)
}
