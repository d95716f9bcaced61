package crs

import (
	"fmt"
	"sync"
)

// Assembler builds a CRS in steps, for decoders that discover the parts of a
// CRS one at a time. Each part may be set only once: a second assignment, or
// any call after Build, fails with ErrIllegalState. Build applies the same
// validation as the constructors.
type Assembler struct {
	mu    sync.Mutex
	kind  Kind
	props Properties
	built bool

	cs         *CoordinateSystem
	datum      Datum
	base       *CRS
	conversion *Conversion
	components []*CRS
	hasComps   bool
}

// NewAssembler starts assembling a CRS of the given kind.
func NewAssembler(kind Kind, p Properties) *Assembler {
	return &Assembler{kind: kind, props: p}
}

func (a *Assembler) set(part string, isSet func() bool, assign func()) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.built {
		return fmt.Errorf("%w: %s set after Build", ErrIllegalState, part)
	}
	if isSet() {
		return fmt.Errorf("%w: %s already set", ErrIllegalState, part)
	}
	assign()
	return nil
}

// SetCoordinateSystem assigns the coordinate system. For a compound CRS it
// replaces the system otherwise composed from the components.
func (a *Assembler) SetCoordinateSystem(cs *CoordinateSystem) error {
	if cs == nil {
		return fmt.Errorf("%w: nil coordinate system", ErrInvalidParameter)
	}
	return a.set("coordinate system", func() bool { return a.cs != nil }, func() { a.cs = cs })
}

// SetDatum assigns the datum of a single CRS.
func (a *Assembler) SetDatum(d Datum) error {
	if isNilDatum(d) {
		return fmt.Errorf("%w: nil datum", ErrInvalidParameter)
	}
	return a.set("datum", func() bool { return a.datum != nil }, func() { a.datum = d })
}

// SetBase assigns the base of a projected or derived CRS.
func (a *Assembler) SetBase(base *CRS) error {
	if base == nil {
		return fmt.Errorf("%w: nil base CRS", ErrInvalidParameter)
	}
	return a.set("base CRS", func() bool { return a.base != nil }, func() { a.base = base })
}

// SetConversion assigns the conversion of a projected or derived CRS.
func (a *Assembler) SetConversion(conv *Conversion) error {
	if conv == nil {
		return fmt.Errorf("%w: nil conversion", ErrInvalidParameter)
	}
	return a.set("conversion", func() bool { return a.conversion != nil }, func() { a.conversion = conv })
}

// SetComponents assigns the components of a compound CRS.
func (a *Assembler) SetComponents(components ...*CRS) error {
	return a.set("components", func() bool { return a.hasComps }, func() {
		a.components = append([]*CRS(nil), components...)
		a.hasComps = true
	})
}

// Build validates the assigned parts and returns the CRS. The assembler
// cannot be used afterwards, even if Build fails.
func (a *Assembler) Build() (*CRS, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.built {
		return nil, fmt.Errorf("%w: Build called twice", ErrIllegalState)
	}
	a.built = true
	switch a.kind {
	case Projected, Derived:
		if a.datum != nil {
			return nil, fmt.Errorf("%w: %s takes the datum of its base", ErrInvalidParameter, objectName(a.kind))
		}
		return newDerived(a.kind, a.props, a.base, a.conversion, a.cs)
	case Compound:
		c, err := NewCompound(a.props, a.components...)
		if err != nil {
			return nil, err
		}
		if a.cs != nil {
			if a.cs.Dimension() != c.Dimension() {
				return nil, &DimensionError{What: "compound coordinate system", Expected: c.Dimension(), Actual: a.cs.Dimension()}
			}
			c.cs = a.cs
		}
		return c, nil
	}
	if a.base != nil || a.conversion != nil || a.hasComps {
		return nil, fmt.Errorf("%w: %s takes neither a base nor components", ErrInvalidParameter, objectName(a.kind))
	}
	return NewSingle(a.kind, a.props, a.datum, a.cs)
}
