// Package crs models coordinate reference systems: a closed family of CRS
// kinds pairing a coordinate system with a datum, or a base CRS with a
// conversion, plus multi-mode structural comparison and cached axis range
// shifts.
package crs

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// Kind identifies the variant of a CRS.
type Kind int

const (
	Geographic Kind = iota
	Geocentric
	Projected
	Derived
	Vertical
	Temporal
	Engineering
	Image
	Compound
)

var kindNames = [...]string{"geographic", "geocentric", "projected", "derived", "vertical", "temporal", "engineering", "image", "compound"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kind name such as "geographic".
func ParseKind(s string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown CRS kind %q", ErrInvalidParameter, s)
}

// CRS is a coordinate reference system. The payload depends on Kind:
//
//   - single kinds (geographic, geocentric, vertical, temporal, engineering,
//     image) carry a coordinate system and a datum;
//   - projected and derived CRS carry a base CRS, a conversion and a
//     coordinate system, and share the datum of their base;
//   - compound CRS carry an ordered list of single CRS.
//
// A CRS is immutable and safe for concurrent use.
type CRS struct {
	identification
	kind Kind

	cs         *CoordinateSystem
	datum      Datum
	base       *CRS
	conversion *Conversion
	components []*CRS

	composeOnce sync.Once
	composed    *CoordinateSystem

	hashOnce  sync.Once
	hashValue uint64

	shiftMu sync.Mutex
	shifts  atomic.Pointer[shiftCache]
}

// Kind returns the CRS variant.
func (c *CRS) Kind() Kind { return c.kind }

// IsSingle reports whether c is not a compound CRS.
func (c *CRS) IsSingle() bool { return c.kind != Compound }

// Dimension returns the number of axes.
func (c *CRS) Dimension() int {
	return c.CoordinateSystem().Dimension()
}

// CoordinateSystem returns the coordinate system. For a compound CRS without
// an explicit one, the system is composed from the component axes on first
// use.
func (c *CRS) CoordinateSystem() *CoordinateSystem {
	if c.cs != nil || c.kind != Compound {
		return c.cs
	}
	c.composeOnce.Do(func() {
		parts := make([]*CoordinateSystem, len(c.components))
		for i, comp := range c.components {
			parts[i] = comp.CoordinateSystem()
		}
		c.composed = composeCS(c.name, parts)
	})
	return c.composed
}

// Datum returns the datum, or nil for a compound CRS. Projected and derived
// CRS return the datum of their base.
func (c *CRS) Datum() Datum { return c.datum }

// GeodeticDatum returns the datum of a geographic, geocentric or projected
// CRS, or nil.
func (c *CRS) GeodeticDatum() *GeodeticDatum {
	d, _ := c.datum.(*GeodeticDatum)
	return d
}

// VerticalDatum returns the datum of a vertical CRS, or nil.
func (c *CRS) VerticalDatum() *VerticalDatum {
	d, _ := c.datum.(*VerticalDatum)
	return d
}

// TemporalDatum returns the datum of a temporal CRS, or nil.
func (c *CRS) TemporalDatum() *TemporalDatum {
	d, _ := c.datum.(*TemporalDatum)
	return d
}

// EngineeringDatum returns the datum of an engineering CRS, or nil.
func (c *CRS) EngineeringDatum() *EngineeringDatum {
	d, _ := c.datum.(*EngineeringDatum)
	return d
}

// ImageDatum returns the datum of an image CRS, or nil.
func (c *CRS) ImageDatum() *ImageDatum {
	d, _ := c.datum.(*ImageDatum)
	return d
}

// BaseCRS returns the base of a projected or derived CRS, or nil.
func (c *CRS) BaseCRS() *CRS { return c.base }

// Conversion returns the conversion from the base CRS of a projected or
// derived CRS, or nil.
func (c *CRS) Conversion() *Conversion { return c.conversion }

// Components returns the single CRS of a compound CRS, in order.
func (c *CRS) Components() []*CRS {
	return append([]*CRS(nil), c.components...)
}

// Hash returns a hash consistent with Strict equality. It is computed once.
func (c *CRS) Hash() uint64 {
	c.hashOnce.Do(func() {
		c.hashValue = c.computeHash()
	})
	return c.hashValue
}

func (c *CRS) computeHash() uint64 {
	h := c.identification.hash()*31 + uint64(c.kind)
	if c.cs != nil {
		h = h*31 + c.cs.hash()
	}
	if c.datum != nil {
		h = h*31 + c.datum.hash()
	}
	switch c.kind {
	case Projected, Derived:
		// The conversion points back at c; its transform does not.
		h = h*31 + c.base.Hash()
		h = h*31 + c.conversion.transform.Hash()
	case Compound:
		for _, comp := range c.components {
			h = h*31 + comp.Hash()
		}
	}
	return h
}

func (c *CRS) String() string {
	return fmt.Sprintf("%s CRS %q (%dD)", c.kind, c.name, c.Dimension())
}
