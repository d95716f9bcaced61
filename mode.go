package crs

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/tingold/orb-crs/units"
)

// ComparisonMode is the strictness of a structural comparison. Modes are
// ordered from the most to the least strict: two objects equal in one mode are
// equal in every looser mode.
type ComparisonMode int

const (
	// Strict compares every property, including internally stored fields
	// that accessors may compute lazily.
	Strict ComparisonMode = iota
	// ByContract compares every property observable through accessors.
	ByContract
	// IgnoreMetadata ignores names, aliases, identifiers, scope, domain of
	// validity and remarks. Axis bounds are still compared.
	IgnoreMetadata
	// Approximate additionally ignores axis names, bounds and range meaning,
	// and compares numbers within approximateTolerance.
	Approximate
)

// approximateTolerance is the relative (and absolute, near zero) tolerance
// of Approximate comparisons.
const approximateTolerance = 1e-10

var modeNames = [...]string{"STRICT", "BY_CONTRACT", "IGNORE_METADATA", "APPROXIMATE"}

func (m ComparisonMode) String() string {
	if !m.valid() {
		return fmt.Sprintf("ComparisonMode(%d)", int(m))
	}
	return modeNames[m]
}

func (m ComparisonMode) valid() bool {
	return m >= Strict && m <= Approximate
}

// ParseComparisonMode parses a mode name such as "ignore_metadata" or
// "IGNORE-METADATA".
func ParseComparisonMode(s string) (ComparisonMode, error) {
	n := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, name := range modeNames {
		if name == n {
			return ComparisonMode(i), nil
		}
	}
	return Strict, fmt.Errorf("%w: unknown comparison mode %q", ErrInvalidParameter, s)
}

// comparer carries the state of one top-level comparison. A comparer must not
// be shared between goroutines or between unrelated comparisons.
type comparer struct {
	mode ComparisonMode

	// comparingConversion is set while a derived CRS compares its conversion,
	// whose target CRS points back at the derived CRS.
	comparingConversion bool
}

func newComparer(mode ComparisonMode) *comparer {
	if !mode.valid() {
		panic(fmt.Sprintf("crs: invalid comparison mode %d", int(mode)))
	}
	return &comparer{mode: mode}
}

func (c *comparer) metadataIgnored() bool {
	return c.mode >= IgnoreMetadata
}

func (c *comparer) approximate() bool {
	return c.mode == Approximate
}

func (c *comparer) metadata(a, b *identification) bool {
	return c.metadataIgnored() || a.equal(b)
}

func (c *comparer) float(a, b float64) bool {
	if a == b || (math.IsNaN(a) && math.IsNaN(b)) {
		return true
	}
	return c.approximate() && scalar.EqualWithinAbsOrRel(a, b, approximateTolerance, approximateTolerance)
}

func (c *comparer) unit(a, b units.Unit) bool {
	if a == b {
		return true
	}
	if !c.metadataIgnored() {
		return false
	}
	return a.Kind == b.Kind && c.float(a.ToSI, b.ToSI)
}

// tolerance is the numeric tolerance handed to math transforms.
func (c *comparer) tolerance() float64 {
	if c.approximate() {
		return approximateTolerance
	}
	return 0
}
