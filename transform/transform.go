// Package transform defines the math transforms carried by coordinate
// conversions: affine transforms backed by gonum matrices and map projections
// backed by github.com/wroge/wgs84.
package transform

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats/scalar"
)

// Common errors returned by this package.
var (
	ErrNonInvertible    = errors.New("transform: non-invertible transform")
	ErrDimension        = errors.New("transform: mismatched dimension")
	ErrInvalidParameter = errors.New("transform: invalid parameter")
)

// Parameter is a named numeric parameter of a transform, as exposed for
// textual output.
type Parameter struct {
	Name       string
	Value      float64
	Default    float64 // Value implied when the parameter is omitted
	HasDefault bool    // Whether Default is meaningful
}

// IsDefault reports whether the parameter value is the implied default and
// can therefore be omitted from textual output.
func (p Parameter) IsDefault() bool {
	return p.HasDefault && p.Value == p.Default
}

// Description describes a transform in terms of an operation method and its
// parameter values.
type Description struct {
	Method     string
	Parameters []Parameter
	Inverse    bool // The transform is the inverse of the described one
}

// MathTransform converts coordinate tuples from a source to a target space.
// Implementations are immutable and safe for concurrent use.
type MathTransform interface {
	SourceDimension() int
	TargetDimension() int

	// Transform converts one coordinate tuple of SourceDimension values.
	Transform(src []float64) ([]float64, error)

	// Inverse returns the transform going the other way, or an error
	// wrapping ErrNonInvertible.
	Inverse() (MathTransform, error)

	// Equal reports whether other describes the same transform. Numbers are
	// compared within tolerance, relative or absolute; 0 means exact.
	Equal(other MathTransform, tolerance float64) bool

	// Hash returns a hash consistent with exact equality.
	Hash() uint64

	Describe() Description
}

func sameFloat(a, b, tolerance float64) bool {
	if a == b || (math.IsNaN(a) && math.IsNaN(b)) {
		return true
	}
	if tolerance <= 0 {
		return false
	}
	return scalar.EqualWithinAbsOrRel(a, b, tolerance, tolerance)
}

func hashFloats(seed string, values ...float64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(seed)
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func checkDimension(src []float64, dim int) error {
	if len(src) != dim {
		return fmt.Errorf("%w: expected %d ordinates, got %d", ErrDimension, dim, len(src))
	}
	return nil
}
