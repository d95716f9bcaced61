package transform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine is a transform defined by a (target+1)×(source+1) matrix in
// homogeneous coordinates.
type Affine struct {
	m        *mat.Dense
	src, tgt int
}

// NewAffine creates an affine transform from a row-major matrix of the given
// size. The matrix is copied.
func NewAffine(rows, cols int, elements []float64) (*Affine, error) {
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("%w: affine matrix must be at least 2x2, got %dx%d", ErrInvalidParameter, rows, cols)
	}
	if len(elements) != rows*cols {
		return nil, fmt.Errorf("%w: %dx%d matrix needs %d elements, got %d",
			ErrInvalidParameter, rows, cols, rows*cols, len(elements))
	}
	data := make([]float64, len(elements))
	copy(data, elements)
	return &Affine{m: mat.NewDense(rows, cols, data), src: cols - 1, tgt: rows - 1}, nil
}

// NewIdentity returns the identity transform of the given dimension.
func NewIdentity(dim int) *Affine {
	n := dim + 1
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return &Affine{m: mat.NewDense(n, n, data), src: dim, tgt: dim}
}

// NewScaleTranslate returns a transform computing out[i] = in[i]*scales[i] + offsets[i].
func NewScaleTranslate(scales, offsets []float64) (*Affine, error) {
	if len(scales) != len(offsets) {
		return nil, fmt.Errorf("%w: %d scales for %d offsets", ErrInvalidParameter, len(scales), len(offsets))
	}
	dim := len(scales)
	a := NewIdentity(dim)
	for i := 0; i < dim; i++ {
		a.m.Set(i, i, scales[i])
		a.m.Set(i, dim, offsets[i])
	}
	return a, nil
}

func (a *Affine) SourceDimension() int { return a.src }
func (a *Affine) TargetDimension() int { return a.tgt }

// NumRow returns the number of matrix rows.
func (a *Affine) NumRow() int { return a.tgt + 1 }

// NumCol returns the number of matrix columns.
func (a *Affine) NumCol() int { return a.src + 1 }

// Element returns the matrix element at row i, column j.
func (a *Affine) Element(i, j int) float64 {
	return a.m.At(i, j)
}

// IsIdentity reports whether the transform leaves every coordinate unchanged.
func (a *Affine) IsIdentity() bool {
	if a.src != a.tgt {
		return false
	}
	for i := 0; i <= a.tgt; i++ {
		for j := 0; j <= a.src; j++ {
			if a.m.At(i, j) != identityElement(i, j) {
				return false
			}
		}
	}
	return true
}

func (a *Affine) Transform(src []float64) ([]float64, error) {
	if err := checkDimension(src, a.src); err != nil {
		return nil, err
	}
	row := func(i int) float64 {
		v := a.m.At(i, a.src)
		for j := 0; j < a.src; j++ {
			v += a.m.At(i, j) * src[j]
		}
		return v
	}
	out := make([]float64, a.tgt)
	for i := range out {
		out[i] = row(i)
	}
	if w := row(a.tgt); w != 1 {
		for i := range out {
			out[i] /= w
		}
	}
	return out, nil
}

func (a *Affine) Inverse() (MathTransform, error) {
	if a.src != a.tgt {
		return nil, fmt.Errorf("%w: %dx%d affine matrix is not square", ErrNonInvertible, a.NumRow(), a.NumCol())
	}
	if det := mat.Det(a.m); det == 0 || math.IsNaN(det) {
		return nil, fmt.Errorf("%w: singular affine matrix", ErrNonInvertible)
	}
	var inv mat.Dense
	if err := inv.Inverse(a.m); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: %v", ErrNonInvertible, err)
		}
	}
	return &Affine{m: &inv, src: a.tgt, tgt: a.src}, nil
}

func (a *Affine) Equal(other MathTransform, tolerance float64) bool {
	o, ok := other.(*Affine)
	if !ok {
		return false
	}
	if a == o {
		return true
	}
	if a.src != o.src || a.tgt != o.tgt {
		return false
	}
	for i := 0; i <= a.tgt; i++ {
		for j := 0; j <= a.src; j++ {
			if !sameFloat(a.m.At(i, j), o.m.At(i, j), tolerance) {
				return false
			}
		}
	}
	return true
}

func (a *Affine) Hash() uint64 {
	return hashFloats("affine", append([]float64{float64(a.tgt), float64(a.src)}, a.m.RawMatrix().Data...)...)
}

// Describe lists the matrix size and elements. Elements equal to the identity
// matrix are flagged as defaults.
func (a *Affine) Describe() Description {
	params := []Parameter{
		{Name: "num_row", Value: float64(a.NumRow()), Default: 3, HasDefault: true},
		{Name: "num_col", Value: float64(a.NumCol()), Default: 3, HasDefault: true},
	}
	for i := 0; i <= a.tgt; i++ {
		for j := 0; j <= a.src; j++ {
			params = append(params, Parameter{
				Name:       fmt.Sprintf("elt_%d_%d", i, j),
				Value:      a.m.At(i, j),
				Default:    identityElement(i, j),
				HasDefault: true,
			})
		}
	}
	return Description{Method: "Affine", Parameters: params}
}

func identityElement(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}
