package transform

import (
	"fmt"
	"math"

	"github.com/wroge/wgs84"
)

// TransverseMercatorParams are the defining parameters of a Transverse
// Mercator projection. Angles are in degrees, lengths in metres.
type TransverseMercatorParams struct {
	SemiMajor         float64
	InverseFlattening float64
	CentralMeridian   float64
	LatitudeOfOrigin  float64
	ScaleFactor       float64
	FalseEasting      float64
	FalseNorthing     float64
}

type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64 { return s.a }
func (s spheroid) Fi() float64 { return s.fi }

// TransverseMercator projects (longitude, latitude) in degrees to (easting,
// northing) in metres. The inverse projects the other way and is accurate to
// about 1e-5 degrees (1 m) within a UTM zone.
type TransverseMercator struct {
	params  TransverseMercatorParams
	inverse bool
	fn      func(a, b, c float64) (float64, float64, float64)
}

// NewTransverseMercator creates the forward projection.
func NewTransverseMercator(p TransverseMercatorParams) (*TransverseMercator, error) {
	if p.SemiMajor <= 0 || math.IsNaN(p.SemiMajor) {
		return nil, fmt.Errorf("%w: semi-major axis %v", ErrInvalidParameter, p.SemiMajor)
	}
	if p.InverseFlattening <= 0 || math.IsInf(p.InverseFlattening, 0) {
		return nil, fmt.Errorf("%w: inverse flattening %v (spheres are not supported)", ErrInvalidParameter, p.InverseFlattening)
	}
	if p.ScaleFactor <= 0 {
		return nil, fmt.Errorf("%w: scale factor %v", ErrInvalidParameter, p.ScaleFactor)
	}
	return newTransverseMercator(p, false), nil
}

func newTransverseMercator(p TransverseMercatorParams, inverse bool) *TransverseMercator {
	datum := wgs84.Datum{
		Spheroid: spheroid{a: p.SemiMajor, fi: p.InverseFlattening},
	}
	proj := datum.TransverseMercator(p.CentralMeridian, p.LatitudeOfOrigin, p.ScaleFactor, p.FalseEasting, p.FalseNorthing)
	var fn func(a, b, c float64) (float64, float64, float64)
	if inverse {
		fn = wgs84.Transform(proj, datum.LonLat())
	} else {
		fn = wgs84.Transform(datum.LonLat(), proj)
	}
	return &TransverseMercator{params: p, inverse: inverse, fn: fn}
}

// Params returns the defining parameters.
func (t *TransverseMercator) Params() TransverseMercatorParams {
	return t.params
}

// IsInverse reports whether t maps projected to geographic coordinates.
func (t *TransverseMercator) IsInverse() bool {
	return t.inverse
}

func (t *TransverseMercator) SourceDimension() int { return 2 }
func (t *TransverseMercator) TargetDimension() int { return 2 }

func (t *TransverseMercator) Transform(src []float64) ([]float64, error) {
	if err := checkDimension(src, 2); err != nil {
		return nil, err
	}
	x, y, _ := t.fn(src[0], src[1], 0)
	return []float64{x, y}, nil
}

func (t *TransverseMercator) Inverse() (MathTransform, error) {
	return newTransverseMercator(t.params, !t.inverse), nil
}

func (t *TransverseMercator) Equal(other MathTransform, tolerance float64) bool {
	o, ok := other.(*TransverseMercator)
	if !ok {
		return false
	}
	if t == o {
		return true
	}
	a, b := t.params, o.params
	return t.inverse == o.inverse &&
		sameFloat(a.SemiMajor, b.SemiMajor, tolerance) &&
		sameFloat(a.InverseFlattening, b.InverseFlattening, tolerance) &&
		sameFloat(a.CentralMeridian, b.CentralMeridian, tolerance) &&
		sameFloat(a.LatitudeOfOrigin, b.LatitudeOfOrigin, tolerance) &&
		sameFloat(a.ScaleFactor, b.ScaleFactor, tolerance) &&
		sameFloat(a.FalseEasting, b.FalseEasting, tolerance) &&
		sameFloat(a.FalseNorthing, b.FalseNorthing, tolerance)
}

func (t *TransverseMercator) Hash() uint64 {
	seed := "tmerc"
	if t.inverse {
		seed = "tmerc-inverse"
	}
	p := t.params
	return hashFloats(seed, p.SemiMajor, p.InverseFlattening, p.CentralMeridian,
		p.LatitudeOfOrigin, p.ScaleFactor, p.FalseEasting, p.FalseNorthing)
}

func (t *TransverseMercator) Describe() Description {
	p := t.params
	return Description{
		Method:  "Transverse_Mercator",
		Inverse: t.inverse,
		Parameters: []Parameter{
			{Name: "semi_major", Value: p.SemiMajor},
			{Name: "semi_minor", Value: p.SemiMajor * (1 - 1/p.InverseFlattening)},
			{Name: "latitude_of_origin", Value: p.LatitudeOfOrigin, HasDefault: true},
			{Name: "central_meridian", Value: p.CentralMeridian, HasDefault: true},
			{Name: "scale_factor", Value: p.ScaleFactor, Default: 1, HasDefault: true},
			{Name: "false_easting", Value: p.FalseEasting, HasDefault: true},
			{Name: "false_northing", Value: p.FalseNorthing, HasDefault: true},
		},
	}
}
