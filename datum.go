package crs

import (
	"fmt"
	"time"
)

// DatumKind identifies the family of a datum.
type DatumKind int

const (
	GeodeticDatumKind DatumKind = iota
	VerticalDatumKind
	TemporalDatumKind
	EngineeringDatumKind
	ImageDatumKind
)

var datumKindNames = [...]string{"geodetic", "vertical", "temporal", "engineering", "image"}

func (k DatumKind) String() string {
	if k < 0 || int(k) >= len(datumKindNames) {
		return fmt.Sprintf("DatumKind(%d)", int(k))
	}
	return datumKindNames[k]
}

// Datum anchors a coordinate system to the physical world. The set of datum
// types is closed: *GeodeticDatum, *VerticalDatum, *TemporalDatum,
// *EngineeringDatum and *ImageDatum.
type Datum interface {
	Name() string
	Identifiers() []Identifier
	Kind() DatumKind

	ident() *identification
	equalPayload(other Datum, c *comparer) bool
	hash() uint64
}

func datumName(d Datum) string {
	if d == nil {
		return "nil"
	}
	return d.Kind().String() + " datum"
}

func (c *comparer) datum(a, b Datum) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return c.metadata(a.ident(), b.ident()) && a.equalPayload(b, c)
}

// DatumEquals compares two datums in the given mode.
func DatumEquals(a, b Datum, mode ComparisonMode) bool {
	return newComparer(mode).datum(a, b)
}

// BursaWolfParameters are the seven-parameter Helmert transformation to WGS 84
// (translations in metres, rotations in arc-seconds, scale in parts per million).
type BursaWolfParameters struct {
	Dx, Dy, Dz float64
	Ex, Ey, Ez float64
	PPM        float64
}

// Values returns the parameters in TOWGS84 order.
func (bw BursaWolfParameters) Values() [7]float64 {
	return [7]float64{bw.Dx, bw.Dy, bw.Dz, bw.Ex, bw.Ey, bw.Ez, bw.PPM}
}

// GeodeticDatum is the datum of geographic, geocentric and projected CRS.
type GeodeticDatum struct {
	identification
	ellipsoid     *Ellipsoid
	primeMeridian *PrimeMeridian
	toWGS84       *BursaWolfParameters
}

// NewGeodeticDatum creates a geodetic datum. A nil prime meridian means
// Greenwich; toWGS84 is optional.
func NewGeodeticDatum(p Properties, ellipsoid *Ellipsoid, pm *PrimeMeridian, toWGS84 *BursaWolfParameters) (*GeodeticDatum, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	if ellipsoid == nil {
		return nil, fmt.Errorf("%w: geodetic datum %q has no ellipsoid", ErrInvalidParameter, id.name)
	}
	if pm == nil {
		pm = Greenwich
	}
	d := &GeodeticDatum{identification: id, ellipsoid: ellipsoid, primeMeridian: pm}
	if toWGS84 != nil {
		bw := *toWGS84
		d.toWGS84 = &bw
	}
	return d, nil
}

func (d *GeodeticDatum) Kind() DatumKind { return GeodeticDatumKind }
func (d *GeodeticDatum) Ellipsoid() *Ellipsoid { return d.ellipsoid }
func (d *GeodeticDatum) PrimeMeridian() *PrimeMeridian { return d.primeMeridian }
func (d *GeodeticDatum) ident() *identification { return &d.identification }

// ToWGS84 returns the Bursa-Wolf parameters, if declared.
func (d *GeodeticDatum) ToWGS84() (BursaWolfParameters, bool) {
	if d.toWGS84 == nil {
		return BursaWolfParameters{}, false
	}
	return *d.toWGS84, true
}

func (d *GeodeticDatum) equalPayload(other Datum, c *comparer) bool {
	o := other.(*GeodeticDatum)
	if !c.ellipsoid(d.ellipsoid, o.ellipsoid) || !c.primeMeridian(d.primeMeridian, o.primeMeridian) {
		return false
	}
	if d.toWGS84 == nil || o.toWGS84 == nil {
		return d.toWGS84 == o.toWGS84 || c.approximate()
	}
	a, b := d.toWGS84.Values(), o.toWGS84.Values()
	for i := range a {
		if !c.float(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (d *GeodeticDatum) hash() uint64 {
	h := d.identification.hash()
	h = h*31 + d.ellipsoid.hash()
	return h*31 + d.primeMeridian.hash()
}

// VerticalDatumType is the surface a vertical datum refers to. Values follow
// the WKT 1 VERT_DATUM codes.
type VerticalDatumType int

const (
	VerticalOther       VerticalDatumType = 2000
	VerticalOrthometric VerticalDatumType = 2001
	VerticalEllipsoidal VerticalDatumType = 2002
	VerticalBarometric  VerticalDatumType = 2003
	VerticalGeoidal     VerticalDatumType = 2005
	VerticalDepth       VerticalDatumType = 2006
)

// VerticalDatum is the datum of a vertical CRS.
type VerticalDatum struct {
	identification
	vtype VerticalDatumType
}

// NewVerticalDatum creates a vertical datum.
func NewVerticalDatum(p Properties, vtype VerticalDatumType) (*VerticalDatum, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	return &VerticalDatum{identification: id, vtype: vtype}, nil
}

func (d *VerticalDatum) Kind() DatumKind { return VerticalDatumKind }
func (d *VerticalDatum) Type() VerticalDatumType { return d.vtype }
func (d *VerticalDatum) ident() *identification { return &d.identification }

func (d *VerticalDatum) equalPayload(other Datum, c *comparer) bool {
	return d.vtype == other.(*VerticalDatum).vtype
}

func (d *VerticalDatum) hash() uint64 {
	return d.identification.hash()*31 + uint64(d.vtype)
}

// TemporalDatum is the datum of a temporal CRS: the origin of time.
type TemporalDatum struct {
	identification
	origin time.Time
}

// NewTemporalDatum creates a temporal datum with the given origin.
func NewTemporalDatum(p Properties, origin time.Time) (*TemporalDatum, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	return &TemporalDatum{identification: id, origin: origin.UTC()}, nil
}

func (d *TemporalDatum) Kind() DatumKind { return TemporalDatumKind }
func (d *TemporalDatum) Origin() time.Time { return d.origin }
func (d *TemporalDatum) ident() *identification { return &d.identification }

func (d *TemporalDatum) equalPayload(other Datum, c *comparer) bool {
	return d.origin.Equal(other.(*TemporalDatum).origin)
}

func (d *TemporalDatum) hash() uint64 {
	return d.identification.hash()*31 + uint64(d.origin.Unix())
}

// EngineeringDatum is the datum of a local engineering CRS.
type EngineeringDatum struct {
	identification
}

// NewEngineeringDatum creates an engineering datum.
func NewEngineeringDatum(p Properties) (*EngineeringDatum, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	return &EngineeringDatum{identification: id}, nil
}

func (d *EngineeringDatum) Kind() DatumKind { return EngineeringDatumKind }
func (d *EngineeringDatum) ident() *identification { return &d.identification }
func (d *EngineeringDatum) equalPayload(Datum, *comparer) bool { return true }
func (d *EngineeringDatum) hash() uint64 { return d.identification.hash() }

// PixelInCell tells which point of a pixel the image grid coordinates refer to.
type PixelInCell int

const (
	CellCenter PixelInCell = iota
	CellCorner
)

func (p PixelInCell) String() string {
	if p == CellCorner {
		return "cellCorner"
	}
	return "cellCenter"
}

// ImageDatum is the datum of an image CRS.
type ImageDatum struct {
	identification
	pixelInCell PixelInCell
}

// NewImageDatum creates an image datum.
func NewImageDatum(p Properties, pixelInCell PixelInCell) (*ImageDatum, error) {
	id, err := newIdentification(p)
	if err != nil {
		return nil, err
	}
	return &ImageDatum{identification: id, pixelInCell: pixelInCell}, nil
}

func (d *ImageDatum) Kind() DatumKind { return ImageDatumKind }
func (d *ImageDatum) PixelInCell() PixelInCell { return d.pixelInCell }
func (d *ImageDatum) ident() *identification { return &d.identification }

func (d *ImageDatum) equalPayload(other Datum, c *comparer) bool {
	return d.pixelInCell == other.(*ImageDatum).pixelInCell
}

func (d *ImageDatum) hash() uint64 {
	return d.identification.hash()*31 + uint64(d.pixelInCell)
}
