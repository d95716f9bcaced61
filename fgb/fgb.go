// Package fgb writes and reads FlatGeobuf files of orb geometries tagged with
// a coordinate reference system. The CRS is recorded in the file header by
// authority code, name and WKT text, and resolved back through a crs.Registry
// when reading.
package fgb

import (
	"errors"
	"strconv"

	crs "github.com/tingold/orb-crs"
	"github.com/tingold/orb-crs/wkt"
)

// Common errors returned by this package.
var (
	ErrNilGeometry     = errors.New("fgb: nil geometry")
	ErrUnsupportedType = errors.New("fgb: unsupported geometry type")
	ErrInvalidData     = errors.New("fgb: invalid data")
	ErrNoIndex         = errors.New("fgb: file has no spatial index")
	ErrNoCRS           = errors.New("fgb: header has no CRS")
	ErrUnknownCRS      = errors.New("fgb: CRS not found in registry")
)

// CRSInfo is the CRS as recorded in a FlatGeobuf header.
type CRSInfo struct {
	Org        string // Authority (e.g. "EPSG")
	Code       int32  // Numeric code, 0 if the code is not numeric
	CodeString string // Non-numeric code
	Name       string
	WKT        string
}

// Describe returns the header record of c. It fails when c cannot be
// formatted as WKT.
func Describe(c *crs.CRS) (*CRSInfo, error) {
	if c == nil {
		return nil, errors.New("fgb: nil CRS")
	}
	text, _, err := wkt.Format(c, &wkt.Options{Indent: -1})
	if err != nil {
		return nil, err
	}
	info := &CRSInfo{Name: c.Name(), WKT: text}
	if id, ok := c.Identifier(); ok {
		info.Org = id.Authority
		if n, err := strconv.ParseInt(id.Code, 10, 32); err == nil {
			info.Code = int32(n)
		} else {
			info.CodeString = id.Code
		}
	}
	return info, nil
}

// Key returns the registry key of the authority code, or "" when there is no
// authority.
func (i *CRSInfo) Key() string {
	switch {
	case i.Org == "":
		return ""
	case i.CodeString != "":
		return i.Org + ":" + i.CodeString
	case i.Code != 0:
		return i.Org + ":" + strconv.Itoa(int(i.Code))
	}
	return ""
}

// Resolve looks the record up in r, by authority code first and by name
// second. When the record carries WKT, a candidate must format to the same
// text. A nil registry means crs.DefaultRegistry.
func (i *CRSInfo) Resolve(r *crs.Registry) (*crs.CRS, error) {
	if r == nil {
		r = crs.DefaultRegistry()
	}
	for _, key := range []string{i.Key(), i.Name} {
		if key == "" {
			continue
		}
		if c, ok := r.Lookup(key); ok && i.matches(c) {
			return c, nil
		}
	}
	return nil, ErrUnknownCRS
}

func (i *CRSInfo) matches(c *crs.CRS) bool {
	if i.WKT == "" {
		return true
	}
	text, _, err := wkt.Format(c, &wkt.Options{Indent: -1})
	return err == nil && text == i.WKT
}

// Options configures FlatGeobuf writing.
type Options struct {
	Name         string   // Layer name
	Description  string   // Layer description
	IncludeIndex bool     // Include spatial index (default: true)
	CRS          *crs.CRS // Coordinate reference system (optional)

	// NormalizeLongitudes wraps the x ordinates into the longitude range of
	// CRS before writing. It has no effect when CRS has no bounded
	// wraparound longitude axis.
	NormalizeLongitudes bool
}

// DefaultOptions returns default options for writing FlatGeobuf files.
func DefaultOptions() *Options {
	return &Options{
		IncludeIndex: true,
	}
}

// ColumnInfo describes a property column in a FlatGeobuf file.
type ColumnInfo struct {
	Name     string // Column name
	Type     string // Column type ("Bool", "Long", "Double", "String", "Json", ...)
	Nullable bool
}

// Header contains metadata about a FlatGeobuf file.
type Header struct {
	Name          string
	Description   string
	GeometryType  string     // "Point", "Polygon", "Unknown", ...
	FeaturesCount uint64     // Number of features in the file
	Envelope      [4]float64 // Bounding box [minX, minY, maxX, maxY]
	CRS           *CRSInfo   // Nil when the file records no CRS
	HasIndex      bool
	Columns       []ColumnInfo
}
