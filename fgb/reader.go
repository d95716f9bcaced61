package fgb

import (
	flatgeobuf "github.com/flatgeobuf/flatgeobuf/src/go"
	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	crs "github.com/tingold/orb-crs"
)

// Reader provides read access to a FlatGeobuf file. Features are reached
// through the spatial index, so files written without one only expose their
// header.
type Reader struct {
	fgb *flatgeobuf.FlatGeoBuf
}

// NewReader opens the file at path. The file is memory-mapped.
func NewReader(path string) (*Reader, error) {
	fgb, err := flatgeobuf.New(path)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// NewReaderFromData reads a file held in memory.
func NewReaderFromData(data []byte) (*Reader, error) {
	fgb, err := flatgeobuf.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Reader{fgb: fgb}, nil
}

// Header returns metadata about the file.
func (r *Reader) Header() *Header {
	h := r.fgb.Header()
	if h == nil {
		return nil
	}

	header := &Header{
		Name:          string(h.Name()),
		Description:   string(h.Description()),
		GeometryType:  flattypes.EnumNamesGeometryType[h.GeometryType()],
		FeaturesCount: h.FeaturesCount(),
		HasIndex:      h.IndexNodeSize() > 0,
	}
	if h.EnvelopeLength() >= 4 {
		header.Envelope = [4]float64{h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3)}
	}

	var c flattypes.Crs
	if h.Crs(&c) != nil {
		header.CRS = &CRSInfo{
			Org:        string(c.Org()),
			Code:       c.Code(),
			CodeString: string(c.CodeString()),
			Name:       string(c.Name()),
			WKT:        string(c.Wkt()),
		}
		if header.CRS.WKT == "" {
			header.CRS.WKT = string(c.Description())
		}
	}

	for i := 0; i < h.ColumnsLength(); i++ {
		var col flattypes.Column
		if h.Columns(&col, i) {
			header.Columns = append(header.Columns, ColumnInfo{
				Name:     string(col.Name()),
				Type:     flattypes.EnumNamesColumnType[col.Type()],
				Nullable: col.Nullable(),
			})
		}
	}
	return header
}

// CRS resolves the CRS recorded in the header through reg. A nil registry
// means crs.DefaultRegistry.
func (r *Reader) CRS(reg *crs.Registry) (*crs.CRS, error) {
	h := r.Header()
	if h == nil || h.CRS == nil {
		return nil, ErrNoCRS
	}
	return h.CRS.Resolve(reg)
}

// ReadAll reads all features.
func (r *Reader) ReadAll() (*geojson.FeatureCollection, error) {
	h := r.fgb.Header()
	if h.FeaturesCount() == 0 {
		return geojson.NewFeatureCollection(), nil
	}
	if h.IndexNodeSize() == 0 || h.EnvelopeLength() < 4 {
		return nil, ErrNoIndex
	}
	return r.search(h, h.Envelope(0), h.Envelope(1), h.Envelope(2), h.Envelope(3))
}

// Search returns the features whose bounding boxes intersect bounds.
func (r *Reader) Search(bounds orb.Bound) (*geojson.FeatureCollection, error) {
	h := r.fgb.Header()
	if h.IndexNodeSize() == 0 {
		return nil, ErrNoIndex
	}
	return r.search(h, bounds.Min[0], bounds.Min[1], bounds.Max[0], bounds.Max[1])
}

func (r *Reader) search(h *flattypes.Header, minX, minY, maxX, maxY float64) (*geojson.FeatureCollection, error) {
	found, err := r.fgb.Search(minX, minY, maxX, maxY)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for _, f := range found {
		feature, err := convertFeature(f, h)
		if err != nil {
			return nil, err
		}
		fc.Append(feature)
	}
	return fc, nil
}

// Close releases the reader. The mapping itself is released by the
// flatgeobuf package when collected.
func (r *Reader) Close() error {
	r.fgb = nil
	return nil
}

func convertFeature(f *flattypes.Feature, h *flattypes.Header) (*geojson.Feature, error) {
	var g flattypes.Geometry
	if f.Geometry(&g) == nil {
		return nil, ErrNilGeometry
	}
	geom, err := fromFGB(&g, h.GeometryType())
	if err != nil {
		return nil, err
	}
	feature := geojson.NewFeature(geom)
	if data := f.PropertiesBytes(); len(data) > 0 {
		props, err := decodeProperties(data, h)
		if err != nil {
			return nil, err
		}
		feature.Properties = props
	}
	return feature, nil
}
