package fgb

import (
	"io"

	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Write writes geometries without properties.
func Write(w io.Writer, geometries []orb.Geometry, opts *Options) error {
	features := make([]*geojson.Feature, len(geometries))
	for i, g := range geometries {
		if g != nil {
			features[i] = geojson.NewFeature(g)
		}
	}
	return WriteFeatures(w, &geojson.FeatureCollection{Features: features}, opts)
}

// WriteFeatures writes a FeatureCollection. Features without a geometry are
// skipped. The column schema is inferred from the properties of all features.
func WriteFeatures(w io.Writer, fc *geojson.FeatureCollection, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}
	if fc == nil {
		return ErrNilGeometry
	}

	var features []*geojson.Feature
	var geoms []orb.Geometry
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		g := f.Geometry
		if opts.NormalizeLongitudes {
			g = NormalizeLongitudes(g, opts.CRS)
		}
		features = append(features, &geojson.Feature{Geometry: g, Properties: f.Properties})
		geoms = append(geoms, g)
	}
	if len(features) == 0 {
		return ErrNilGeometry
	}
	typ, err := layerType(geoms)
	if err != nil {
		return err
	}

	builder := flatbuffers.NewBuilder(4096)
	header := writer.NewHeader(builder).SetGeometryType(typ)
	if opts.Name != "" {
		header.SetName(opts.Name)
	}
	if opts.Description != "" {
		header.SetDescription(opts.Description)
	}

	s := inferSchema(features)
	if len(s.names) > 0 {
		header.SetColumns(s.columns(builder))
	}

	if opts.CRS != nil {
		info, err := Describe(opts.CRS)
		if err != nil {
			return err
		}
		header.SetCrs(info.toBuilder(builder))
	}

	gen := &featureGenerator{features: features, schema: s}
	if _, err := writer.NewWriter(header, opts.IncludeIndex, gen, nil).Write(w); err != nil {
		return err
	}
	return gen.err
}

// WriteFeature writes a single feature.
func WriteFeature(w io.Writer, f *geojson.Feature, opts *Options) error {
	if f == nil {
		return ErrNilGeometry
	}
	return WriteFeatures(w, &geojson.FeatureCollection{Features: []*geojson.Feature{f}}, opts)
}

// toBuilder records the CRS in the header. The WKT goes in the description,
// the only free text field the header builder exposes.
func (i *CRSInfo) toBuilder(builder *flatbuffers.Builder) *writer.Crs {
	c := writer.NewCrs(builder).SetName(i.Name).SetDescription(i.WKT)
	if i.Org != "" {
		c.SetOrg(i.Org)
	}
	if i.Code != 0 {
		c.SetCode(i.Code)
	}
	if i.CodeString != "" {
		c.SetCodeString(i.CodeString)
	}
	return c
}

// featureGenerator feeds the features to the FlatGeobuf writer. The writer
// cannot report generator errors so the first one is kept and ends the
// stream.
type featureGenerator struct {
	features []*geojson.Feature
	schema   *schema
	next     int
	err      error
}

func (g *featureGenerator) Generate() *writer.Feature {
	if g.err != nil || g.next >= len(g.features) {
		return nil
	}
	f := g.features[g.next]
	g.next++

	builder := flatbuffers.NewBuilder(1024)
	feature := writer.NewFeature(builder).SetGeometry(toFGB(f.Geometry, builder))

	if len(f.Properties) > 0 && len(g.schema.names) > 0 {
		props, err := encodeProperties(f.Properties, g.schema)
		if err != nil {
			g.err = err
			return nil
		}
		if len(props) > 0 {
			feature.SetProperties(props)
		}
	}
	return feature
}
