package fgb

import (
	"fmt"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
)

// geometryType returns the FlatGeobuf type of g, GeometryTypeUnknown for
// types that cannot be written.
func geometryType(g orb.Geometry) flattypes.GeometryType {
	switch g.(type) {
	case orb.Point:
		return flattypes.GeometryTypePoint
	case orb.MultiPoint:
		return flattypes.GeometryTypeMultiPoint
	case orb.LineString:
		return flattypes.GeometryTypeLineString
	case orb.MultiLineString:
		return flattypes.GeometryTypeMultiLineString
	case orb.Polygon, orb.Ring, orb.Bound:
		return flattypes.GeometryTypePolygon
	case orb.MultiPolygon:
		return flattypes.GeometryTypeMultiPolygon
	}
	return flattypes.GeometryTypeUnknown
}

// layerType is the common type of all geometries, or GeometryTypeUnknown for a
// mixed layer.
func layerType(geoms []orb.Geometry) (flattypes.GeometryType, error) {
	typ := flattypes.GeometryTypeUnknown
	for i, g := range geoms {
		if g == nil {
			continue
		}
		t := geometryType(g)
		if t == flattypes.GeometryTypeUnknown {
			return 0, fmt.Errorf("%w: %T", ErrUnsupportedType, g)
		}
		if i == 0 {
			typ = t
		} else if t != typ {
			typ = flattypes.GeometryTypeUnknown
		}
	}
	return typ, nil
}

func appendXY[P ~[]orb.Point](xy []float64, pts P) []float64 {
	for _, p := range pts {
		xy = append(xy, p[0], p[1])
	}
	return xy
}

// appendParts flattens parts into xy and returns the cumulative end index of
// each part.
func appendParts[P ~[]orb.Point](xy []float64, parts []P) ([]float64, []uint32) {
	ends := make([]uint32, 0, len(parts))
	for _, p := range parts {
		xy = appendXY(xy, p)
		ends = append(ends, uint32(len(xy)/2))
	}
	return xy, ends
}

func polygonToFGB(poly orb.Polygon, builder *flatbuffers.Builder) *writer.Geometry {
	xy, ends := appendParts(nil, poly)
	g := writer.NewGeometry(builder).SetType(flattypes.GeometryTypePolygon).SetXY(xy)
	if len(ends) > 1 {
		g.SetEnds(ends)
	}
	return g
}

// toFGB converts g to a FlatGeobuf geometry. Callers check the type with
// geometryType first.
func toFGB(g orb.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	switch v := g.(type) {
	case orb.Point:
		return writer.NewGeometry(builder).SetType(flattypes.GeometryTypePoint).SetXY([]float64{v[0], v[1]})
	case orb.MultiPoint:
		return writer.NewGeometry(builder).SetType(flattypes.GeometryTypeMultiPoint).SetXY(appendXY(nil, v))
	case orb.LineString:
		return writer.NewGeometry(builder).SetType(flattypes.GeometryTypeLineString).SetXY(appendXY(nil, v))
	case orb.MultiLineString:
		xy, ends := appendParts(nil, v)
		return writer.NewGeometry(builder).SetType(flattypes.GeometryTypeMultiLineString).SetXY(xy).SetEnds(ends)
	case orb.Ring:
		return polygonToFGB(orb.Polygon{v}, builder)
	case orb.Bound:
		return polygonToFGB(v.ToPolygon(), builder)
	case orb.Polygon:
		return polygonToFGB(v, builder)
	case orb.MultiPolygon:
		parts := make([]writer.Geometry, 0, len(v))
		for _, poly := range v {
			parts = append(parts, *polygonToFGB(poly, builder))
		}
		return writer.NewGeometry(builder).SetType(flattypes.GeometryTypeMultiPolygon).SetParts(parts)
	}
	return nil
}

// points reads the coordinate pairs [from, to) of g.
func points(g *flattypes.Geometry, from, to int) []orb.Point {
	pts := make([]orb.Point, 0, to-from)
	for i := from; i < to; i++ {
		pts = append(pts, orb.Point{g.Xy(2 * i), g.Xy(2*i + 1)})
	}
	return pts
}

// parts splits the coordinates of g at its ends. A geometry without ends is a
// single part.
func parts(g *flattypes.Geometry) ([][]orb.Point, error) {
	n := g.XyLength() / 2
	if g.EndsLength() == 0 {
		return [][]orb.Point{points(g, 0, n)}, nil
	}
	out := make([][]orb.Point, 0, g.EndsLength())
	start := 0
	for i := 0; i < g.EndsLength(); i++ {
		end := int(g.Ends(i))
		if end < start || end > n {
			return nil, fmt.Errorf("%w: part end %d outside [%d, %d]", ErrInvalidData, end, start, n)
		}
		out = append(out, points(g, start, end))
		start = end
	}
	return out, nil
}

func polygonFromFGB(g *flattypes.Geometry) (orb.Polygon, error) {
	rings, err := parts(g)
	if err != nil {
		return nil, err
	}
	poly := make(orb.Polygon, len(rings))
	for i, r := range rings {
		poly[i] = r
	}
	return poly, nil
}

// fromFGB converts a FlatGeobuf geometry. layer is the header geometry type,
// used when the geometry itself carries none.
func fromFGB(g *flattypes.Geometry, layer flattypes.GeometryType) (orb.Geometry, error) {
	typ := g.Type()
	if typ == flattypes.GeometryTypeUnknown {
		typ = layer
	}
	if g.XyLength()%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of ordinates", ErrInvalidData)
	}

	switch typ {
	case flattypes.GeometryTypePoint:
		if g.XyLength() != 2 {
			return nil, fmt.Errorf("%w: point with %d ordinates", ErrInvalidData, g.XyLength())
		}
		return orb.Point{g.Xy(0), g.Xy(1)}, nil
	case flattypes.GeometryTypeMultiPoint:
		return orb.MultiPoint(points(g, 0, g.XyLength()/2)), nil
	case flattypes.GeometryTypeLineString:
		return orb.LineString(points(g, 0, g.XyLength()/2)), nil
	case flattypes.GeometryTypeMultiLineString:
		lines, err := parts(g)
		if err != nil {
			return nil, err
		}
		mls := make(orb.MultiLineString, len(lines))
		for i, l := range lines {
			mls[i] = l
		}
		return mls, nil
	case flattypes.GeometryTypePolygon:
		return polygonFromFGB(g)
	case flattypes.GeometryTypeMultiPolygon:
		mp := make(orb.MultiPolygon, 0, g.PartsLength())
		for i := 0; i < g.PartsLength(); i++ {
			var part flattypes.Geometry
			if !g.Parts(&part, i) {
				return nil, fmt.Errorf("%w: missing part %d", ErrInvalidData, i)
			}
			poly, err := polygonFromFGB(&part)
			if err != nil {
				return nil, err
			}
			mp = append(mp, poly)
		}
		return mp, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, flattypes.EnumNamesGeometryType[typ])
}
