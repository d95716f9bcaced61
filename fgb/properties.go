package fgb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb/geojson"
)

// schema is the column layout of a layer.
type schema struct {
	names []string
	types []flattypes.ColumnType
	index map[string]int
}

// inferSchema collects the property names of all features, sorted, with the
// most general type seen for each.
func inferSchema(features []*geojson.Feature) *schema {
	types := make(map[string]flattypes.ColumnType)
	for _, f := range features {
		if f == nil {
			continue
		}
		for name, v := range f.Properties {
			if v == nil {
				continue
			}
			t := columnType(v)
			if prev, ok := types[name]; ok {
				t = promote(prev, t)
			}
			types[name] = t
		}
	}

	s := &schema{index: make(map[string]int, len(types))}
	for name := range types {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	for i, name := range s.names {
		s.types = append(s.types, types[name])
		s.index[name] = i
	}
	return s
}

func (s *schema) columns(builder *flatbuffers.Builder) []*writer.Column {
	cols := make([]*writer.Column, len(s.names))
	for i, name := range s.names {
		cols[i] = writer.NewColumn(builder).
			SetName(name).
			SetTitle(name).
			SetType(s.types[i]).
			SetNullable(true)
	}
	return cols
}

func columnType(v any) flattypes.ColumnType {
	switch v.(type) {
	case bool:
		return flattypes.ColumnTypeBool
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		return flattypes.ColumnTypeLong
	case float32, float64:
		return flattypes.ColumnTypeDouble
	case string:
		return flattypes.ColumnTypeString
	}
	return flattypes.ColumnTypeJson
}

// promote returns the type able to hold values of both a and b.
func promote(a, b flattypes.ColumnType) flattypes.ColumnType {
	switch {
	case a == b:
		return a
	case a == flattypes.ColumnTypeLong && b == flattypes.ColumnTypeDouble,
		a == flattypes.ColumnTypeDouble && b == flattypes.ColumnTypeLong:
		return flattypes.ColumnTypeDouble
	}
	return flattypes.ColumnTypeJson
}

// encodeProperties writes the non-null properties as a sequence of uint16
// column index and value, little-endian, strings prefixed by their uint32
// length.
func encodeProperties(props geojson.Properties, s *schema) ([]byte, error) {
	var buf []byte
	for i, name := range s.names {
		v, ok := props[name]
		if !ok || v == nil {
			continue
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(i))

		switch s.types[i] {
		case flattypes.ColumnTypeBool:
			b := byte(0)
			if v.(bool) {
				b = 1
			}
			buf = append(buf, b)
		case flattypes.ColumnTypeLong:
			buf = binary.LittleEndian.AppendUint64(buf, uint64(toInt64(v)))
		case flattypes.ColumnTypeDouble:
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(toFloat64(v)))
		case flattypes.ColumnTypeString:
			buf = appendString(buf, []byte(v.(string)))
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("fgb: property %q: %w", name, err)
			}
			buf = appendString(buf, data)
		}
	}
	return buf, nil
}

func appendString(buf, s []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return float64(toInt64(v))
}

// fixedSizes are the encoded sizes of the fixed-width column types.
var fixedSizes = map[flattypes.ColumnType]int{
	flattypes.ColumnTypeBool:   1,
	flattypes.ColumnTypeByte:   1,
	flattypes.ColumnTypeUByte:  1,
	flattypes.ColumnTypeShort:  2,
	flattypes.ColumnTypeUShort: 2,
	flattypes.ColumnTypeInt:    4,
	flattypes.ColumnTypeUInt:   4,
	flattypes.ColumnTypeFloat:  4,
	flattypes.ColumnTypeLong:   8,
	flattypes.ColumnTypeULong:  8,
	flattypes.ColumnTypeDouble: 8,
}

// decodeProperties reads properties encoded against the columns of h.
func decodeProperties(data []byte, h *flattypes.Header) (geojson.Properties, error) {
	props := make(geojson.Properties)
	for len(data) > 0 {
		if len(data) < 2 {
			return nil, fmt.Errorf("%w: truncated column index", ErrInvalidData)
		}
		i := int(binary.LittleEndian.Uint16(data))
		data = data[2:]

		var col flattypes.Column
		if i >= h.ColumnsLength() || !h.Columns(&col, i) {
			return nil, fmt.Errorf("%w: column %d out of range", ErrInvalidData, i)
		}
		typ := col.Type()

		size, fixed := fixedSizes[typ]
		if !fixed {
			if len(data) < 4 {
				return nil, fmt.Errorf("%w: truncated length of %q", ErrInvalidData, col.Name())
			}
			size = int(binary.LittleEndian.Uint32(data))
			data = data[4:]
		}
		if len(data) < size {
			return nil, fmt.Errorf("%w: truncated value of %q", ErrInvalidData, col.Name())
		}
		v, err := decodeValue(data[:size], typ)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidData, col.Name(), err)
		}
		props[string(col.Name())] = v
		data = data[size:]
	}
	return props, nil
}

func decodeValue(b []byte, typ flattypes.ColumnType) (any, error) {
	le := binary.LittleEndian
	switch typ {
	case flattypes.ColumnTypeBool:
		return b[0] != 0, nil
	case flattypes.ColumnTypeByte:
		return int64(int8(b[0])), nil
	case flattypes.ColumnTypeUByte:
		return int64(b[0]), nil
	case flattypes.ColumnTypeShort:
		return int64(int16(le.Uint16(b))), nil
	case flattypes.ColumnTypeUShort:
		return int64(le.Uint16(b)), nil
	case flattypes.ColumnTypeInt:
		return int64(int32(le.Uint32(b))), nil
	case flattypes.ColumnTypeUInt:
		return int64(le.Uint32(b)), nil
	case flattypes.ColumnTypeLong:
		return int64(le.Uint64(b)), nil
	case flattypes.ColumnTypeULong:
		return le.Uint64(b), nil
	case flattypes.ColumnTypeFloat:
		return float64(math.Float32frombits(le.Uint32(b))), nil
	case flattypes.ColumnTypeDouble:
		return math.Float64frombits(le.Uint64(b)), nil
	case flattypes.ColumnTypeJson:
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	case flattypes.ColumnTypeBinary:
		return append([]byte(nil), b...), nil
	}
	return string(b), nil
}
