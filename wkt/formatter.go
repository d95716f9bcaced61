// Package wkt formats coordinate reference systems as Well-Known Text
// (version 1 flavoured) expressions.
package wkt

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	crs "github.com/tingold/orb-crs"
	"github.com/tingold/orb-crs/transform"
	"github.com/tingold/orb-crs/units"
)

var (
	// ErrNonInvertible is returned when the conversion of a projected or
	// derived CRS cannot be inverted. No text is produced in that case.
	ErrNonInvertible = errors.New("wkt: non-invertible conversion")
	// ErrNilCRS is returned when formatting a nil CRS.
	ErrNilCRS = errors.New("wkt: nil CRS")
)

// Options control the layout of the output.
type Options struct {
	// Indent is the number of spaces per nesting level. A negative value
	// writes everything on a single line.
	Indent int

	// OmitAuthority drops AUTHORITY elements.
	OmitAuthority bool

	// Logger receives a warning when a call produces invalid output. Nil
	// disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the default formatting options.
func DefaultOptions() *Options {
	return &Options{Indent: 2}
}

// Formatter writes WKT. It keeps the units of the enclosing elements as
// context so nested elements only repeat units that differ, and records
// structural problems in an invalid flag instead of failing.
//
// A Formatter can be reused but not shared between goroutines.
type Formatter struct {
	opts Options

	buf     strings.Builder
	frames  []frame
	context map[units.Kind][]units.Unit

	invalid  bool
	warnings []string
}

// NewFormatter returns a formatter. Nil options mean DefaultOptions.
func NewFormatter(opts *Options) *Formatter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Formatter{opts: *opts}
}

// Format returns the WKT of c. After the call, IsInvalid reports whether the
// text fails to describe c completely. The error matches ErrNilCRS or
// ErrNonInvertible.
func (f *Formatter) Format(c *crs.CRS) (string, error) {
	f.reset()
	if c == nil {
		return "", ErrNilCRS
	}
	if err := f.crs(c); err != nil {
		f.reset()
		return "", err
	}
	if f.invalid && f.opts.Logger != nil {
		f.opts.Logger.Warn("wkt: invalid output", "crs", c.Name(), "warnings", f.warnings)
	}
	return f.buf.String(), nil
}

// IsInvalid reports whether the last formatted text is incomplete or
// ambiguous.
func (f *Formatter) IsInvalid() bool { return f.invalid }

// Warnings describes why the last formatted text is invalid.
func (f *Formatter) Warnings() []string {
	return append([]string(nil), f.warnings...)
}

// Format formats c with a new Formatter. The boolean reports invalid output.
func Format(c *crs.CRS, opts *Options) (string, bool, error) {
	f := NewFormatter(opts)
	s, err := f.Format(c)
	return s, f.IsInvalid(), err
}

func (f *Formatter) reset() {
	f.buf.Reset()
	f.frames = f.frames[:0]
	f.context = make(map[units.Kind][]units.Unit)
	f.invalid = false
	f.warnings = nil
}

func (f *Formatter) setInvalid(format string, args ...any) {
	f.invalid = true
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

// Unit context.

func (f *Formatter) pushUnit(u units.Unit) {
	f.context[u.Kind] = append(f.context[u.Kind], u)
}

func (f *Formatter) popUnit(k units.Kind) {
	s := f.context[k]
	f.context[k] = s[:len(s)-1]
}

func (f *Formatter) contextUnit(k units.Kind) (units.Unit, bool) {
	s := f.context[k]
	if len(s) == 0 {
		return units.Unit{}, false
	}
	return s[len(s)-1], true
}

// Low level writing.

// frame is an open element.
type frame struct {
	keyword string
	items   bool // an item was written
	broken  bool // a child started on a new line
}

var inlineKeywords = map[string]bool{"AUTHORITY": true, "TIMEORIGIN": true}

// inline reports whether keyword stays on the line of its parent.
func inline(keyword string, parent *frame) bool {
	if parent.broken {
		return false
	}
	return inlineKeywords[keyword] || parent.keyword == "AXIS"
}

func (f *Formatter) top() *frame {
	if len(f.frames) == 0 {
		return nil
	}
	return &f.frames[len(f.frames)-1]
}

// separator writes the comma before an item and reports whether the item is
// the first of its element.
func (f *Formatter) separator() bool {
	fr := f.top()
	if fr == nil {
		return true
	}
	first := !fr.items
	if !first {
		f.buf.WriteString(",")
	}
	fr.items = true
	return first
}

func (f *Formatter) open(keyword string) {
	parent := f.top()
	first := f.separator()
	switch {
	case parent == nil:
	case f.opts.Indent >= 0 && !inline(keyword, parent):
		parent.broken = true
		f.buf.WriteString("\n")
		f.buf.WriteString(strings.Repeat(" ", len(f.frames)*f.opts.Indent))
	case !first:
		f.buf.WriteString(" ")
	}
	f.buf.WriteString(keyword)
	f.buf.WriteString("[")
	f.frames = append(f.frames, frame{keyword: keyword})
}

func (f *Formatter) close() {
	f.buf.WriteString("]")
	f.frames = f.frames[:len(f.frames)-1]
}

func (f *Formatter) leaf() {
	if !f.separator() {
		f.buf.WriteString(" ")
	}
}

func (f *Formatter) quoted(s string) {
	f.leaf()
	f.buf.WriteString(`"`)
	f.buf.WriteString(strings.ReplaceAll(s, `"`, `""`))
	f.buf.WriteString(`"`)
}

func (f *Formatter) keyword(s string) {
	f.leaf()
	f.buf.WriteString(s)
}

func (f *Formatter) number(v float64) {
	f.leaf()
	f.buf.WriteString(formatNumber(v))
}

func (f *Formatter) integer(v int) {
	f.leaf()
	f.buf.WriteString(strconv.Itoa(v))
}

func formatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (f *Formatter) authority(ids []crs.Identifier) {
	if f.opts.OmitAuthority || len(ids) == 0 {
		return
	}
	f.open("AUTHORITY")
	f.quoted(ids[0].Authority)
	f.quoted(ids[0].Code)
	f.close()
}

// Elements.

func (f *Formatter) unit(u units.Unit) {
	f.open("UNIT")
	f.quoted(u.Name)
	f.number(u.ToSI)
	f.close()
}

func (f *Formatter) axis(a crs.Axis) {
	f.open("AXIS")
	f.quoted(a.Name)
	f.keyword(a.Direction.String())
	if ctx, ok := f.contextUnit(a.Unit.Kind); !ok || ctx != a.Unit {
		f.unit(a.Unit)
	}
	f.close()
}

// coordinateSystem writes the UNIT and AXIS elements of cs and leaves the unit
// pushed as context for the caller to pop.
func (f *Formatter) coordinateSystem(cs *crs.CoordinateSystem) units.Kind {
	primary := cs.Axis(0).Unit
	if u, ok := cs.UnitOf(primary.Kind); ok {
		primary = u
	} else {
		f.setInvalid("axes of %q have no common %s unit", cs.Name(), primary.Kind)
	}
	f.pushUnit(primary)
	f.unit(primary)
	for _, a := range cs.Axes() {
		f.axis(a)
	}
	return primary.Kind
}

func (f *Formatter) crs(c *crs.CRS) error {
	switch c.Kind() {
	case crs.Geographic, crs.Geocentric:
		f.geodetic(c)
	case crs.Projected:
		return f.projected(c)
	case crs.Derived:
		return f.derived(c)
	case crs.Vertical:
		f.vertical(c)
	case crs.Temporal:
		f.temporal(c)
	case crs.Engineering:
		f.simple(c, "LOCAL_CS", "LOCAL_DATUM", func() { f.integer(0) })
	case crs.Image:
		f.simple(c, "IMAGECRS", "IMAGEDATUM", func() { f.quoted(c.ImageDatum().PixelInCell().String()) })
	case crs.Compound:
		f.open("COMPD_CS")
		f.quoted(c.Name())
		for _, comp := range c.Components() {
			if err := f.crs(comp); err != nil {
				return err
			}
		}
		f.authority(c.Identifiers())
		f.close()
	default:
		f.setInvalid("unknown CRS kind %s", c.Kind())
	}
	return nil
}

func (f *Formatter) geodetic(c *crs.CRS) {
	keyword := "GEOGCS"
	if c.Kind() == crs.Geocentric {
		keyword = "GEOCCS"
	}
	cs := c.CoordinateSystem()
	angular := units.Degree
	if u, ok := cs.UnitOf(units.Angular); ok {
		angular = u
	}
	f.open(keyword)
	f.quoted(c.Name())
	f.pushUnit(angular)
	f.datum(c.GeodeticDatum())
	f.primeMeridian(c.GeodeticDatum().PrimeMeridian())
	if c.Kind() == crs.Geocentric {
		f.popUnit(units.Angular)
	}
	kind := f.coordinateSystem(cs)
	f.popUnit(kind)
	if c.Kind() == crs.Geographic {
		f.popUnit(units.Angular)
	}
	f.authority(c.Identifiers())
	f.close()
}

func (f *Formatter) datum(d *crs.GeodeticDatum) {
	f.open("DATUM")
	f.quoted(d.Name())
	e := d.Ellipsoid()
	toMetre, _ := e.Unit().Convert(1, units.Metre)
	f.open("SPHEROID")
	f.quoted(e.Name())
	f.number(e.SemiMajorAxis() * toMetre)
	if e.IsSphere() {
		f.number(0)
	} else {
		f.number(e.InverseFlattening())
	}
	f.authority(e.Identifiers())
	f.close()
	if bw, ok := d.ToWGS84(); ok {
		f.open("TOWGS84")
		for _, v := range bw.Values() {
			f.number(v)
		}
		f.close()
	}
	f.authority(d.Identifiers())
	f.close()
}

func (f *Formatter) primeMeridian(pm *crs.PrimeMeridian) {
	u, _ := f.contextUnit(units.Angular)
	lon, err := pm.GreenwichLongitudeIn(u)
	if err != nil {
		lon = pm.GreenwichLongitude()
	}
	f.open("PRIMEM")
	f.quoted(pm.Name())
	f.number(lon)
	f.authority(pm.Identifiers())
	f.close()
}

// checkInvertible inverts the forward conversion of a derived or projected
// CRS.
func checkInvertible(c *crs.CRS) (transform.MathTransform, error) {
	inv, err := c.Conversion().Transform().Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrNonInvertible, c.Name(), err)
	}
	return inv, nil
}

func (f *Formatter) projected(c *crs.CRS) error {
	if _, err := checkInvertible(c); err != nil {
		return err
	}
	base := c.BaseCRS()
	cs := c.CoordinateSystem()
	linear := units.Metre
	if u, ok := cs.UnitOf(units.Linear); ok {
		linear = u
	}
	angular := units.Degree
	if u, ok := base.CoordinateSystem().UnitOf(units.Angular); ok {
		angular = u
	}

	f.open("PROJCS")
	f.quoted(c.Name())
	f.pushUnit(linear)
	f.pushUnit(angular)
	if err := f.crs(base); err != nil {
		return err
	}
	conv := c.Conversion()
	f.open("PROJECTION")
	f.quoted(conv.Method().Name)
	if id := conv.Method().Identifier; id.Code != "" {
		f.authority([]crs.Identifier{id})
	}
	f.close()
	f.parameters(conv, base.GeodeticDatum().Ellipsoid())
	f.popUnit(units.Angular)
	f.popUnit(units.Linear)
	kind := f.coordinateSystem(cs)
	f.popUnit(kind)
	f.authority(c.Identifiers())
	f.close()
	return nil
}

// parameters writes the conversion parameters in the context units. Axis
// lengths equal to the ellipsoid ones are implied by the base CRS and left out.
func (f *Formatter) parameters(conv *crs.Conversion, e *crs.Ellipsoid) {
	toMetre, _ := e.Unit().Convert(1, units.Metre)
	implied := map[string]float64{
		"semi_major": e.SemiMajorAxis() * toMetre,
		"semi_minor": e.SemiMinorAxis() * toMetre,
	}
	for _, p := range conv.Parameters() {
		v := p.Value
		if want, ok := implied[strings.ToLower(p.Name)]; ok {
			if m, err := p.Unit.Convert(v, units.Metre); err == nil && m == want {
				continue
			}
		}
		if ctx, ok := f.contextUnit(p.Unit.Kind); ok {
			if converted, err := p.Unit.Convert(v, ctx); err == nil {
				v = converted
			}
		}
		f.open("PARAMETER")
		f.quoted(p.Name)
		f.number(v)
		f.close()
	}
}

func (f *Formatter) derived(c *crs.CRS) error {
	toBase, err := checkInvertible(c)
	if err != nil {
		return err
	}
	f.open("FITTED_CS")
	f.quoted(c.Name())
	f.mathTransform(toBase)
	if err := f.crs(c.BaseCRS()); err != nil {
		return err
	}
	kind := f.coordinateSystem(c.CoordinateSystem())
	f.popUnit(kind)
	f.authority(c.Identifiers())
	f.close()
	return nil
}

func (f *Formatter) mathTransform(mt transform.MathTransform) {
	d := mt.Describe()
	if d.Inverse {
		f.open("INVERSE_MT")
	}
	f.open("PARAM_MT")
	f.quoted(d.Method)
	for _, p := range d.Parameters {
		if p.IsDefault() {
			continue
		}
		f.open("PARAMETER")
		f.quoted(p.Name)
		f.number(p.Value)
		f.close()
	}
	f.close()
	if d.Inverse {
		f.close()
	}
}

func (f *Formatter) vertical(c *crs.CRS) {
	d := c.VerticalDatum()
	f.open("VERT_CS")
	f.quoted(c.Name())
	f.open("VERT_DATUM")
	f.quoted(d.Name())
	f.integer(int(d.Type()))
	f.authority(d.Identifiers())
	f.close()
	kind := f.coordinateSystem(c.CoordinateSystem())
	f.popUnit(kind)
	f.authority(c.Identifiers())
	f.close()
}

func (f *Formatter) temporal(c *crs.CRS) {
	d := c.TemporalDatum()
	f.open("TIMECRS")
	f.quoted(c.Name())
	f.open("TDATUM")
	f.quoted(d.Name())
	f.open("TIMEORIGIN")
	f.quoted(d.Origin().Format("2006-01-02T15:04:05Z07:00"))
	f.close()
	f.authority(d.Identifiers())
	f.close()
	kind := f.coordinateSystem(c.CoordinateSystem())
	f.popUnit(kind)
	f.authority(c.Identifiers())
	f.close()
}

func (f *Formatter) simple(c *crs.CRS, keyword, datumKeyword string, datumDetail func()) {
	d := c.Datum()
	f.open(keyword)
	f.quoted(c.Name())
	f.open(datumKeyword)
	f.quoted(d.Name())
	datumDetail()
	f.authority(d.Identifiers())
	f.close()
	kind := f.coordinateSystem(c.CoordinateSystem())
	f.popUnit(kind)
	f.authority(c.Identifiers())
	f.close()
}
