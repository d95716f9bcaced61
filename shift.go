package crs

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// AxisRangeKind is a convention for the range of longitude values.
type AxisRangeKind int

const (
	// PositiveLongitude puts longitudes in [0, 360°].
	PositiveLongitude AxisRangeKind = iota
	// SpanningZeroLongitude puts longitudes in [-180°, 180°].
	SpanningZeroLongitude

	numAxisRangeKinds
)

func (k AxisRangeKind) String() string {
	switch k {
	case PositiveLongitude:
		return "POSITIVE_LONGITUDE"
	case SpanningZeroLongitude:
		return "SPANNING_ZERO_LONGITUDE"
	}
	return fmt.Sprintf("AxisRangeKind(%d)", int(k))
}

// ParseAxisRangeKind accepts "positive" or "zero" as well as the full names.
func ParseAxisRangeKind(s string) (AxisRangeKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POSITIVE", "POSITIVE_LONGITUDE":
		return PositiveLongitude, nil
	case "ZERO", "SPANNING_ZERO", "SPANNING_ZERO_LONGITUDE":
		return SpanningZeroLongitude, nil
	}
	return 0, fmt.Errorf("%w: unknown axis range %q", ErrInvalidParameter, s)
}

func (k AxisRangeKind) opposite() AxisRangeKind {
	return numAxisRangeKinds - 1 - k
}

type shiftSlot struct {
	mu  sync.Mutex
	crs atomic.Pointer[CRS]
}

type shiftCache struct {
	slots [numAxisRangeKinds]shiftSlot
}

// cache returns the shift cache of c, allocating it under the coarse lock on
// first use.
func (c *CRS) cache() *shiftCache {
	if sc := c.shifts.Load(); sc != nil {
		return sc
	}
	c.shiftMu.Lock()
	defer c.shiftMu.Unlock()
	if sc := c.shifts.Load(); sc != nil {
		return sc
	}
	sc := &shiftCache{}
	c.shifts.Store(sc)
	return sc
}

// seed records s as the variant of c for k. It is only called on a CRS that
// has not been published yet.
func (c *CRS) seed(k AxisRangeKind, s *CRS) {
	c.cache().slots[k].crs.Store(s)
}

// ShiftAxisRange returns a CRS whose longitude axes follow the range
// convention k. Values keep their meaning; only their preferred numeric range
// changes. Geographic and compound CRS are shifted, any other kind is
// returned unchanged. The result is computed once per kind and cached. When
// no axis needs to move, c itself is returned.
func (c *CRS) ShiftAxisRange(k AxisRangeKind) *CRS {
	if k < 0 || k >= numAxisRangeKinds {
		panic(fmt.Sprintf("crs: invalid axis range kind %d", int(k)))
	}
	if c.kind != Geographic && c.kind != Compound {
		return c
	}
	slot := &c.cache().slots[k]
	if s := slot.crs.Load(); s != nil {
		return s
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	if s := slot.crs.Load(); s != nil {
		return s
	}
	s := c.shift(k)
	slot.crs.Store(s)
	return s
}

func (c *CRS) shift(k AxisRangeKind) *CRS {
	var shifted *CRS
	switch c.kind {
	case Geographic:
		cs, changed := c.cs.shiftLongitude(k)
		if !changed {
			return c
		}
		shifted = &CRS{identification: c.identification.withoutIdentifiers(), kind: Geographic, cs: cs, datum: c.datum}
	case Compound:
		components := make([]*CRS, len(c.components))
		changed := false
		for i, comp := range c.components {
			components[i] = comp.ShiftAxisRange(k)
			changed = changed || components[i] != comp
		}
		if !changed {
			return c
		}
		shifted = &CRS{identification: c.identification.withoutIdentifiers(), kind: Compound, components: components}
	default:
		return c
	}
	shifted.seed(k, shifted)
	shifted.seed(k.opposite(), c)
	return shifted
}
