package crs

// Equals reports whether c and other describe the same CRS under mode.
// Objects that are not a *CRS are never equal. Equals panics if mode is not
// one of the declared comparison modes.
func (c *CRS) Equals(other any, mode ComparisonMode) bool {
	o, ok := other.(*CRS)
	if !ok {
		return false
	}
	return newComparer(mode).crs(c, o)
}

// Equal reports whether a and b are equal under mode. Either may be nil.
func Equal(a, b *CRS, mode ComparisonMode) bool {
	return newComparer(mode).crs(a, b)
}

func (cmp *comparer) crs(a, b *CRS) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	if !cmp.metadata(&a.identification, &b.identification) {
		return false
	}
	if cmp.mode == Strict {
		if !cmp.coordinateSystem(a.cs, b.cs) {
			return false
		}
	} else if !cmp.coordinateSystem(a.CoordinateSystem(), b.CoordinateSystem()) {
		return false
	}
	if !cmp.datum(a.datum, b.datum) {
		return false
	}
	switch a.kind {
	case Compound:
		if len(a.components) != len(b.components) {
			return false
		}
		for i := range a.components {
			if !cmp.crs(a.components[i], b.components[i]) {
				return false
			}
		}
	case Projected, Derived:
		if !cmp.crs(a.base, b.base) {
			return false
		}
		return cmp.guardedConversion(a.conversion, b.conversion)
	}
	return true
}

// guardedConversion compares the conversions of two derived CRS. The target of
// each conversion is the derived CRS itself, so a comparison reentering here
// assumes the conversions are equal.
func (cmp *comparer) guardedConversion(a, b *Conversion) bool {
	if cmp.comparingConversion {
		return true
	}
	cmp.comparingConversion = true
	defer func() { cmp.comparingConversion = false }()
	return cmp.conversion(a, b)
}
