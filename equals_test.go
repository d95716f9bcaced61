package crs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingold/orb-crs/units"
)

var allModes = []ComparisonMode{Strict, ByContract, IgnoreMetadata, Approximate}

func TestEquals_Reflexive(t *testing.T) {
	utm, err := UTM(31, true)
	require.NoError(t, err)
	compound, err := NewCompound(Properties{Name: "3D"}, WGS84, GeoidalHeight)
	require.NoError(t, err)

	all := append(WellKnown(), utm, compound, newTestDerived(t, WGS84))
	for _, c := range all {
		for _, mode := range allModes {
			assert.True(t, c.Equals(c, mode), "%s in %s", c, mode)
		}
	}
}

func TestEquals_SymmetricAndMonotonic(t *testing.T) {
	a := newTestGeographic(t, "A")
	renamed := newTestGeographic(t, "B")
	shifted := WGS84.ShiftAxisRange(PositiveLongitude)

	tests := []struct {
		name  string
		a, b  *CRS
		equal map[ComparisonMode]bool
	}{
		{"same definition", a, newTestGeographic(t, "A"), map[ComparisonMode]bool{
			Strict: true, ByContract: true, IgnoreMetadata: true, Approximate: true}},
		{"renamed", a, renamed, map[ComparisonMode]bool{
			Strict: false, ByContract: false, IgnoreMetadata: true, Approximate: true}},
		{"shifted longitude range", WGS84, shifted, map[ComparisonMode]bool{
			Strict: false, ByContract: false, IgnoreMetadata: false, Approximate: true}},
		{"different kinds", WGS84, GeocentricCartesian, map[ComparisonMode]bool{
			Strict: false, ByContract: false, IgnoreMetadata: false, Approximate: false}},
		{"different dimension", WGS84, WGS84_3D, map[ComparisonMode]bool{
			Strict: false, ByContract: false, IgnoreMetadata: false, Approximate: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strictEqual := false
			for _, mode := range allModes {
				ab := tt.a.Equals(tt.b, mode)
				assert.Equal(t, tt.equal[mode], ab, "mode %s", mode)
				assert.Equal(t, ab, tt.b.Equals(tt.a, mode), "symmetry in %s", mode)
				if strictEqual {
					assert.True(t, ab, "monotonicity in %s", mode)
				}
				strictEqual = strictEqual || ab
			}
		})
	}
}

func TestEquals_NonCRS(t *testing.T) {
	assert.False(t, WGS84.Equals(nil, Strict))
	assert.False(t, WGS84.Equals("WGS84(DD)", Strict))
	assert.False(t, WGS84.Equals(WGS84Datum, Strict))
	assert.False(t, WGS84.Equals((*CRS)(nil), Strict))
}

func TestEquals_InvalidModePanics(t *testing.T) {
	assert.Panics(t, func() { WGS84.Equals(WGS84_3D, ComparisonMode(42)) })
}

func TestEquals_DerivedCycle(t *testing.T) {
	a := newTestDerived(t, newTestGeographic(t, "Base"))
	b := newTestDerived(t, newTestGeographic(t, "Base"))
	require.NotSame(t, a, b)
	require.Same(t, a, a.Conversion().Target())

	for _, mode := range allModes {
		assert.True(t, a.Equals(b, mode), "mode %s", mode)
		assert.True(t, a.Conversion().Equals(b.Conversion(), mode), "conversion in mode %s", mode)
	}

	other := newTestDerived(t, newTestGeographic(t, "Other base"))
	assert.False(t, a.Equals(other, ByContract))
	assert.True(t, a.Equals(other, IgnoreMetadata))
}

func TestEquals_GuardIsScopedToOneComparison(t *testing.T) {
	c := newComparer(Strict)
	a := newTestDerived(t, WGS84)
	b := newTestDerived(t, WGS84)
	assert.True(t, c.crs(a, b))
	assert.False(t, c.comparingConversion)
}

func TestEquals_DerivedTransformDiffers(t *testing.T) {
	utm31, err := UTM(31, true)
	require.NoError(t, err)
	utm32, err := UTM(32, true)
	require.NoError(t, err)

	renamed, err := NewProjected(Properties{Name: utm31.Name()}, WGS84, utm32.Conversion(), ProjectedCS)
	require.NoError(t, err)
	for _, mode := range allModes {
		assert.False(t, utm31.Equals(renamed, mode), "mode %s", mode)
	}
}

func TestEquals_CompoundOrder(t *testing.T) {
	ab, err := NewCompound(Properties{Name: "c"}, WGS84, GeoidalHeight)
	require.NoError(t, err)
	ba, err := NewCompound(Properties{Name: "c"}, GeoidalHeight, WGS84)
	require.NoError(t, err)
	again, err := NewCompound(Properties{Name: "c"}, WGS84, GeoidalHeight)
	require.NoError(t, err)

	for _, mode := range allModes {
		assert.False(t, ab.Equals(ba, mode), "mode %s", mode)
		assert.True(t, ab.Equals(again, mode), "mode %s", mode)
	}
}

func TestEquals_StrictComparesStoredCoordinateSystem(t *testing.T) {
	composed, err := NewCompound(Properties{Name: "c"}, WGS84, GeoidalHeight)
	require.NoError(t, err)

	a := NewAssembler(Compound, Properties{Name: "c"})
	require.NoError(t, a.SetComponents(WGS84, GeoidalHeight))
	require.NoError(t, a.SetCoordinateSystem(composed.CoordinateSystem()))
	explicit, err := a.Build()
	require.NoError(t, err)

	assert.False(t, composed.Equals(explicit, Strict))
	assert.True(t, composed.Equals(explicit, ByContract))
}

func TestEquals_ApproximateTolerance(t *testing.T) {
	e1, err := NewFlattenedSphere(Properties{Name: "e"}, 6378137, 298.257223563, units.Metre)
	require.NoError(t, err)
	e2, err := NewFlattenedSphere(Properties{Name: "e"}, 6378137*(1+1e-12), 298.257223563, units.Metre)
	require.NoError(t, err)
	km, err := NewFlattenedSphere(Properties{Name: "e"}, 6378.137, 298.257223563, units.Kilometre)
	require.NoError(t, err)

	assert.False(t, e1.Equals(e2, IgnoreMetadata))
	assert.True(t, e1.Equals(e2, Approximate))
	assert.False(t, e1.Equals(km, ByContract))
	assert.True(t, e1.Equals(km, Approximate))
}

func TestParseComparisonMode(t *testing.T) {
	for _, mode := range allModes {
		got, err := ParseComparisonMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	got, err := ParseComparisonMode("ignore-metadata")
	require.NoError(t, err)
	assert.Equal(t, IgnoreMetadata, got)

	_, err = ParseComparisonMode("fuzzy")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
