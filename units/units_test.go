package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		from, to Unit
		in, out  float64
	}{
		{"degree to radian", Degree, Radian, 180, math.Pi},
		{"radian to degree", Radian, Degree, math.Pi / 2, 90},
		{"grad to degree", Grad, Degree, 200, 180},
		{"kilometre to metre", Kilometre, Metre, 1.5, 1500},
		{"foot to metre", Foot, Metre, 1, 0.3048},
		{"day to second", Day, Second, 1, 86400},
		{"same unit", Metre, Metre, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Convert(tt.in, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.out, got, 1e-12)
		})
	}
}

func TestConvert_Incompatible(t *testing.T) {
	_, err := Degree.Convert(1, Metre)
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = Unit{}.Convert(1, Metre)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestFromDegrees(t *testing.T) {
	assert.InDelta(t, 200.0, Grad.FromDegrees(180), 1e-12)
	assert.Equal(t, 180.0, Degree.FromDegrees(180))
	assert.True(t, math.IsNaN(Metre.FromDegrees(180)))
}

func TestZeroAndString(t *testing.T) {
	assert.True(t, Unit{}.IsZero())
	assert.False(t, Degree.IsZero())
	assert.Equal(t, "<none>", Unit{}.String())
	assert.Equal(t, "metre", Metre.String())
	assert.Equal(t, "angular", Angular.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
