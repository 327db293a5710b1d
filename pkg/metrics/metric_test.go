package metrics

import (
	"math"
	"testing"

	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsotropicDistanceIsEuclidean(t *testing.T) {
	f := NewIsotropicField(4)

	a := da.NewPoint(0, 0)
	b := da.NewPoint(3, 4)
	assert.InDelta(t, 5.0, f.Distance(0, a, b), 1e-12)
}

func TestAnisotropicDistance(t *testing.T) {
	// travel along y is four times slower in metric length
	f := NewUniformField(2, 1.0, 0.0, 16.0)

	testCases := []struct {
		name string
		a, b da.Point
		want float64
	}{
		{name: "along fast axis", a: da.NewPoint(0, 0), b: da.NewPoint(2, 0), want: 2.0},
		{name: "along slow axis", a: da.NewPoint(0, 0), b: da.NewPoint(0, 2), want: 8.0},
		{name: "diagonal", a: da.NewPoint(0, 0), b: da.NewPoint(1, 1), want: math.Sqrt(17.0)},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, f.Distance(1, tt.a, tt.b), 1e-12)
		})
	}
}

func TestAnisotropyRatio(t *testing.T) {
	assert.InDelta(t, 1.0, NewIsotropicField(1).AnisotropyRatio(0), 1e-12)
	assert.InDelta(t, 2.0, NewUniformField(1, 1.0, 0.0, 4.0).AnisotropyRatio(0), 1e-9)

	// rotating the tensor must not change its eigenvalue ratio
	th := math.Pi / 6
	ct, st := math.Cos(th), math.Sin(th)
	m11 := ct*ct + 4*st*st
	m12 := (1 - 4.0) * ct * st
	m22 := st*st + 4*ct*ct
	rotated := NewUniformField(1, m11, m12, m22)
	assert.InDelta(t, 2.0, rotated.AnisotropyRatio(0), 1e-9)
}

func TestNewFieldValidatesLength(t *testing.T) {
	_, err := NewField(make([]float64, 7), 2)
	require.ErrorIs(t, err, ErrFieldSize)

	f, err := NewField([]float64{1, 0, 0, 1, 2, 0, 0, 2}, 2)
	require.NoError(t, err)
	m11, m12, m21, m22 := f.At(1)
	assert.Equal(t, []float64{2, 0, 0, 2}, []float64{m11, m12, m21, m22})
}
