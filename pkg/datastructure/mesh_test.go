package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartesianMeshTopology(t *testing.T) {
	mesh, err := NewCartesianMesh2d(3, 3, 1.0, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 2, mesh.Dimensions())
	assert.Equal(t, 9, mesh.NumberOfCells())

	testCases := []struct {
		name         string
		cell         Index
		wantDegree   int
		wantCentroid Point
	}{
		{name: "corner cell", cell: 0, wantDegree: 3, wantCentroid: NewPoint(0.5, 0.5)},
		{name: "edge cell", cell: 1, wantDegree: 5, wantCentroid: NewPoint(1.5, 0.5)},
		{name: "interior cell", cell: 4, wantDegree: 8, wantCentroid: NewPoint(1.5, 1.5)},
		{name: "far corner", cell: 8, wantDegree: 3, wantCentroid: NewPoint(2.5, 2.5)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, mesh.Neighbors(tt.cell), tt.wantDegree)
			assert.Equal(t, tt.wantCentroid, mesh.Centroid(tt.cell))
		})
	}
}

func TestCartesianMeshNeighborsCounterClockwise(t *testing.T) {
	mesh, err := NewCartesianMesh2d(3, 3, 1.0, 1.0)
	require.NoError(t, err)

	for cell := Index(0); cell < 9; cell++ {
		center := mesh.Centroid(cell)
		nbs := mesh.Neighbors(cell)
		prev := math.Inf(-1)
		for _, nb := range nbs {
			angle := neighborAngle(center, mesh.Centroid(nb))
			require.Greater(t, angle, prev,
				"cell %d: neighbor angles must strictly increase", cell)
			prev = angle
		}
	}
}

func TestMaxNeighborDistance(t *testing.T) {
	mesh, err := NewCartesianMesh2d(3, 3, 1.0, 1.0)
	require.NoError(t, err)

	// interior cell: the diagonal neighbor is the farthest
	assert.InDelta(t, math.Sqrt2, mesh.MaxNeighborDistance(4), 1e-12)
}

func TestCartesianMeshRejectsBadDimensions(t *testing.T) {
	testCases := []struct {
		name   string
		nx, ny int
		dx, dy float64
	}{
		{name: "zero nx", nx: 0, ny: 3, dx: 1, dy: 1},
		{name: "negative ny", nx: 3, ny: -1, dx: 1, dy: 1},
		{name: "zero spacing", nx: 3, ny: 3, dx: 0, dy: 1},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCartesianMesh2d(tt.nx, tt.ny, tt.dx, tt.dy)
			assert.Error(t, err)
		})
	}
}

func TestNewMeshValidation(t *testing.T) {
	_, err := NewMesh(2, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyMesh)

	_, err = NewMesh(2, []Point{NewPoint(0, 0), NewPoint(1, 0)}, [][]Index{{1}})
	assert.ErrorIs(t, err, ErrMeshMismatch)
}
