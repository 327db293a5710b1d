package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

type Index uint32

var (
	ErrEmptyMesh    = errors.New("mesh must have at least one cell")
	ErrMeshMismatch = errors.New("mesh arrays have inconsistent lengths")
)

// Mesh is the read-only cell topology consumed by the eikonal solver: one
// centroid per cell and, per cell, the adjacent cells ordered counter-clockwise
// around that centroid. The counter-clockwise ordering matters: the solver's
// triangle update only considers consecutive neighbor pairs in this circular
// order, as an approximation of the two rays bounding a wavefront sector.
type Mesh struct {
	dimensions int
	centroids  []Point
	neighbours [][]Index
}

// NewMesh wraps externally built topology. neighbours[c] must already be
// ordered counter-clockwise around centroids[c]; use OrderCounterClockwise
// when the producer does not guarantee that.
func NewMesh(dimensions int, centroids []Point, neighbours [][]Index) (*Mesh, error) {
	if len(centroids) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(neighbours) != len(centroids) {
		return nil, fmt.Errorf("%w: %d centroids vs %d neighbour lists",
			ErrMeshMismatch, len(centroids), len(neighbours))
	}
	return &Mesh{
		dimensions: dimensions,
		centroids:  centroids,
		neighbours: neighbours,
	}, nil
}

func (m *Mesh) Dimensions() int {
	return m.dimensions
}

func (m *Mesh) NumberOfCells() int {
	return len(m.centroids)
}

func (m *Mesh) Centroid(cell Index) Point {
	return m.centroids[cell]
}

// Neighbors of cell, counter-clockwise. The slice is owned by the mesh and
// must not be mutated.
func (m *Mesh) Neighbors(cell Index) []Index {
	return m.neighbours[cell]
}

// MaxNeighborDistance is the largest centroid distance from cell to any of its
// neighbors, the local mesh scale h used by the solver's locality bound.
func (m *Mesh) MaxNeighborDistance(cell Index) float64 {
	h := 0.0
	for _, nb := range m.neighbours[cell] {
		d := EuclideanDist(m.centroids[cell], m.centroids[nb])
		if d > h {
			h = d
		}
	}
	return h
}

// vertex-sharing (8-connected) neighbor offsets of a cartesian cell
var cartesianOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// NewCartesianMesh2d builds an nx×ny cartesian mesh with cell spacing (dx, dy).
// Cell (i, j) has index i + j*nx and centroid ((i+0.5)dx, (j+0.5)dy). Cells
// sharing a face or a vertex are neighbors, so interior cells have eight.
func NewCartesianMesh2d(nx, ny int, dx, dy float64) (*Mesh, error) {
	if nx <= 0 || ny <= 0 {
		return nil, ErrEmptyMesh
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("%w: cell spacing must be positive (dx=%v, dy=%v)",
			ErrMeshMismatch, dx, dy)
	}
	n := nx * ny
	centroids := make([]Point, n)
	neighbours := make([][]Index, n)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cell := i + j*nx
			centroids[cell] = NewPoint((float64(i)+0.5)*dx, (float64(j)+0.5)*dy)
			nbs := make([]Index, 0, 8)
			for _, off := range cartesianOffsets {
				ni, nj := i+off[0], j+off[1]
				if ni < 0 || ni >= nx || nj < 0 || nj >= ny {
					continue
				}
				nbs = append(nbs, Index(ni+nj*nx))
			}
			neighbours[cell] = nbs
		}
	}
	m := &Mesh{
		dimensions: 2,
		centroids:  centroids,
		neighbours: neighbours,
	}
	OrderCounterClockwise(m)
	return m, nil
}

// OrderCounterClockwise sorts every neighbor list by ascending angle of the
// direction from the cell's centroid to the neighbor's, so that consecutive
// entries bound adjacent wavefront sectors.
func OrderCounterClockwise(m *Mesh) {
	for c := range m.neighbours {
		center := m.centroids[c]
		nbs := m.neighbours[c]
		sort.Slice(nbs, func(a, b int) bool {
			return neighborAngle(center, m.centroids[nbs[a]]) <
				neighborAngle(center, m.centroids[nbs[b]])
		})
	}
}

func neighborAngle(center, nb Point) float64 {
	return math.Atan2(nb.GetY()-center.GetY(), nb.GetX()-center.GetX())
}
