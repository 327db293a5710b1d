package metrics

import (
	"errors"
	"fmt"
	"math"

	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrFieldSize = errors.New("metric field must hold 4 values per cell")
)

// Field holds one 2×2 symmetric positive-definite tensor per cell, describing
// anisotropic propagation: the travel time along a small displacement v inside
// cell c is sqrt(vᵀ M_c v). Stored row-major, 4 doubles per cell. The field is
// a read-only input to the solver, never mutated, and the core does not verify
// positive-definiteness; that is the caller's responsibility.
type Field struct {
	tensors  []float64
	numCells int
}

// NewField wraps a flat row-major tensor array of length 4*numCells.
func NewField(tensors []float64, numCells int) (*Field, error) {
	if len(tensors) != 4*numCells {
		return nil, fmt.Errorf("%w: got %d values for %d cells",
			ErrFieldSize, len(tensors), numCells)
	}
	return &Field{tensors: tensors, numCells: numCells}, nil
}

// NewUniformField repeats one tensor (m11, m12; m12, m22) for every cell.
func NewUniformField(numCells int, m11, m12, m22 float64) *Field {
	tensors := make([]float64, 4*numCells)
	for c := 0; c < numCells; c++ {
		tensors[4*c] = m11
		tensors[4*c+1] = m12
		tensors[4*c+2] = m12
		tensors[4*c+3] = m22
	}
	return &Field{tensors: tensors, numCells: numCells}
}

// NewIsotropicField is the identity tensor everywhere: metric distance equals
// euclidean distance.
func NewIsotropicField(numCells int) *Field {
	return NewUniformField(numCells, 1.0, 0.0, 1.0)
}

func (f *Field) NumberOfCells() int {
	return f.numCells
}

// At returns the row-major tensor entries of cell.
func (f *Field) At(cell da.Index) (m11, m12, m21, m22 float64) {
	i := 4 * int(cell)
	return f.tensors[i], f.tensors[i+1], f.tensors[i+2], f.tensors[i+3]
}

// Inner is the bilinear form aᵀ M_c b under cell's tensor.
func (f *Field) Inner(cell da.Index, ax, ay, bx, by float64) float64 {
	m11, m12, _, m22 := f.At(cell)
	return ax*(m11*bx+m12*by) + ay*(m12*bx+m22*by)
}

// Distance is the metric length of the segment from a to b measured with
// cell's tensor: sqrt((b−a)ᵀ M_c (b−a)).
func (f *Field) Distance(cell da.Index, a, b da.Point) float64 {
	dx := b.GetX() - a.GetX()
	dy := b.GetY() - a.GetY()
	return math.Sqrt(f.Inner(cell, dx, dy, dx, dy))
}

// AnisotropyRatio is sqrt(λmax/λmin) of cell's tensor, the ratio of the
// slowest to the fastest local propagation speed. Governs the radius within
// which already-queued cells are re-evaluated after an acceptance.
func (f *Field) AnisotropyRatio(cell da.Index) float64 {
	m11, m12, _, m22 := f.At(cell)
	sym := mat.NewSymDense(2, []float64{m11, m12, m12, m22})
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		return math.Inf(1)
	}
	vals := eig.Values(nil) // ascending
	if vals[0] <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(vals[1] / vals[0])
}
