// Package eikonal computes first-arrival-time ("time of flight") fields on 2d
// unstructured meshes under anisotropic metrics, using the Ordered Upwind
// Method of J.A. Sethian and A. Vladimirsky, "Ordered Upwind Methods for
// Static Hamilton-Jacobi Equations". Notation in comments follows that paper:
// U is the solution and q is the boundary condition. One difference is that we
// talk about grid cells instead of mesh points.
package eikonal

import (
	"time"

	"github.com/lintang-b-s/eikonalx/pkg"
	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	met "github.com/lintang-b-s/eikonalx/pkg/metrics"
	"github.com/lintang-b-s/eikonalx/pkg/spatialindex"
	"github.com/lintang-b-s/eikonalx/pkg/util"
	"go.uber.org/zap"
)

// AnisotropicEikonal2d is the front-propagation solver. Construction binds a
// mesh; every Solve call takes its own metric field and seed set and owns its
// mutable state exclusively, so a single instance may be reused across calls
// but must not run concurrent solves (use SolveMany for that).
type AnisotropicEikonal2d struct {
	mesh      *da.Mesh
	cellIndex *spatialindex.CellIndex
	logger    *zap.Logger
	reach     []float64 // per-cell local mesh scale h

	// per-solve session state, reset at the start of every Solve
	metric          *met.Field
	solution        []float64
	isAccepted      []bool
	isConsidered    []bool
	acceptedFront   map[da.Index]struct{}
	considered      *da.MinHeap[da.EikonalQueryKey]
	consideredNodes []*da.PriorityQueueNode[da.EikonalQueryKey]
	ratioCache      []float64
}

// NewAnisotropicEikonal2d binds the solver to a mesh. The mesh must be 2d.
func NewAnisotropicEikonal2d(mesh *da.Mesh, logger *zap.Logger) (*AnisotropicEikonal2d, error) {
	if mesh.Dimensions() != 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"mesh for AnisotropicEikonal2d must be 2d, got %dd", mesh.Dimensions())
	}
	cellIndex := spatialindex.NewCellIndex()
	cellIndex.Build(mesh, logger)
	reach := make([]float64, mesh.NumberOfCells())
	for c := range reach {
		reach[c] = mesh.MaxNeighborDistance(da.Index(c))
	}
	return &AnisotropicEikonal2d{
		mesh:      mesh,
		cellIndex: cellIndex,
		logger:    logger,
		reach:     reach,
	}, nil
}

// Solve computes the arrival-time field for the given metric tensors and seed
// cells. The returned slice has one value per mesh cell; cells unreachable
// from the seeds hold pkg.INF_WEIGHT, which is a normal outcome rather than
// an error.
//
// Algorithm summary:
//  1. Put all cells in Far. U_i = inf.
//  2. Move the startCells to Accepted. U_i = q(x_i).
//  3. Move cells adjacent to startCells to Considered, evaluate
//     U_i = min_{(x_j,x_k) in NF(x_i)} G_{j,k}.
//  4. Find the Considered cell with the smallest value: r.
//  5. Move cell r to Accepted. Update AcceptedFront.
//  6. Move cells adjacent to r from Far to Considered.
//  7. Recompute the value for all Considered cells within distance
//     h * F_2/F_1 from x_r. Use min of previous and new.
//  8. If Considered is not empty, go to step 4.
func (ae *AnisotropicEikonal2d) Solve(metric *met.Field, startCells []da.Index) ([]float64, error) {
	started := time.Now()
	numCells := ae.mesh.NumberOfCells()
	if metric.NumberOfCells() != numCells {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"metric field covers %d cells, mesh has %d", metric.NumberOfCells(), numCells)
	}
	for _, s := range startCells {
		if int(s) >= numCells {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"start cell %d outside [0, %d)", s, numCells)
		}
	}

	// 1. Put all cells in Far. U_i = inf.
	ae.reset(metric)

	// 2. Move the startCells to Accepted. U_i = q(x_i).
	for _, s := range startCells {
		ae.isAccepted[s] = true
		ae.solution[s] = 0.0
		ae.acceptedFront[s] = struct{}{}
	}

	// 3. Move cells adjacent to startCells to Considered.
	for _, s := range startCells {
		for _, nb := range ae.mesh.Neighbors(s) {
			if !ae.isAccepted[nb] && !ae.isConsidered[nb] {
				value, err := ae.computeValue(nb)
				if err != nil {
					return nil, err
				}
				ae.pushConsidered(value, nb)
			}
		}
	}

	accepted := len(startCells)
	lastAccepted := 0.0
	for !ae.considered.IsEmpty() {
		// 4. Find the Considered cell with the smallest value: r.
		// 5. Move cell r to Accepted. Update AcceptedFront.
		value, rcell, err := ae.popConsidered()
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvariantViolation, "pop from considered queue")
		}
		// Best-first monotonicity: a finalized value is never revisited, so
		// accepting a cell below an earlier acceptance means the field is
		// unsound and must not be returned.
		if da.Lt(value, lastAccepted) {
			return nil, util.WrapErrorf(nil, util.ErrInvariantViolation,
				"acceptance value decreased: %v at cell %d after %v", value, rcell, lastAccepted)
		}
		lastAccepted = value
		ae.isAccepted[rcell] = true
		ae.solution[rcell] = value
		accepted++
		ae.updateFront(rcell)

		// 6. Move cells adjacent to r from Far to Considered.
		for _, nb := range ae.mesh.Neighbors(rcell) {
			if !ae.isAccepted[nb] && !ae.isConsidered[nb] {
				v, err := ae.computeValue(nb)
				if err != nil {
					return nil, err
				}
				ae.pushConsidered(v, nb)
			}
		}

		// 7. Recompute the value for all Considered cells near r.
		if err := ae.recomputeNear(rcell); err != nil {
			return nil, err
		}
		// 8. If Considered is not empty, go to step 4.
	}

	unreached := 0
	for _, v := range ae.solution {
		if v == pkg.INF_WEIGHT {
			unreached++
		}
	}
	ae.logger.Info("eikonal solve finished",
		zap.Int("cells", numCells),
		zap.Int("seeds", len(startCells)),
		zap.Int("accepted", accepted),
		zap.Int("unreached", unreached),
		zap.Duration("took", time.Since(started)))
	return ae.solution, nil
}

func (ae *AnisotropicEikonal2d) reset(metric *met.Field) {
	numCells := ae.mesh.NumberOfCells()
	ae.metric = metric
	ae.solution = make([]float64, numCells)
	for i := range ae.solution {
		ae.solution[i] = pkg.INF_WEIGHT
	}
	ae.isAccepted = make([]bool, numCells)
	ae.isConsidered = make([]bool, numCells)
	ae.acceptedFront = make(map[da.Index]struct{})
	ae.considered = da.NewFourAryHeap[da.EikonalQueryKey]()
	ae.considered.Preallocate(numCells)
	ae.consideredNodes = make([]*da.PriorityQueueNode[da.EikonalQueryKey], numCells)
	ae.ratioCache = make([]float64, numCells)
}

func (ae *AnisotropicEikonal2d) pushConsidered(value float64, cell da.Index) {
	node := da.NewPriorityQueueNode(value, int64(cell), da.NewEikonalQueryKey(cell))
	ae.consideredNodes[cell] = node
	ae.isConsidered[cell] = true
	ae.considered.Insert(node)
}

func (ae *AnisotropicEikonal2d) popConsidered() (float64, da.Index, error) {
	node, err := ae.considered.ExtractMin()
	if err != nil {
		return 0, 0, err
	}
	key := node.GetItem()
	cell := key.GetCell()
	ae.isConsidered[cell] = false
	ae.consideredNodes[cell] = nil
	return node.GetRank(), cell, nil
}

// updateFront inserts the freshly accepted cell and prunes front members that
// no longer border a non-accepted cell. Only r itself and accepted neighbors
// of r can have left the front, so the prune is limited to those.
func (ae *AnisotropicEikonal2d) updateFront(rcell da.Index) {
	ae.acceptedFront[rcell] = struct{}{}
	ae.pruneFront(rcell)
	for _, nb := range ae.mesh.Neighbors(rcell) {
		if _, onFront := ae.acceptedFront[nb]; onFront {
			ae.pruneFront(nb)
		}
	}
}

func (ae *AnisotropicEikonal2d) pruneFront(cell da.Index) {
	for _, nb := range ae.mesh.Neighbors(cell) {
		if !ae.isAccepted[nb] {
			return
		}
	}
	delete(ae.acceptedFront, cell)
}

// recomputeNear re-evaluates the considered cells within distance
// h_r * F_2/F_1 of the accepted cell's centroid, where h_r is the local mesh
// scale and F_2/F_1 the anisotropy ratio of r's tensor. A tighter candidate
// decreases the queued key; keys never increase.
func (ae *AnisotropicEikonal2d) recomputeNear(rcell da.Index) error {
	radius := ae.reach[rcell] * ae.anisotropyRatio(rcell)
	near := ae.cellIndex.SearchWithinRadius(ae.mesh, ae.mesh.Centroid(rcell), radius)
	for _, ccell := range near {
		if !ae.isConsidered[ccell] {
			continue
		}
		value, err := ae.computeValue(ccell)
		if err != nil {
			return err
		}
		node := ae.consideredNodes[ccell]
		if value < node.GetRank() {
			if err := ae.considered.DecreaseKey(node, value); err != nil {
				return util.WrapErrorf(err, util.ErrInvariantViolation,
					"decrease-key on considered cell %d", ccell)
			}
		}
	}
	return nil
}

func (ae *AnisotropicEikonal2d) anisotropyRatio(cell da.Index) float64 {
	if ae.ratioCache[cell] == 0 {
		ae.ratioCache[cell] = ae.metric.AnisotropyRatio(cell)
	}
	return ae.ratioCache[cell]
}
