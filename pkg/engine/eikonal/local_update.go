package eikonal

import (
	"math"

	"github.com/lintang-b-s/eikonalx/pkg"
	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	"github.com/lintang-b-s/eikonalx/pkg/util"
)

func (ae *AnisotropicEikonal2d) onFront(cell da.Index) bool {
	_, ok := ae.acceptedFront[cell]
	return ok
}

// nearFront collects the accepted-front cells whose centroid lies within
// h_c * F_2/F_1 of cell's centroid: the near-front set NF(x) the two-point
// updates draw from. It always contains every accepted mesh neighbor of cell,
// since h_c covers the neighbor distances and the ratio is at least one.
func (ae *AnisotropicEikonal2d) nearFront(cell da.Index) []da.Index {
	radius := ae.reach[cell] * ae.anisotropyRatio(cell)
	candidates := ae.cellIndex.SearchWithinRadius(ae.mesh, ae.mesh.Centroid(cell), radius)
	near := candidates[:0]
	for _, c := range candidates {
		if ae.onFront(c) {
			near = append(near, c)
		}
	}
	return near
}

// computeValue evaluates U_i = min_{(x_j,x_k) in NF(x_i)} G_{j,k}: the best
// two-point update over the segments of the accepted front near cell, where a
// segment is a pair of mesh-adjacent front cells with at least one end inside
// the near-front disc of radius h * F_2/F_1. Under strong anisotropy the
// characteristic feeding a cell can enter through a front segment several
// cells away; a stencil restricted to cell's own neighbors finalizes such
// cells too high and breaks the best-first acceptance order. When no segment
// qualifies, fall back to single-point updates from the near front. Candidates
// only depend on already-accepted values, so recomputing after further
// acceptances never raises them.
func (ae *AnisotropicEikonal2d) computeValue(cell da.Index) (float64, error) {
	near := ae.nearFront(cell)
	val := pkg.INF_WEIGHT
	for _, n0 := range near {
		for _, n1 := range ae.mesh.Neighbors(n0) {
			if !ae.onFront(n1) {
				continue
			}
			if cand := ae.computeFromTri(cell, n0, n1); cand < val {
				val = cand
			}
		}
	}
	if val == pkg.INF_WEIGHT {
		// Failed to find a front segment near this cell,
		// go for a single-point update.
		for _, n := range near {
			if cand := ae.computeFromLine(cell, n); cand < val {
				val = cand
			}
		}
	}
	if val == pkg.INF_WEIGHT {
		// computeValue is only called for cells adjacent to a just-accepted
		// cell, and the near front always covers the accepted neighbors.
		// Reaching this point means the topology or front bookkeeping is
		// broken and the field would be unsound.
		return 0, util.WrapErrorf(nil, util.ErrInvariantViolation,
			"considered cell %d has no accepted front neighbour to update from", cell)
	}
	return val, nil
}

// computeFromLine propagates a single accepted neighbor's value along the
// straight segment between the centroids, weighted by cell's tensor.
func (ae *AnisotropicEikonal2d) computeFromLine(cell, from da.Index) float64 {
	return ae.solution[from] +
		ae.metric.Distance(cell, ae.mesh.Centroid(from), ae.mesh.Centroid(cell))
}

// computeFromTri is the two-point update G_{j,k}: the smallest arrival time at
// cell consistent with a planar wavefront crossing the segment between the
// centroids of n0 and n1 carrying their accepted values. With
// p(t) = (1-t)*x0 + t*x1 and u(t) = (1-t)*U0 + t*U1, minimize
//
//	f(t) = u(t) + |x - p(t)|_M  over t in [0,1].
//
// The endpoints degenerate to line updates through n0 and n1; interior
// stationary points come from the closed-form quadratic below.
func (ae *AnisotropicEikonal2d) computeFromTri(cell, n0, n1 da.Index) float64 {
	u0 := ae.solution[n0]
	u1 := ae.solution[n1]
	x := ae.mesh.Centroid(cell)
	p0 := ae.mesh.Centroid(n0)
	p1 := ae.mesh.Centroid(n1)

	// |x - p(t)|^2_M = q0 - 2*q1*t + q2*t^2 with e0 = x - p0, e1 = p1 - p0.
	e0x, e0y := x.GetX()-p0.GetX(), x.GetY()-p0.GetY()
	e1x, e1y := p1.GetX()-p0.GetX(), p1.GetY()-p0.GetY()
	q0 := ae.metric.Inner(cell, e0x, e0y, e0x, e0y)
	q1 := ae.metric.Inner(cell, e0x, e0y, e1x, e1y)
	q2 := ae.metric.Inner(cell, e1x, e1y, e1x, e1y)
	du := u1 - u0

	f := func(t float64) float64 {
		quad := q0 - 2*q1*t + q2*t*t
		if quad < 0 {
			quad = 0
		}
		return u0 + t*du + math.Sqrt(quad)
	}

	best := math.Min(f(0), f(1))
	if q2 <= 0 {
		// coincident segment endpoints
		return best
	}

	// f'(t) = 0  =>  q2(q2-du^2)*t^2 - 2*q1(q2-du^2)*t + (q1^2 - du^2*q0) = 0.
	// Squaring may introduce spurious roots; evaluating f at every clamped
	// candidate and keeping the minimum makes them harmless. The degeneracy
	// test is relative to q2 so the update is invariant under mesh rescaling.
	k := q2 - du*du
	if math.Abs(k) > da.EPS*q2 {
		a := q2 * k
		b := -2 * q1 * k
		c := q1*q1 - du*du*q0
		disc := b*b - 4*a*c
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t > 0 && t < 1 {
					best = math.Min(best, f(t))
				}
			}
		}
	}
	return best
}
