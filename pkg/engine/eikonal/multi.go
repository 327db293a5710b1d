package eikonal

import (
	"runtime"

	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	met "github.com/lintang-b-s/eikonalx/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SolveMany computes one arrival-time field per seed set. The solver owns
// mutable per-call state and provides no internal locking, so each seed set
// runs on its own instance; the mesh and metric are shared read-only. Results
// are ordered like seedSets. The first failing solve cancels nothing (solves
// have no blocking points) but its error is returned and the results dropped.
func SolveMany(mesh *da.Mesh, metric *met.Field, seedSets [][]da.Index, logger *zap.Logger) ([][]float64, error) {
	out := make([][]float64, len(seedSets))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, seeds := range seedSets {
		i, seeds := i, seeds
		g.Go(func() error {
			solver, err := NewAnisotropicEikonal2d(mesh, logger)
			if err != nil {
				return err
			}
			solution, err := solver.Solve(metric, seeds)
			if err != nil {
				return err
			}
			out[i] = solution
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
