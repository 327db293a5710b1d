package spatialindex

import (
	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// CellIndex is a static spatial index over cell centroids. The eikonal driver
// queries it after every acceptance to find the considered cells inside the
// anisotropy-dependent re-evaluation radius, instead of scanning the whole
// considered queue.
type CellIndex struct {
	tr *rtree.RTreeG[da.Index]
}

func NewCellIndex() *CellIndex {
	var tr rtree.RTreeG[da.Index]
	return &CellIndex{
		tr: &tr,
	}
}

// Build inserts every cell centroid as a degenerate box. Called once per mesh;
// the index is read-only afterwards and safe to share across solves.
func (ci *CellIndex) Build(mesh *da.Mesh, log *zap.Logger) {
	n := mesh.NumberOfCells()
	for cell := da.Index(0); cell < da.Index(n); cell++ {
		c := mesh.Centroid(cell)
		p := [2]float64{c.GetX(), c.GetY()}
		ci.tr.Insert(p, p, cell)
	}
	log.Info("cell centroid r-tree built", zap.Int("cells", n))
}

// SearchWithinRadius returns all cells whose centroid lies within radius of q.
func (ci *CellIndex) SearchWithinRadius(mesh *da.Mesh, q da.Point, radius float64) []da.Index {
	results := make([]da.Index, 0, 16)
	ci.tr.Search(
		[2]float64{q.GetX() - radius, q.GetY() - radius},
		[2]float64{q.GetX() + radius, q.GetY() + radius},
		func(min, max [2]float64, cell da.Index) bool {
			if da.EuclideanDist(q, mesh.Centroid(cell)) <= radius {
				results = append(results, cell)
			}
			return true
		})
	return results
}
