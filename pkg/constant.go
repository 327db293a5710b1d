package pkg

const (
	// INF_WEIGHT is the arrival-time sentinel. Cells still at INF_WEIGHT after a
	// solve were never reached by the propagating front from the seed set.
	INF_WEIGHT float64 = 1e100
)

const (
	DEBUG = false
)
