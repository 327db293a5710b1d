package main

import (
	"flag"
	"math"

	"github.com/lintang-b-s/eikonalx/pkg"
	da "github.com/lintang-b-s/eikonalx/pkg/datastructure"
	"github.com/lintang-b-s/eikonalx/pkg/engine/eikonal"
	"github.com/lintang-b-s/eikonalx/pkg/logger"
	met "github.com/lintang-b-s/eikonalx/pkg/metrics"
	"github.com/lintang-b-s/eikonalx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	nx        = flag.Int("nx", 50, "grid cells in x direction")
	ny        = flag.Int("ny", 50, "grid cells in y direction")
	dx        = flag.Float64("dx", 1.0, "cell spacing in x direction")
	dy        = flag.Float64("dy", 1.0, "cell spacing in y direction")
	angle     = flag.Float64("angle", 0.0, "fast propagation axis in degrees")
	ratio     = flag.Float64("ratio", 1.0, "anisotropy ratio, slow axis over fast axis")
	startCell = flag.Int("start_cell", 0, "seed cell index (arrival time zero)")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		log.Warn("no config file found, using flag defaults", zap.Error(err))
	} else {
		if viper.IsSet("tof.nx") {
			*nx = viper.GetInt("tof.nx")
		}
		if viper.IsSet("tof.ny") {
			*ny = viper.GetInt("tof.ny")
		}
		if viper.IsSet("tof.anisotropy_ratio") {
			*ratio = viper.GetFloat64("tof.anisotropy_ratio")
		}
		if viper.IsSet("tof.anisotropy_angle") {
			*angle = viper.GetFloat64("tof.anisotropy_angle")
		}
	}

	mesh, err := da.NewCartesianMesh2d(*nx, *ny, *dx, *dy)
	if err != nil {
		panic(err)
	}

	// M = R diag(1, ratio^2) R^T, fast axis rotated by angle.
	th := *angle * math.Pi / 180.0
	ct, st := math.Cos(th), math.Sin(th)
	r2 := (*ratio) * (*ratio)
	m11 := ct*ct + r2*st*st
	m12 := (1.0 - r2) * ct * st
	m22 := st*st + r2*ct*ct
	field := met.NewUniformField(mesh.NumberOfCells(), m11, m12, m22)

	solver, err := eikonal.NewAnisotropicEikonal2d(mesh, log)
	if err != nil {
		panic(err)
	}
	solution, err := solver.Solve(field, []da.Index{da.Index(*startCell)})
	if err != nil {
		panic(err)
	}

	maxTof, sum, reached := 0.0, 0.0, 0
	for _, v := range solution {
		if v == pkg.INF_WEIGHT {
			continue
		}
		reached++
		sum += v
		if v > maxTof {
			maxTof = v
		}
	}
	log.Info("time-of-flight field computed",
		zap.Int("cells", mesh.NumberOfCells()),
		zap.Int("reached", reached),
		zap.Float64("max_tof", maxTof),
		zap.Float64("mean_tof", sum/float64(reached)))
}
