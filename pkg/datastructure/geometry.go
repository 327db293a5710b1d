package datastructure

import (
	"math"
)

const (
	EPS = 1e-6
)

// Point is a planar cell centroid.
type Point struct {
	x, y float64
}

func NewPoint(x, y float64) Point {
	return Point{x, y}
}

func (p Point) GetX() float64 {
	return p.x
}

func (p Point) GetY() float64 {
	return p.y
}

// EuclideanDist distance between two centroids, ignoring any metric.
func EuclideanDist(a, b Point) float64 {
	dx := b.x - a.x
	dy := b.y - a.y
	return math.Sqrt(dx*dx + dy*dy)
}

// less than operator
func Lt(a, b float64) bool {
	return a+EPS < b
}
