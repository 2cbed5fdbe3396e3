package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultPrecision is the number of decimal places kept in output coordinates.
const DefaultPrecision = 5

// Round rounds v half away from zero to the given number of decimal places.
// Negative zero is normalized so it never reaches the JSON output as "-0".
func Round(v float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	r := math.Round(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}

// collinearEps is the relative tolerance under which three points are
// treated as lying on one line.
const collinearEps = 1e-12

// turn reports the orientation of o -> a -> b: 1 for a counter-clockwise
// turn, -1 for a clockwise one and 0 when the points are collinear within
// collinearEps. The cross product is taken on vectors relative to o, so the
// magnitude of absolute coordinates does not affect the result.
func turn(o, a, b r2.Vec) int {
	oa, ob := r2.Sub(a, o), r2.Sub(b, o)
	cross := r2.Cross(oa, ob)
	if math.Abs(cross) <= collinearEps*r2.Norm(oa)*r2.Norm(ob) {
		return 0
	}
	if cross > 0 {
		return 1
	}
	return -1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
