package geo

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// ConvexHull returns the indices of the hull vertices of coords in
// counter-clockwise order, starting at the vertex with the lowest X
// (then lowest Y). Points lying on a hull edge are not vertices.
// When several coords share a position only the lowest index is reported.
//
// The result has fewer than 3 elements when the input is degenerate
// (empty, all points identical or all collinear).
func ConvexHull(coords []r2.Vec) []int {
	order := make([]int, len(coords))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := coords[order[i]], coords[order[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	// Drop coincident positions, keeping the first (lowest) index.
	unique := make([]int, 0, len(order))
	for _, idx := range order {
		if n := len(unique); n > 0 && coords[unique[n-1]] == coords[idx] {
			continue
		}
		unique = append(unique, idx)
	}

	if len(unique) < 3 {
		return unique
	}

	// Andrew's monotone chain.
	hull := make([]int, 0, 2*len(unique))
	for _, idx := range unique {
		hull = pushHull(hull, 0, coords, idx)
	}

	lowerLen := len(hull)
	for i := len(unique) - 2; i >= 0; i-- {
		hull = pushHull(hull, lowerLen-1, coords, unique[i])
	}

	// The last element is the starting vertex again.
	return hull[:len(hull)-1]
}

// pushHull appends idx after popping every vertex that would make a
// clockwise or straight turn. Vertices at positions <= floor are never popped.
func pushHull(hull []int, floor int, coords []r2.Vec, idx int) []int {
	for len(hull)-floor >= 2 {
		o, a := coords[hull[len(hull)-2]], coords[hull[len(hull)-1]]
		if turn(o, a, coords[idx]) > 0 {
			break
		}
		hull = hull[:len(hull)-1]
	}
	return append(hull, idx)
}
