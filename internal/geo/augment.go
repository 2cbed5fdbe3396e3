package geo

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Order selects how hull vertices are sequenced in the bounds polygon.
type Order string

const (
	// OrderHull walks the hull counter-clockwise; the polygon is always simple.
	OrderHull Order = "hull"
	// OrderIndex lists hull vertices by ascending input index.
	// The polygon may self-intersect; kept for parity with older datasets.
	OrderIndex Order = "index"
)

// Options controls output shaping. Hull computation itself always runs on
// full-precision coordinates. The zero value is equivalent to DefaultOptions.
type Options struct {
	Order Order
	// Precision is the number of decimal places kept; nil means DefaultPrecision.
	Precision *int
	// RawBounds leaves bounds coordinates unrounded (center is still rounded).
	RawBounds bool
}

// DefaultOptions returns hull ordering with 5 decimal places.
func DefaultOptions() Options {
	return Options{
		Order:     OrderHull,
		Precision: Decimals(DefaultPrecision),
	}
}

// Decimals returns a pointer to n for use as Options.Precision.
func Decimals(n int) *int {
	return &n
}

func (o Options) decimals() int {
	if o.Precision == nil {
		return DefaultPrecision
	}
	return *o.Precision
}

// Augment computes the centroid of all points and the closed convex hull
// polygon around them. The points slice is not modified.
func Augment(points []NamedPoint, opts Options) (*Result, error) {
	if len(points) < 3 {
		return nil, &DegenerateInputError{Points: len(points), Reason: "at least 3 points required"}
	}

	coords := make([]r2.Vec, len(points))
	lngs := make([]float64, len(points))
	lats := make([]float64, len(points))
	for i, p := range points {
		if p.ID == "" {
			return nil, Malformed(fmt.Sprintf("points[%d]", i), "empty id")
		}
		if !isFinite(p.Lng) || !isFinite(p.Lat) {
			return nil, Malformed(fmt.Sprintf("points[%d]", i), "place %q has invalid coordinates (%v, %v)", p.ID, p.Lng, p.Lat)
		}

		coords[i] = r2.Vec{X: p.Lng, Y: p.Lat}
		lngs[i] = p.Lng
		lats[i] = p.Lat
	}

	hull := ConvexHull(coords)
	if len(hull) < 3 {
		return nil, &DegenerateInputError{Points: len(points), Reason: "points are identical or collinear"}
	}

	switch opts.Order {
	case OrderHull, "":
	case OrderIndex:
		sort.Ints(hull)
	default:
		return nil, fmt.Errorf("unknown bounds order %q", opts.Order)
	}

	precision := opts.decimals()
	res := &Result{
		Center: Coordinate{
			Lng: Round(stat.Mean(lngs, nil), precision),
			Lat: Round(stat.Mean(lats, nil), precision),
		},
		Bounds: make([]BoundaryPoint, 0, len(hull)+1),
	}

	for _, idx := range hull {
		p := points[idx]
		b := BoundaryPoint{ID: p.ID, Lng: p.Lng, Lat: p.Lat}
		if !opts.RawBounds {
			b.Lng = Round(b.Lng, precision)
			b.Lat = Round(b.Lat, precision)
		}
		res.Bounds = append(res.Bounds, b)
	}

	// close the polygon
	res.Bounds = append(res.Bounds, res.Bounds[0])

	return res, nil
}
