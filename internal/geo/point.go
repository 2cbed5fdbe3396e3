// Package geo computes boundary metadata (convex hull polygon and centroid)
// over the geolocated places of a dataset.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// NamedPoint is a place identity with its WGS84 position.
type NamedPoint struct {
	ID  string  `json:"id" yaml:"id"`
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Coordinate is a bare position, used for the dataset center.
type Coordinate struct {
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// BoundaryPoint is a single vertex of the bounds polygon.
type BoundaryPoint struct {
	ID  string  `json:"id" yaml:"id"`
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Result holds the derived metadata for a point set.
// Bounds is closed: the last element repeats the first one.
type Result struct {
	Center Coordinate      `json:"center" yaml:"center"`
	Bounds []BoundaryPoint `json:"bounds" yaml:"bounds"`
}

// Vertices returns the boundary without the closing duplicate.
func (r *Result) Vertices() []BoundaryPoint {
	if len(r.Bounds) == 0 {
		return nil
	}
	return r.Bounds[:len(r.Bounds)-1]
}

// Ring returns the bounds as a closed orb ring ([lng, lat] order).
func (r *Result) Ring() orb.Ring {
	ring := make(orb.Ring, 0, len(r.Bounds))
	for _, b := range r.Bounds {
		ring = append(ring, orb.Point{b.Lng, b.Lat})
	}
	return ring
}

// Extent returns the bounding box of the bounds polygon.
func (r *Result) Extent() orb.Bound {
	return r.Ring().Bound()
}

// Area returns the planar area of the bounds polygon in squared degrees.
func (r *Result) Area() float64 {
	return math.Abs(planar.Area(r.Ring()))
}
