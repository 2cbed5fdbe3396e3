package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds stored in the "kind" property of exported features.
const (
	KindBounds = "bounds"
	KindCenter = "center"
	KindPlace  = "place"
)

// FeatureCollection renders the result as GeoJSON: the bounds polygon,
// the center point and, when points is not empty, every place as a point.
func FeatureCollection(res *Result, points []NamedPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	bounds := geojson.NewFeature(orb.Polygon{res.Ring()})
	bounds.Properties["kind"] = KindBounds
	ids := make([]string, 0, len(res.Bounds))
	for _, b := range res.Vertices() {
		ids = append(ids, b.ID)
	}
	bounds.Properties["vertices"] = ids
	fc.Append(bounds)

	center := geojson.NewFeature(orb.Point{res.Center.Lng, res.Center.Lat})
	center.Properties["kind"] = KindCenter
	fc.Append(center)

	for _, p := range points {
		f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
		f.Properties["kind"] = KindPlace
		f.Properties["id"] = p.ID
		fc.Append(f)
	}

	return fc
}
