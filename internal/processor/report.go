package processor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/touristmeta/internal/dataset"
	"github.com/woozymasta/touristmeta/internal/geo"

	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	ReportText = "text"
	ReportJSON = "json"
	ReportYAML = "yaml"
)

// Report describes the bounds of a dataset without modifying it.
type Report struct {
	Center   geo.Coordinate `json:"center" yaml:"center"`
	Vertices []Vertex       `json:"vertices" yaml:"vertices"`
	Extent   Extent         `json:"extent" yaml:"extent"`
	Places   int            `json:"places" yaml:"places"`
	Area     float64        `json:"area_sq_deg" yaml:"area_sq_deg"`
}

// Vertex is a single bounds vertex in report order.
type Vertex struct {
	ID    string  `json:"id" yaml:"id"`
	Index int     `json:"index" yaml:"index"`
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
}

// Extent is the bounding box of the bounds polygon.
type Extent struct {
	MinLng float64 `json:"min_lng" yaml:"min_lng"`
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLng float64 `json:"max_lng" yaml:"max_lng"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
}

// BuildReport computes the bounds of ds.
func BuildReport(ds *dataset.Dataset, opts geo.Options) (*Report, error) {
	points, err := ds.Points()
	if err != nil {
		return nil, err
	}

	res, err := geo.Augment(points, opts)
	if err != nil {
		return nil, err
	}

	ext := res.Extent()
	r := &Report{
		Center: res.Center,
		Places: len(points),
		Area:   res.Area(),
		Extent: Extent{
			MinLng: ext.Min.Lon(),
			MinLat: ext.Min.Lat(),
			MaxLng: ext.Max.Lon(),
			MaxLat: ext.Max.Lat(),
		},
	}

	for i, v := range res.Vertices() {
		r.Vertices = append(r.Vertices, Vertex{Index: i, ID: v.ID, Lat: v.Lat, Lng: v.Lng})
	}

	return r, nil
}

// Text renders the report as plain lines:
//
//	center: <lng>, <lat>
//	vertex <i>, <id>, lat: <lat>, lng: <lng>
func (r *Report) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "center: %s, %s\n", formatFloat(r.Center.Lng), formatFloat(r.Center.Lat))
	for _, v := range r.Vertices {
		fmt.Fprintf(&sb, "vertex %d, %s, lat: %s, lng: %s\n", v.Index, v.ID, formatFloat(v.Lat), formatFloat(v.Lng))
	}
	return sb.String()
}

// Marshal renders the report in the given format.
func (r *Report) Marshal(format string) ([]byte, error) {
	switch format {
	case ReportText, "":
		return []byte(r.Text()), nil
	case ReportJSON:
		return json.MarshalIndent(r, "", "  ")
	case ReportYAML:
		return yaml.Marshal(r)
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
