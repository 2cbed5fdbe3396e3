package dataset

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/touristmeta/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadRegion(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(filepath.Join("testdata", "region.json"))
	require.NoError(t, err)
	return ds
}

func augmentRegion(t *testing.T, ds *Dataset, opts geo.Options) *geo.Result {
	t.Helper()
	points, err := ds.Points()
	require.NoError(t, err)
	res, err := geo.Augment(points, opts)
	require.NoError(t, err)
	return res
}

type encoded struct {
	Meta struct {
		RegionID string              `json:"region_id"`
		Center   geo.Coordinate      `json:"center"`
		Bounds   []geo.BoundaryPoint `json:"bounds"`
	} `json:"meta"`
	Center *geo.Coordinate      `json:"center"`
	Bounds []geo.BoundaryPoint `json:"bounds"`
}

func decode(t *testing.T, data []byte) encoded {
	t.Helper()
	var out encoded
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func ids(bounds []geo.BoundaryPoint) []string {
	out := make([]string, 0, len(bounds))
	for _, b := range bounds {
		out = append(out, b.ID)
	}
	return out
}

// assertOrder checks that every needle occurs in text, in the given order.
func assertOrder(t *testing.T, text string, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		idx := strings.Index(text, n)
		require.GreaterOrEqual(t, idx, 0, "%s not found", n)
		assert.Greater(t, idx, last, "%s out of order", n)
		last = idx
	}
}

func TestPoints(t *testing.T) {
	ds := loadRegion(t)

	points, err := ds.Points()
	require.NoError(t, err)

	assert.Equal(t, 5, ds.PlaceCount())
	assert.Equal(t, geo.NamedPoint{ID: "lake", Lng: 22.22, Lat: 50.44}, points[0])
	assert.Equal(t, []string{"lake", "forest", "church", "museum", "manor"}, func() []string {
		out := make([]string, 0, len(points))
		for _, p := range points {
			out = append(out, p.ID)
		}
		return out
	}())
}

func TestApplyMeta(t *testing.T) {
	ds := loadRegion(t)
	res := augmentRegion(t, ds, geo.DefaultOptions())
	require.NoError(t, ds.Apply(res, PlacementMeta))

	data, err := ds.Encode(StyleIndent)
	require.NoError(t, err)

	out := decode(t, data)
	assert.Equal(t, "rudnik", out.Meta.RegionID)
	assert.Equal(t, geo.Coordinate{Lng: 22.25, Lat: 50.435}, out.Meta.Center)
	assert.Equal(t, []string{"lake", "church", "manor", "forest", "lake"}, ids(out.Meta.Bounds))
	assert.Nil(t, out.Center)
	assert.Nil(t, out.Bounds)

	text := string(data)
	// existing center is replaced in place, bounds appended to meta
	assertOrder(t, text, `"region_id"`, `"region_name"`, `"center"`, `"place_count"`, `"bounds"`, `"sections"`, `"tracks"`, `"stories"`)
	// untouched content is copied verbatim
	assert.Contains(t, text, "Kościół św. Rocha")
	assert.Contains(t, text, `"lat": 50.40`)
	assert.Contains(t, text, `"website_url": null`)
	assert.True(t, strings.HasPrefix(text, "{\n    \"meta\": {\n        \"region_id\""))
	assert.True(t, strings.HasSuffix(text, "}\n"))
}

func TestApplyRoot(t *testing.T) {
	ds := loadRegion(t)
	res := augmentRegion(t, ds, geo.Options{Order: geo.OrderIndex})
	require.NoError(t, ds.Apply(res, PlacementRoot))

	data, err := ds.Encode(StyleIndent)
	require.NoError(t, err)

	out := decode(t, data)
	require.NotNil(t, out.Center)
	assert.Equal(t, geo.Coordinate{Lng: 22.25, Lat: 50.435}, *out.Center)
	assert.Equal(t, []string{"lake", "forest", "church", "manor", "lake"}, ids(out.Bounds))
	assert.Equal(t, geo.Coordinate{}, out.Meta.Center)
	assert.Nil(t, out.Meta.Bounds)

	assertOrder(t, string(data), `"stories"`, `"center": {`+"\n"+`        "lng": 22.25`)
}

func TestApplyCreatesMeta(t *testing.T) {
	ds, err := Parse([]byte(`{"sections": [{"places": [
		{"id": "a", "lng": 0, "lat": 0},
		{"id": "b", "lng": 10, "lat": 0},
		{"id": "c", "lng": 10, "lat": 10},
		{"id": "d", "lng": 0, "lat": 10},
		{"id": "e", "lng": 5, "lat": 5}
	]}]}`))
	require.NoError(t, err)

	res := augmentRegion(t, ds, geo.DefaultOptions())
	require.NoError(t, ds.Apply(res, PlacementMeta))

	data, err := ds.Encode(StyleIndent)
	require.NoError(t, err)

	out := decode(t, data)
	assert.Equal(t, geo.Coordinate{Lng: 5, Lat: 5}, out.Meta.Center)
	assert.Equal(t, []string{"a", "b", "c", "d", "a"}, ids(out.Meta.Bounds))
}

func TestApplyIsRepeatable(t *testing.T) {
	ds := loadRegion(t)
	res := augmentRegion(t, ds, geo.DefaultOptions())

	require.NoError(t, ds.Apply(res, PlacementMeta))
	first, err := ds.Encode(StyleIndent)
	require.NoError(t, err)

	again, err := Parse(first)
	require.NoError(t, err)
	require.NoError(t, again.Apply(augmentRegion(t, again, geo.DefaultOptions()), PlacementMeta))
	second, err := again.Encode(StyleIndent)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestApplyUnknownPlacement(t *testing.T) {
	ds := loadRegion(t)
	res := augmentRegion(t, ds, geo.DefaultOptions())
	assert.Error(t, ds.Apply(res, "sidecar"))
}

func TestEncodeMinify(t *testing.T) {
	ds := loadRegion(t)
	require.NoError(t, ds.Apply(augmentRegion(t, ds, geo.DefaultOptions()), PlacementRoot))

	data, err := ds.Encode(StyleMinify)
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "\n")
	assert.Contains(t, text, `"lat":50.40`)
	assert.Contains(t, text, `"name":"Dwór"`)
	assert.True(t, json.Valid(data))

	_, err = ds.Encode("pretty")
	assert.Error(t, err)
}

func TestParseHuJSON(t *testing.T) {
	ds, err := Parse([]byte(`{
		// places reviewed 2024
		"sections": [{"places": [
			{"id": "a", "lng": 1, "lat": 2,},
		]}],
	}`))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.PlaceCount())

	data, err := ds.Encode(StyleIndent)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "//")
	assert.True(t, json.Valid(data))
}

func TestParseMalformed(t *testing.T) {
	tests := map[string]string{
		"syntax":           `{"sections": [`,
		"not an object":    `[]`,
		"missing sections": `{"meta": {}}`,
		"missing places":   `{"sections": [{"id": "x"}]}`,
		"missing lng":      `{"sections": [{"places": [{"id": "a", "lat": 1}]}]}`,
		"string lat":       `{"sections": [{"places": [{"id": "a", "lng": 1, "lat": "50.1"}]}]}`,
		"latitude range":   `{"sections": [{"places": [{"id": "a", "lng": 1, "lat": 91}]}]}`,
		"numeric id":       `{"sections": [{"places": [{"id": 7, "lng": 1, "lat": 1}]}]}`,
		"empty id":         `{"sections": [{"places": [{"id": "", "lng": 1, "lat": 1}]}]}`,
		"id with slash":    `{"sections": [{"places": [{"id": "a/b", "lng": 1, "lat": 1}]}]}`,
		"id with space":    `{"sections": [{"places": [{"id": "a b", "lng": 1, "lat": 1}]}]}`,
		"meta not object":  `{"meta": [], "sections": []}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))

			var malformed *geo.MalformedDatasetError
			require.ErrorAs(t, err, &malformed)
			assert.NotEmpty(t, malformed.Reasons)
			assert.ErrorIs(t, err, geo.ErrMalformedDataset)
		})
	}
}

func TestParseReportsField(t *testing.T) {
	_, err := Parse([]byte(`{"sections": [{"places": [{"id": "a", "lng": 1, "lat": 1}, {"id": "b", "lat": 1}]}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sections.0.places.1")
	assert.Contains(t, err.Error(), "lng")
}

func TestPointsDuplicateID(t *testing.T) {
	ds, err := Parse([]byte(`{"sections": [
		{"places": [{"id": "a", "lng": 1, "lat": 1}]},
		{"places": [{"id": "b", "lng": 2, "lat": 1}, {"id": "a", "lng": 3, "lat": 3}]}
	]}`))
	require.NoError(t, err)

	_, err = ds.Points()
	var malformed *geo.MalformedDatasetError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "sections[1].places[1]", malformed.Location)
	assert.Contains(t, err.Error(), "sections[0].places[0]")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "data.json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, geo.ErrMalformedDataset)
}
