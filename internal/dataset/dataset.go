// Package dataset reads region datafiles (data.json), extracts their places
// and writes derived metadata back without disturbing the rest of the document.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/touristmeta/internal/geo"

	"github.com/tailscale/hujson"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

// Placement selects where center and bounds are written.
type Placement string

const (
	// PlacementMeta writes meta.center and meta.bounds.
	PlacementMeta Placement = "meta"
	// PlacementRoot writes top-level center and bounds.
	PlacementRoot Placement = "root"
)

// Style selects the output encoding of the dataset.
type Style string

const (
	// StyleIndent re-indents the document with 4 spaces.
	StyleIndent Style = "indent"
	// StyleMinify strips all insignificant whitespace.
	StyleMinify Style = "minify"
)

// Dataset is a parsed datafile. Unknown fields are kept verbatim.
type Dataset struct {
	value hujson.Value
	doc   document
}

// Internal structures for JSON parsing
type document struct {
	Sections []struct {
		Places []struct {
			ID  string  `json:"id"`
			Lng float64 `json:"lng"`
			Lat float64 `json:"lat"`
		} `json:"places"`
	} `json:"sections"`
}

// Load reads and parses the datafile at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// Parse parses and validates a datafile. Comments and trailing commas
// (HuJSON) are accepted and dropped on output.
func Parse(data []byte) (*Dataset, error) {
	value, err := hujson.Parse(data)
	if err != nil {
		return nil, &geo.MalformedDatasetError{Reasons: []string{err.Error()}}
	}

	std := value.Clone()
	std.Standardize()
	raw := std.Pack()

	if err := validate(raw); err != nil {
		return nil, err
	}

	ds := &Dataset{value: value}
	if err := json.Unmarshal(raw, &ds.doc); err != nil {
		return nil, &geo.MalformedDatasetError{Reasons: []string{err.Error()}}
	}

	return ds, nil
}

// Points returns every place of every section, in document order.
// Duplicate place ids are rejected.
func (ds *Dataset) Points() ([]geo.NamedPoint, error) {
	var points []geo.NamedPoint
	seen := make(map[string]string)

	for si, section := range ds.doc.Sections {
		for pi, place := range section.Places {
			location := fmt.Sprintf("sections[%d].places[%d]", si, pi)
			if first, ok := seen[place.ID]; ok {
				return nil, geo.Malformed(location, "duplicate place id %q (first at %s)", place.ID, first)
			}
			seen[place.ID] = location

			points = append(points, geo.NamedPoint{ID: place.ID, Lng: place.Lng, Lat: place.Lat})
		}
	}

	return points, nil
}

// PlaceCount returns the number of places across all sections.
func (ds *Dataset) PlaceCount() int {
	n := 0
	for _, section := range ds.doc.Sections {
		n += len(section.Places)
	}
	return n
}

type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// Apply stores res as center and bounds at the requested placement,
// overwriting previous values. Key order of existing members is preserved;
// new members are appended.
func (ds *Dataset) Apply(res *geo.Result, placement Placement) error {
	var prefix string
	var ops []patchOp

	switch placement {
	case PlacementMeta:
		prefix = "/meta"
		if ds.value.Find(prefix) == nil {
			ops = append(ops, patchOp{Op: "add", Path: prefix, Value: struct{}{}})
		}
	case PlacementRoot:
	default:
		return fmt.Errorf("unknown placement %q", placement)
	}

	ops = append(ops,
		patchOp{Op: "add", Path: prefix + "/center", Value: res.Center},
		patchOp{Op: "add", Path: prefix + "/bounds", Value: res.Bounds},
	)

	patch, err := json.Marshal(ops)
	if err != nil {
		return err
	}

	// Patch may leave a partial result on failure.
	patched := ds.value.Clone()
	if err := patched.Patch(patch); err != nil {
		return fmt.Errorf("apply %s placement: %w", placement, err)
	}
	ds.value = patched

	return nil
}

// Encode serializes the dataset as standard JSON in the given style.
// Strings are written byte-for-byte, so non-ASCII text is not escaped.
func (ds *Dataset) Encode(style Style) ([]byte, error) {
	v := ds.value.Clone()
	v.Standardize()
	raw := bytes.TrimSpace(v.Pack())

	switch style {
	case StyleIndent, "":
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "    "); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil

	case StyleMinify:
		m := minify.New()
		m.Add("application/json", &mjson.Minifier{KeepNumbers: true})
		return m.Bytes("application/json", raw)

	default:
		return nil, fmt.Errorf("unknown output style %q", style)
	}
}
