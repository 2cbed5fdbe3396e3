// Package processor runs the dataset postprocessing workflows:
// bounds augmentation, vertex reports and QR code generation.
package processor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woozymasta/touristmeta/internal/dataset"
	"github.com/woozymasta/touristmeta/internal/geo"

	"github.com/rs/zerolog/log"
)

// AugmentOptions controls AugmentFile.
type AugmentOptions struct {
	Placement dataset.Placement
	Style     dataset.Style

	// GeoJSON is an optional path for a FeatureCollection with the bounds,
	// the center and, if GeoJSONPlaces is set, every place.
	GeoJSON       string
	GeoJSONPlaces bool

	Geo geo.Options
}

// AugmentFile computes center and bounds for the datafile at in and writes the
// augmented document to out (in place when out is empty).
// Nothing is written when the dataset is malformed or degenerate.
func AugmentFile(in, out string, opts AugmentOptions) (*geo.Result, error) {
	if out == "" {
		out = in
	}

	ds, err := dataset.Load(in)
	if err != nil {
		return nil, err
	}

	points, err := ds.Points()
	if err != nil {
		return nil, err
	}

	res, err := geo.Augment(points, opts.Geo)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("file", in).
		Int("places", len(points)).
		Int("vertices", len(res.Vertices())).
		Float64("center_lng", res.Center.Lng).
		Float64("center_lat", res.Center.Lat).
		Msg("Bounds computed")

	for i, v := range res.Vertices() {
		log.Debug().
			Int("vertex", i).
			Str("id", v.ID).
			Float64("lat", v.Lat).
			Float64("lng", v.Lng).
			Msg("Bounds vertex")
	}

	if err := ds.Apply(res, opts.Placement); err != nil {
		return nil, err
	}

	data, err := ds.Encode(opts.Style)
	if err != nil {
		return nil, err
	}

	// The side output goes first so a failure leaves the dataset untouched.
	if opts.GeoJSON != "" {
		var places []geo.NamedPoint
		if opts.GeoJSONPlaces {
			places = points
		}

		fc, err := json.Marshal(geo.FeatureCollection(res, places))
		if err != nil {
			return nil, err
		}

		if err := writeFile(opts.GeoJSON, fc); err != nil {
			return nil, err
		}

		log.Info().Str("file", opts.GeoJSON).Msg("GeoJSON saved")
	}

	if err := writeFile(out, data); err != nil {
		return nil, err
	}

	log.Info().
		Str("file", out).
		Str("placement", string(opts.Placement)).
		Msg("Dataset saved")

	return res, nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
