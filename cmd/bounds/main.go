package main

import (
	"errors"
	"os"

	"github.com/woozymasta/touristmeta/internal/config"
	"github.com/woozymasta/touristmeta/internal/dataset"
	"github.com/woozymasta/touristmeta/internal/geo"
	"github.com/woozymasta/touristmeta/internal/logger"
	"github.com/woozymasta/touristmeta/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile    string `short:"c" long:"config"         env:"CONFIG_FILE" description:"Path to configuration file (defaults are used if empty)"`
	Input         string `short:"i" long:"in"             env:"DATA_FILE"   description:"Dataset file to augment" default:"data.json"`
	Output        string `short:"o" long:"out"            description:"Output file path. The input is rewritten if empty"`
	Placement     string `short:"p" long:"placement"      description:"Where center and bounds are stored" choice:"meta" choice:"root"`
	Order         string `long:"order"                    description:"Bounds vertex order" choice:"hull" choice:"index"`
	Precision     int    `long:"precision"                description:"Decimal places of written coordinates (configuration value if negative)" default:"-1"`
	Minify        bool   `short:"m" long:"minify"         description:"Write minified JSON"`
	GeoJSON       string `short:"g" long:"geojson"        description:"Also write bounds and center as GeoJSON to this path"`
	GeoJSONPlaces bool   `long:"geojson-places"           description:"Include every place in the GeoJSON output"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
	}

	// command line overrides configuration
	if opts.Placement != "" {
		cfg.Bounds.Placement = dataset.Placement(opts.Placement)
	}
	if opts.Order != "" {
		cfg.Bounds.Order = geo.Order(opts.Order)
	}
	if opts.Precision >= 0 {
		cfg.Bounds.Precision = &opts.Precision
	}
	if opts.Minify {
		cfg.Bounds.Style = dataset.StyleMinify
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	_, err := processor.AugmentFile(opts.Input, opts.Output, processor.AugmentOptions{
		Placement:     cfg.Bounds.Placement,
		Style:         cfg.Bounds.Style,
		GeoJSON:       opts.GeoJSON,
		GeoJSONPlaces: opts.GeoJSONPlaces,
		Geo:           cfg.Bounds.AugmentOptions(),
	})
	switch {
	case errors.Is(err, geo.ErrDegenerateInput):
		log.Fatal().Err(err).Str("file", opts.Input).Msg("Cannot compute bounds")
	case errors.Is(err, geo.ErrMalformedDataset):
		log.Fatal().Err(err).Str("file", opts.Input).Msg("Invalid dataset")
	case err != nil:
		log.Fatal().Err(err).Str("file", opts.Input).Msg("Failed to augment dataset")
	}
}
