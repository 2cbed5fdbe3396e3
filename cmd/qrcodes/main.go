package main

import (
	"os"

	"github.com/woozymasta/touristmeta/internal/config"
	"github.com/woozymasta/touristmeta/internal/dataset"
	"github.com/woozymasta/touristmeta/internal/logger"
	"github.com/woozymasta/touristmeta/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (defaults are used if empty)"`
	Input      string `short:"i" long:"in"     description:"Dataset file, {region} is substituted"`
	Output     string `short:"o" long:"out"    description:"Output directory, {region} is substituted"`
	Prefix     string `short:"u" long:"prefix" env:"QR_URL_PREFIX" description:"Place URL prefix, {region} is substituted"`
	Format     string `long:"format"           description:"Image format" choice:"png" choice:"webp"`
	Level      string `long:"level"            description:"Error correction level" choice:"low" choice:"medium" choice:"high" choice:"highest"`
	Size       int    `short:"s" long:"size"   description:"Image size in pixels"`
	Label      bool   `short:"l" long:"label"  description:"Print the place id under the code"`
	Force      bool   `short:"f" long:"force"  description:"Force overwrite of existing files"`

	Args struct {
		Region string `positional-arg-name:"REGION" description:"Region name" required:"true"`
	} `positional-args:"yes"`
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

	if opts.Input != "" {
		cfg.QR.Input = opts.Input
	}
	if opts.Output != "" {
		cfg.QR.OutputDir = opts.Output
	}
	if opts.Prefix != "" {
		cfg.QR.URLPrefix = opts.Prefix
	}
	if opts.Format != "" {
		cfg.QR.Format = opts.Format
	}
	if opts.Level != "" {
		cfg.QR.Level = opts.Level
	}
	if opts.Size > 0 {
		cfg.QR.Size = opts.Size
	}
	if opts.Label {
		cfg.QR.Label = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	region := opts.Args.Region
	qrOpts, err := processor.QROptionsFor(cfg.QR, region)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}
	qrOpts.Force = opts.Force

	input := config.ForRegion(cfg.QR.Input, region)
	ds, err := dataset.Load(input)
	if err != nil {
		log.Fatal().Err(err).Str("region", region).Msg("Failed to read dataset")
	}

	log.Info().
		Str("region", region).
		Str("file", input).
		Int("places", ds.PlaceCount()).
		Str("output", qrOpts.OutputDir).
		Msg("Generating QR codes")

	written, err := processor.GenerateQRCodes(ds, qrOpts)
	if err != nil {
		log.Fatal().Err(err).Str("region", region).Msg("Failed to generate QR codes")
	}

	log.Info().
		Str("region", region).
		Int("written", written).
		Msg("QR codes finished")
}
