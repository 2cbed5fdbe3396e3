package main

import (
	"fmt"
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

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (defaults are used if empty)"`
	Input      string `short:"i" long:"in"     env:"DATA_FILE"   description:"Dataset file" default:"data.json"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	Order      string `long:"order"            description:"Vertex order" choice:"hull" choice:"index"`
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
	if opts.Order != "" {
		cfg.Bounds.Order = geo.Order(opts.Order)
	}

	ds, err := dataset.Load(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read dataset")
	}

	report, err := processor.BuildReport(ds, cfg.Bounds.AugmentOptions())
	if err != nil {
		log.Fatal().Err(err).Str("file", opts.Input).Msg("Cannot compute bounds")
	}

	outputData, err := report.Marshal(opts.Format)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal report")
	}

	if opts.Output == "" {
		fmt.Print(string(outputData))
		return
	}

	if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
		log.Fatal().Err(err).Str("file", opts.Output).Msg("Failed to write report")
	}

	log.Info().
		Str("file", opts.Output).
		Str("format", opts.Format).
		Int("vertices", len(report.Vertices)).
		Msg("Report saved")
}
