package main

import (
	"os"

	"github.com/woozymasta/touristmeta/internal/config"
	"github.com/woozymasta/touristmeta/internal/logger"
	"github.com/woozymasta/touristmeta/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string  `short:"c" long:"config"   env:"CONFIG_FILE" description:"Path to configuration file (defaults are used if empty)"`
	Input      string  `short:"i" long:"in"       description:"Directory with original images"`
	Output     string  `short:"o" long:"out"      description:"Directory for optimized images"`
	Quality    float32 `short:"q" long:"quality"  description:"WebP quality, 0-100 (configuration value if zero)"`
	Scale      float64 `short:"s" long:"scale"    description:"Photo scale factor (configuration value if zero)"`
	NoIcon     bool    `long:"no-icon"            description:"Do not optimize the place icon"`
	Force      bool    `short:"f" long:"force"    description:"Force overwrite of existing files"`

	Args struct {
		Place string `positional-arg-name:"PLACE" description:"Place id, names the ic_<PLACE> icon"`
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
		cfg.Optimize.SourceDir = opts.Input
	}
	if opts.Output != "" {
		cfg.Optimize.OutputDir = opts.Output
	}
	if opts.Quality != 0 {
		cfg.Optimize.Quality = opts.Quality
	}
	if opts.Scale != 0 {
		cfg.Optimize.Scale = opts.Scale
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	if opts.Args.Place == "" && !opts.NoIcon {
		log.Fatal().Msg("PLACE is required unless --no-icon is set")
	}

	optOpts := processor.OptimizeOptionsFor(cfg.Optimize, opts.Args.Place)
	optOpts.NoIcon = opts.NoIcon
	optOpts.Force = opts.Force

	written, err := processor.OptimizeImages(optOpts)
	if err != nil {
		log.Fatal().Err(err).Str("place", opts.Args.Place).Msg("Failed to optimize images")
	}

	log.Info().
		Str("place", opts.Args.Place).
		Int("written", written).
		Str("output", optOpts.OutputDir).
		Msg("Images optimized")
}
