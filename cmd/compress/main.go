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

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file (defaults are used if empty)"`
	Input      string `short:"i" long:"in"     description:"Generated region directory, {region} is substituted"`
	Output     string `short:"o" long:"out"    description:"Archive path, {region} is substituted"`

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
		cfg.Compress.SourceDir = opts.Input
	}
	if opts.Output != "" {
		cfg.Compress.Output = opts.Output
	}

	region := opts.Args.Region
	src := config.ForRegion(cfg.Compress.SourceDir, region)
	archive := config.ForRegion(cfg.Compress.Output, region)

	if _, err := processor.CompressDir(src, archive); err != nil {
		log.Fatal().Err(err).Str("region", region).Msg("Failed to compress region")
	}
}
