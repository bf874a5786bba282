package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/vidmirror/cmd/vidmirror/opts"
	"github.com/walteh/vidmirror/pkg/config"
	"github.com/walteh/vidmirror/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile     string
	source         string
	destination    string
	scaleFlag      string
	overrideTokens []string
	excludeFlags   []string
	scratchDir     string
	workers        int
	dryRun         bool
	debug          bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "config file path (.vidmirror, .yaml, .hcl, .json)")
	pf.StringVarP(&source, "source", "s", "", "source tree root")
	pf.StringVarP(&destination, "destination", "d", "", "destination tree root")
	pf.StringVar(&scaleFlag, "scale", "", "default max output height in pixels (omit to re-encode without scaling)")
	pf.StringArrayVar(&overrideTokens, "override", nil, "per-directory height override as DIR:HEIGHT (repeatable)")
	pf.StringArrayVar(&excludeFlags, "exclude", nil, "glob pattern of relative paths to skip (repeatable)")
	pf.StringVar(&scratchDir, "scratch-dir", "", "staging directory for temp files (default: system temp)")
	pf.IntVar(&workers, "workers", 0, "concurrent transforms (default 1, fully sequential)")
	pf.BoolVar(&dryRun, "dry-run", false, "walk and report without invoking the encoder")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
}

// newRootOpts loads the config file (if any), overlays CLI flags on top,
// validates the result, and assembles the shared dependencies.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg := &config.Config{}
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if source != "" {
		cfg.Source = source
	}
	if destination != "" {
		cfg.Destination = destination
	}
	if scaleFlag != "" {
		height, err := config.ParseHeight(scaleFlag)
		if err != nil {
			return nil, err
		}
		cfg.DefaultHeight = height
	}
	for _, token := range overrideTokens {
		override, err := config.ParseOverrideToken(token)
		if err != nil {
			return nil, err
		}
		cfg.Overrides = append(cfg.Overrides, override)
	}
	cfg.Excludes = append(cfg.Excludes, excludeFlags...)
	if scratchDir != "" {
		cfg.ScratchDir = scratchDir
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if dryRun {
		cfg.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &opts.RootOpts{
		Config:     cfg,
		Reporter:   status.NewReporter(os.Stdout),
		UserLogger: status.NewUserLogger(ctx),
	}, nil
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
