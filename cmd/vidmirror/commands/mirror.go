package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/vidmirror/cmd/vidmirror/opts"
	"github.com/walteh/vidmirror/pkg/encode"
	"github.com/walteh/vidmirror/pkg/mirror"
	"github.com/walteh/vidmirror/pkg/scale"
	"gitlab.com/tozd/go/errors"
)

// NewMirrorCmd creates the mirror command, the main verb.
func NewMirrorCmd(build opts.Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Transcode the source tree into the destination tree",
		Long: `Mirror recursively walks the source tree and, for every mp4/mkv file
without a counterpart under the destination root, re-encodes it into
place. It will:
1. Skip files whose destination already exists
2. Resolve the effective max height from the override table
3. Stage, transcode, and atomically rename each output file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "mirror").Logger().WithContext(ctx)

			o, err := build(ctx)
			if err != nil {
				return err
			}
			return runWalk(ctx, o, false)
		},
	}
	return cmd
}

// runWalk drives a full walk; scanOnly forces a read-only pass regardless
// of the configured dry-run setting.
func runWalk(ctx context.Context, o *opts.RootOpts, scanOnly bool) error {
	cfg := o.Config

	// Missing or non-directory source is a configuration error; nothing
	// has been mutated at this point.
	if info, err := os.Stat(cfg.Source); err != nil {
		return errors.Errorf("source path %s does not exist: %w", cfg.Source, err)
	} else if !info.IsDir() {
		return errors.Errorf("source path %s is not a directory", cfg.Source)
	}

	table, err := scale.NewTable(cfg.Overrides)
	if err != nil {
		return errors.Errorf("building override table: %w", err)
	}

	dryRun := cfg.DryRun || scanOnly
	var writer mirror.TransformWriter
	if !dryRun {
		writer = mirror.NewWriter(cfg.ScratchDir, encode.NewFFmpeg(cfg.Encoder))
	}

	walker, err := mirror.NewWalker(mirror.Options{
		Source:        cfg.Source,
		Destination:   cfg.Destination,
		Writer:        writer,
		Table:         table,
		DefaultHeight: cfg.DefaultHeight,
		Extensions:    cfg.Extensions,
		Excludes:      cfg.Excludes,
		Reporter:      o.Reporter,
		Workers:       cfg.Workers,
		DryRun:        dryRun,
	})
	if err != nil {
		return errors.Errorf("creating walker: %w", err)
	}

	o.UserLogger.LogRunStart(cfg.Source, cfg.Destination, cfg.DefaultHeight, table.Len())

	if err := walker.Walk(ctx); err != nil {
		return errors.Errorf("mirroring files: %w", err)
	}

	o.UserLogger.LogSummary(o.Reporter)
	return nil
}
