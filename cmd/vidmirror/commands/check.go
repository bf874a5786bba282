package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/vidmirror/cmd/vidmirror/opts"
	"github.com/walteh/vidmirror/pkg/encode"
	"github.com/walteh/vidmirror/pkg/status"
)

// NewCheckCmd creates the check command
func NewCheckCmd(build opts.Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the external encoder is available",
		Long: `Check looks up the configured encoder binary on PATH and prints its
version banner. It does not touch the source or destination trees.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Use the configured encoder when a full config is
			// available; otherwise fall back to the defaults so check
			// works without --source/--destination.
			encOpts := encode.Options{}
			if o, err := build(ctx); err == nil {
				encOpts = o.Config.Encoder
			}

			userLogger := status.NewUserLogger(ctx)
			version, err := encode.NewFFmpeg(encOpts).Check(ctx)
			if err != nil {
				userLogger.LogValidation(false, "Encoder not usable", err)
				return err
			}
			userLogger.LogValidation(true, version, nil)
			return nil
		},
	}
	return cmd
}
