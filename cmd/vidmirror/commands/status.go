package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/vidmirror/cmd/vidmirror/opts"
)

// NewStatusCmd creates the status command
func NewStatusCmd(build opts.Builder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which files are done, pending, or skipped",
		Long: `Status walks the source tree without invoking the encoder and reports,
for each file, whether its destination already exists, whether it would
be transcoded on the next mirror run, or why it is skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			o, err := build(ctx)
			if err != nil {
				return err
			}
			return runWalk(ctx, o, true)
		},
	}
	return cmd
}
