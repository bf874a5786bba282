// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/vidmirror/cmd/vidmirror/commands"
	"github.com/walteh/vidmirror/pkg/status"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := log.Logger.WithContext(context.Background())

	// Create user logger
	userLogger := status.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "vidmirror",
		Short: "Mirror a video library into a transcoded copy",
		Long: `vidmirror walks a source directory tree and re-encodes every video file
into an identically-structured destination tree, skipping files that are
already present. Per-subtree overrides bound the output height; each
destination file appears atomically, so interrupted runs resume cleanly.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Re-apply logging now that the --debug flag is parsed.
			setupLogging()
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewMirrorCmd(newRootOpts),
		commands.NewStatusCmd(newRootOpts),
		commands.NewCheckCmd(newRootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
