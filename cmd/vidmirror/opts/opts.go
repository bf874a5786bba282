package opts

import (
	"context"

	"github.com/walteh/vidmirror/pkg/config"
	"github.com/walteh/vidmirror/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Reporter   *status.Reporter
	UserLogger *status.UserLogger
}

// Builder assembles RootOpts once flags have been parsed.
type Builder func(ctx context.Context) (*RootOpts, error)
