package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about the run, alongside
// the structured zerolog output used for debugging.
type UserLogger struct {
	log zerolog.Logger
}

// 🎯 NewUserLogger creates a new user logger from the context's logger.
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📊 LogRunStart announces the mirror run configuration.
func (u *UserLogger) LogRunStart(source, destination string, defaultHeight, overrides int) {
	scaleNote := "re-encode only (no default height)"
	if defaultHeight > 0 {
		scaleNote = fmt.Sprintf("default max height %dp", defaultHeight)
	}
	msg := fmt.Sprintf("Mirroring %s -> %s (%s, %d overrides)", source, destination, scaleNote, overrides)
	pterm.Info.WithPrefix(pterm.Prefix{Text: "🎬"}).Println(msg)
	u.log.Info().Msg(msg)
}

// 📊 LogSummary prints the end-of-run aggregate.
func (u *UserLogger) LogSummary(r *Reporter) {
	_, _, _, _, failed := r.Counts()
	msg := r.Summary()
	if failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Msg(msg)
	} else {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
		u.log.Info().Msg(msg)
	}
}

// 🔍 LogValidation logs a startup validation result.
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	if err != nil {
		pterm.Error.Println(err)
	}
	u.log.Error().Err(err).Msg(description)
}
