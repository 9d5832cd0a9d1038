// Package cliutil holds the small pieces of the cmd/clahe driver that
// aren't themselves the image pipeline: logger setup and the JSON
// result envelope.
package cliutil

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogging points the global zerolog logger at stderr, using a
// human-readable console writer when stderr is an interactive terminal
// and structured JSON lines otherwise, so stdout stays free for the
// single JSON result object the driver emits on completion.
func InitLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
