// Package logging wires up the process-wide structured logger. One
// zerolog.Logger is constructed at main and threaded through from there;
// nothing in this package keeps process-global mutable state beyond the
// console-writer construction itself.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New builds a leveled zerolog.Logger writing to w (os.Stderr at the call
// site in main). When w is a terminal, output is console-rendered and
// colourised; otherwise it falls back to zerolog's native JSON stream,
// which stays machine-parseable when output is redirected to a file or a
// pipe (e.g. underneath the report tee).
func New(level string, w *os.File) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var sink io.Writer = w
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		sink = zerolog.ConsoleWriter{Out: colorable.NewColorable(w), TimeFormat: "15:04:05"}
	}

	return zerolog.New(sink).Level(lvl).With().Timestamp().Logger()
}
