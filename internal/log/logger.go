package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the console logger. Output goes to the given writer (stderr in
// the CLI) so rendered tables on stdout stay clean.
func New(out io.Writer, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Logger()

	if verbose {
		return logger.Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.WarnLevel)
}
