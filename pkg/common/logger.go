package common

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger logs JSON lines to the file specified by `path`. If the path is empty or the file is unavailable,
// writes human-readable output to the console.
func NewLogger(level, path string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		parsedLevel = zerolog.InfoLevel
	}
	var out io.Writer
	if path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			out = file
		}
	}
	if out == nil {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stdout
			w.TimeFormat = time.RFC3339
		})
	}
	return zerolog.New(out).Level(parsedLevel).With().Timestamp().Logger()
}
