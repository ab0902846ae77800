package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return NewLoggerTo(os.Stdout, env)
}

// NewLoggerTo is NewLogger writing to out.
func NewLoggerTo(out io.Writer, env string) zerolog.Logger {
	switch strings.ToLower(env) {
	case "dev", "development":
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	case "test":
		return zerolog.New(out).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	}
	return zerolog.New(out).With().Timestamp().Str("service", "hosfind-admin").Logger()
}
