package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level      string
	Pretty     bool
	TimeFormat string
	Output     io.Writer
}

// New builds the process-wide zerolog logger. Pretty enables the console
// writer for local runs; production stays on JSON lines.
func New(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = &Config{Level: "info"}
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		format := cfg.TimeFormat
		if format == "" {
			format = time.RFC3339
		}
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: format}
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Caller().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
