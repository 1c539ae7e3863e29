// Package logging builds the slog handlers used by the CLI. Logs always go
// to stderr so stdout stays free for CSV and JSON output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Level names accepted by the --log-level flag. trace is debug plus caller
// information.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// parseLevel maps a level name to a slog level and whether callers are
// reported. An empty name is info.
func parseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return slog.LevelDebug, true, nil
	case "debug":
		return slog.LevelDebug, false, nil
	case "", "info":
		return slog.LevelInfo, false, nil
	case "warn", "warning":
		return slog.LevelWarn, false, nil
	case "error":
		return slog.LevelError, false, nil
	default:
		return slog.LevelInfo, false, fmt.Errorf("unknown log level: %s", name)
	}
}

// SetupHandlerText returns a charmbracelet/log handler. Timestamps are shown
// from debug level down. Unknown levels fall back to info; SetupLogger
// rejects them.
func SetupHandlerText(logLevel string, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stderr
	}
	level, caller, _ := parseLevel(logLevel)

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: level <= slog.LevelDebug,
		ReportCaller:    caller,
		Level:           log.Level(level),
		Prefix:          "ventsim",
	})
}

func SetupHandlerJSON(logLevel string, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stderr
	}
	level, caller, _ := parseLevel(logLevel)

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: caller,
	})
}

// SetupLogger installs and returns the default logger. format is "text" or
// "json".
func SetupLogger(logLevel, format string) (*slog.Logger, error) {
	if _, _, err := parseLevel(logLevel); err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = SetupHandlerText(logLevel, nil)
	case "json":
		handler = SetupHandlerJSON(logLevel, nil)
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
