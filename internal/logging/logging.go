// Package logging configures the process-wide slog logger: a colored
// console handler for humans, a JSON handler for machines, and secret
// redaction on both paths so API keys never reach log output.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type ctxLoggerKey struct{}

// Setup builds a logger for the given level and format, installs it as
// the slog default, and returns it. Level is one of debug, info, warn,
// error; format is console or json.
func Setup(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	// Redact credentials wherever a config or request struct gets
	// logged wholesale.
	redact := masq.New(
		masq.WithFieldName("APIKey"),
		masq.WithFieldName("Authorization"),
	)

	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       lvl,
			ReplaceAttr: redact,
		})
	case FormatConsole, "":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(lvl),
			clog.WithSource(lvl == slog.LevelDebug),
			clog.WithReplaceAttr(redact),
		)
	default:
		return nil, fmt.Errorf("unknown log format %q (supported: console, json)", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error)", level)
	}
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	return slog.Default()
}

// With stores a request-scoped logger in the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the request-scoped logger, or the default when the
// context carries none.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
