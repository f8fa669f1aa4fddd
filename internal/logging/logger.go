package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs the process-wide logger. Production (API_ENV=production) logs
// JSON; everything else logs text. LOG_LEVEL selects debug, info, warn or error.
func Init() *slog.Logger {
	return InitTo(os.Stderr, os.Getenv("API_ENV"), os.Getenv("LOG_LEVEL"))
}

func InitTo(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
