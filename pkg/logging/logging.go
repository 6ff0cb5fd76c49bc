// Package logging configures structured logging for splitledger.
//
// Interactive runs get colored tint output; servers behind a collector can
// opt into JSON. The level comes from the LOG_LEVEL environment variable
// (debug, info, warn, error; default info).
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs a colored tint handler at the LOG_LEVEL env level.
func Setup() {
	SetupWithLevel(levelFromEnv())
}

// SetupWithLevel installs a colored tint handler at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// SetupJSON installs a JSON handler at the LOG_LEVEL env level, for
// deployments that ship logs to a collector.
func SetupJSON() {
	slog.SetDefault(slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: levelFromEnv(),
		}),
	))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
