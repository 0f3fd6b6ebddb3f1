package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/config"
)

const serviceName = "campusbites"

// New creates a JSON slog.Logger at the configured level.
func New(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg.LogLevel)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler).With(slog.String("service", serviceName))
}

// parseLevel falls back to info for empty or unknown names.
func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
