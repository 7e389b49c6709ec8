package logger

import (
	"log/slog"
	"strings"
)

const (
	levelTrace    = slog.LevelDebug - 4
	levelCritical = slog.LevelError + 4
)

var levelsByName = map[string]slog.Level{
	"trace":    levelTrace,
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": levelCritical,
}

// ParseLevel maps a case-insensitive level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	if level, ok := levelsByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level, nil
	}
	return 0, ErrUnknownLevel.WithDetail("level", name)
}

func getLevelName(level slog.Leveler) string {
	switch level.Level() {
	case levelTrace:
		return "TRACE"
	case levelCritical:
		return "CRITICAL"
	default:
		return level.Level().String()
	}
}
