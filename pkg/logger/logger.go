package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

var oddArgsWarning sync.Once

type sLogger struct {
	*slog.Logger
}

func NewLogger(opts ...Option) (contracts.Logger, error) {
	cfg := &config{
		level:  slog.LevelInfo,
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.replaceAttr == nil {
		WithDefaultReplaceAttr()(cfg)
	}

	var handler slog.Handler
	if cfg.json {
		handler = slog.NewJSONHandler(cfg.writer, &slog.HandlerOptions{
			Level:       cfg.level,
			AddSource:   cfg.addSource,
			ReplaceAttr: cfg.replaceAttr,
		})
	} else {
		isColored := cfg.wantColor && isTerminal(cfg.writer)
		handler = newTextHandler(cfg.writer, isColored, cfg.replaceAttr, cfg.level)
	}

	return &sLogger{Logger: slog.New(handler)}, nil
}

func (l *sLogger) Trace(msg string, args ...any) {
	l.LogAt(levelTrace, msg, args...)
}

func (l *sLogger) Debug(msg string, args ...any) {
	l.LogAt(slog.LevelDebug, msg, args...)
}

func (l *sLogger) Info(msg string, args ...any) {
	l.LogAt(slog.LevelInfo, msg, args...)
}

func (l *sLogger) Warn(msg string, args ...any) {
	l.LogAt(slog.LevelWarn, msg, args...)
}

func (l *sLogger) Error(msg string, args ...any) {
	l.LogAt(slog.LevelError, msg, args...)
}

func (l *sLogger) Critical(msg string, args ...any) {
	l.LogAt(levelCritical, msg, args...)
}

func (l *sLogger) LogAt(level slog.Level, msg string, args ...any) {
	l.LogAttrs(context.Background(), level, msg, convertArgs(args)...)
}

func (l *sLogger) With(args ...any) contracts.Logger {
	return &sLogger{
		Logger: l.Logger.With(args...),
	}
}

// Log writes msg at an arbitrary level through any contracts.Logger,
// mapping the level onto the nearest named method when logger is not slog-backed.
func Log(logger contracts.Logger, level slog.Level, msg string, args ...any) {
	if l, ok := logger.(interface {
		LogAt(slog.Level, string, ...any)
	}); ok {
		l.LogAt(level, msg, args...)
		return
	}

	switch {
	case level < slog.LevelDebug:
		logger.Trace(msg, args...)
	case level < slog.LevelInfo:
		logger.Debug(msg, args...)
	case level < slog.LevelWarn:
		logger.Info(msg, args...)
	case level < slog.LevelError:
		logger.Warn(msg, args...)
	case level < levelCritical:
		logger.Error(msg, args...)
	default:
		logger.Critical(msg, args...)
	}
}

func convertArgs(args []any) []slog.Attr {
	if len(args)%2 != 0 {
		oddArgsWarning.Do(func() {
			slog.Warn("logger called with odd number of args", slog.Any("args", args))
		})
	}

	var attrs []slog.Attr
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			attrs = append(attrs, slog.Any("MISSING_KEY", args[i]))
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("NON_STRING_KEY_%T", args[i])
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	return attrs
}
