package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

type Option func(*config)

type config struct {
	level       slog.Level
	json        bool
	addSource   bool
	writer      io.Writer
	replaceAttr func(groups []string, a slog.Attr) slog.Attr
	wantColor   bool
}

func WithReplaceAttr(f func(groups []string, a slog.Attr) slog.Attr) Option {
	return func(c *config) {
		c.replaceAttr = f
	}
}

func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

func WithJSON() Option {
	return func(c *config) {
		c.json = true
	}
}

func WithText() Option {
	return func(c *config) {
		c.json = false
	}
}

func WithSource() Option {
	return func(c *config) {
		c.addSource = true
	}
}

func WithWriter(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}
		c.writer = w
	}
}

func WithColor() Option {
	return func(c *config) {
		c.wantColor = true
	}
}

// WithDefaultReplaceAttr renders the custom TRACE and CRITICAL levels by name
// after any previously installed ReplaceAttr has run.
func WithDefaultReplaceAttr() Option {
	return func(c *config) {
		prev := c.replaceAttr
		c.replaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if prev != nil {
				a = prev(groups, a)
				if a.Equal(slog.Attr{}) {
					return a
				}
			}
			if a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok {
					return slog.String(slog.LevelKey, getLevelName(level))
				}
			}
			return a
		}
	}
}

// OptionsFromConfig reads the "logger" section keys level, format,
// include_caller and enable_colors.
func OptionsFromConfig(cfg contracts.Config) ([]Option, error) {
	var opts []Option

	level, err := ParseLevel(cfg.GetString("level", "info"))
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithLevel(level))

	switch format := strings.ToLower(cfg.GetString("format", "text")); format {
	case "json":
		opts = append(opts, WithJSON())
	case "text":
		opts = append(opts, WithText())
	default:
		return nil, ErrUnknownFormat.WithDetail("format", format)
	}

	if cfg.GetBool("include_caller", false) {
		opts = append(opts, WithSource())
	}
	if cfg.GetBool("enable_colors", false) {
		opts = append(opts, WithColor())
	}

	return opts, nil
}
