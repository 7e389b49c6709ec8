package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/term"
)

// textHandler writes one line per record: level, the first line of the
// message, then key="value" attributes. Any further message lines (an error
// detail string with its stack, typically) follow indented by a tab so that
// attributes stay on the line that starts the record.
type textHandler struct {
	mu           *sync.Mutex
	writer       io.Writer
	preformatted []byte
	groups       []string
	isColored    bool
	replaceAttr  func(groups []string, a slog.Attr) slog.Attr
	level        slog.Level
}

func newTextHandler(
	writer io.Writer,
	isColored bool,
	replaceAttr func(groups []string, a slog.Attr) slog.Attr,
	level slog.Level,
) slog.Handler {
	return &textHandler{
		mu:          &sync.Mutex{},
		writer:      writer,
		isColored:   isColored,
		replaceAttr: replaceAttr,
		level:       level,
	}
}

func (h *textHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *textHandler) Handle(_ context.Context, r slog.Record) error {
	levelStr := getLevelName(r.Level)

	if h.replaceAttr != nil {
		levelAttr := slog.String(slog.LevelKey, levelStr)
		levelAttr = h.replaceAttr(h.groups, levelAttr)
		levelStr = levelAttr.Value.String()
	}

	if h.isColored {
		levelStr = colorize(levelStr, r.Level)
	}

	head, rest, multiline := strings.Cut(r.Message, "\n")

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "%s %s", levelStr, head)
	buf.Write(h.preformatted)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	if multiline {
		for _, line := range strings.Split(strings.TrimRight(rest, "\n"), "\n") {
			if line != "" {
				buf.WriteByte('\t')
				buf.WriteString(line)
			}
			buf.WriteByte('\n')
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *textHandler) appendAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Value.Kind() != slog.KindGroup && h.replaceAttr != nil {
		a = h.replaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		nested := groups
		if a.Key != "" {
			nested = append(slices.Clip(groups), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, nested, ga)
		}
		return
	}

	if a.Key == "" {
		return
	}
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	_, _ = fmt.Fprintf(buf, " %s=%q", key, a.Value.String())
}

// WithAttrs renders attrs once, qualified by the groups open at this point.
func (h *textHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var buf bytes.Buffer
	for _, a := range attrs {
		h.appendAttr(&buf, h.groups, a)
	}
	clone := *h
	clone.preformatted = append(slices.Clip(h.preformatted), buf.Bytes()...)
	return &clone
}

func (h *textHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	return &clone
}

func colorize(levelStr string, level slog.Level) string {
	const (
		reset  = "\033[0m"
		blue   = "\033[34m"
		cyan   = "\033[36m"
		green  = "\033[32m"
		yellow = "\033[33m"
		red    = "\033[31m"
		white  = "\033[37m"
		redBg  = "\033[41m"
	)

	switch {
	case level == levelCritical:
		return redBg + white + levelStr + reset
	case level == slog.LevelDebug:
		return blue + levelStr + reset
	case level < slog.LevelInfo:
		return cyan + levelStr + reset
	case level < slog.LevelWarn:
		return green + levelStr + reset
	case level < slog.LevelError:
		return yellow + levelStr + reset
	default:
		return red + levelStr + reset
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
