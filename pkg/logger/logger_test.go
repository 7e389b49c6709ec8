package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

func TestLoggerMethods(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewLogger(WithWriter(buf), WithText(), WithLevel(levelTrace))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		method func(string, ...any)
		level  slog.Level
		prefix string
	}{
		{logger.Trace, levelTrace, "TRACE"},
		{logger.Debug, slog.LevelDebug, "DEBUG"},
		{logger.Info, slog.LevelInfo, "INFO"},
		{logger.Warn, slog.LevelWarn, "WARN"},
		{logger.Error, slog.LevelError, "ERROR"},
		{logger.Critical, levelCritical, "CRITICAL"},
	}

	for _, tt := range tests {
		buf.Reset()
		t.Run(tt.prefix, func(t *testing.T) {
			tt.method("test", "key", "val")
			output := buf.String()
			if !strings.Contains(output, tt.prefix) || !strings.Contains(output, "key=\"val\"") {
				t.Errorf("Expected %q in output, got: %q", tt.prefix, output)
			}
		})
	}
}

func TestConvertArgs_OddArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))

	args := []any{"key1", "val1", "key2"}
	attrs := convertArgs(args)

	if len(attrs) != 2 {
		t.Errorf("Expected 2 attrs, got %d", len(attrs))
	}
	if attrs[1].Key != "MISSING_KEY" {
		t.Errorf("Expected MISSING_KEY, got %q", attrs[1].Key)
	}

	if !strings.Contains(buf.String(), "odd number of args") {
		t.Error("Expected odd args warning")
	}
}

func TestConvertArgs_NonStringKey(t *testing.T) {
	args := []any{42, "value"}
	attrs := convertArgs(args)
	if !strings.HasPrefix(attrs[0].Key, "NON_STRING_KEY_int") {
		t.Errorf("Expected NON_STRING_KEY_, got %q", attrs[0].Key)
	}
}

func TestNewLogger_DefaultOptions(t *testing.T) {
	t.Parallel()
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
}

func TestConvertArgs_EmptyArgs(t *testing.T) {
	t.Parallel()
	attrs := convertArgs([]any{})
	if len(attrs) != 0 {
		t.Errorf("Expected 0 attrs, got %d", len(attrs))
	}
}

func TestConvertArgs_ValidPairs(t *testing.T) {
	t.Parallel()
	args := []any{"key1", "val1", "key2", 42}
	attrs := convertArgs(args)

	if len(attrs) != 2 {
		t.Fatalf("Expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "key1" || attrs[0].Value.String() != "val1" {
		t.Errorf("First attr incorrect: %v", attrs[0])
	}
	if attrs[1].Key != "key2" || attrs[1].Value.String() != "42" {
		t.Errorf("Second attr incorrect: %v", attrs[1])
	}
}

type namedOnlyLogger struct {
	calls []string
}

func (l *namedOnlyLogger) Trace(string, ...any) { l.calls = append(l.calls, "TRACE") }
func (l *namedOnlyLogger) Debug(string, ...any) { l.calls = append(l.calls, "DEBUG") }
func (l *namedOnlyLogger) Info(string, ...any) { l.calls = append(l.calls, "INFO") }
func (l *namedOnlyLogger) Warn(string, ...any) { l.calls = append(l.calls, "WARN") }
func (l *namedOnlyLogger) Error(string, ...any) { l.calls = append(l.calls, "ERROR") }
func (l *namedOnlyLogger) Critical(string, ...any) { l.calls = append(l.calls, "CRITICAL") }
func (l *namedOnlyLogger) With(...any) contracts.Logger { return l }

func TestLog_FallsBackToNamedMethods(t *testing.T) {
	t.Parallel()
	l := &namedOnlyLogger{}

	for _, level := range []slog.Level{levelTrace, slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError, levelCritical} {
		Log(l, level, "msg")
	}

	expected := []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}
	if strings.Join(l.calls, ",") != strings.Join(expected, ",") {
		t.Errorf("got %v, want %v", l.calls, expected)
	}
}

func TestLog_UsesSlogLevelDirectly(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger, _ := NewLogger(WithWriter(buf), WithLevel(levelTrace))

	Log(logger, levelCritical, "disk full", "path", "/var")

	if !strings.Contains(buf.String(), `CRITICAL disk full path="/var"`) {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
