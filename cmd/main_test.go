package main

import (
	"context"
	"strings"
	"testing"

	"github.com/shuldan/errorinterceptor/pkg/config"
	"github.com/shuldan/errorinterceptor/pkg/errors"
	"github.com/shuldan/errorinterceptor/pkg/reporter"
)

func reporterConfig(section map[string]any) map[string]any {
	return map[string]any{
		"http": map[string]any{"server": map[string]any{"middleware": map[string]any{
			"error_interceptor": map[string]any{"reporter": section},
		}}},
	}
}

func TestOpenReporter_Disabled(t *testing.T) {
	t.Parallel()

	for _, values := range []map[string]any{nil, reporterConfig(map[string]any{"driver": ""})} {
		sink, closer, err := openReporter(context.Background(), config.NewMapConfig(values))
		if err != nil || sink != nil {
			t.Errorf("expected no sink, got %v, %v", sink, err)
		}
		if closer == nil || closer.Close() != nil {
			t.Error("expected a no-op closer")
		}
	}
}

func TestOpenReporter_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := config.NewMapConfig(reporterConfig(map[string]any{"driver": "kafka"}))

	_, _, err := openReporter(context.Background(), cfg)
	if !errors.Is(err, reporter.ErrUnknownReporter) {
		t.Fatalf("expected ErrUnknownReporter, got %v", err)
	}
	if !strings.HasSuffix(err.Error(), "unknown reporter driver kafka") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestOpenReporter_SQL(t *testing.T) {
	t.Parallel()

	cfg := config.NewMapConfig(reporterConfig(map[string]any{
		"driver": "sql",
		"sql": map[string]any{
			"dialect": "sqlite3",
			"dsn":     "file:cmd_reporter?mode=memory&cache=shared",
			"retry":   map[string]any{"attempts": 0},
		},
	}))

	sink, closer, err := openReporter(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = closer.Close() }()

	if _, ok := sink.(recentSource); !ok {
		t.Errorf("expected the SQL sink to list recent records, got %T", sink)
	}
}

func TestOpenReporter_RedisRequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := config.NewMapConfig(reporterConfig(map[string]any{"driver": "redis"}))

	if _, _, err := openReporter(context.Background(), cfg); err == nil {
		t.Error("expected missing address error")
	}
}
