package config

import (
	"errors"
	"reflect"
	"testing"
)

type mockLoader struct {
	config map[string]any
	err    error
}

func (m *mockLoader) Load() (map[string]any, error) {
	return m.config, m.err
}

func TestChainLoader_Load_MergesLayers(t *testing.T) {
	base := &mockLoader{config: map[string]any{
		"http": map[string]any{
			"server": map[string]any{"address": ":8080", "read_timeout": 30},
		},
		"logger": map[string]any{"level": "info"},
	}}
	override := &mockLoader{config: map[string]any{
		"http": map[string]any{
			"server": map[string]any{"address": ":9090"},
		},
	}}

	values, err := NewChainLoader(base, override).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := map[string]any{
		"http": map[string]any{
			"server": map[string]any{"address": ":9090", "read_timeout": 30},
		},
		"logger": map[string]any{"level": "info"},
	}
	if !reflect.DeepEqual(values, expected) {
		t.Errorf("got %v, expected %v", values, expected)
	}
}

func TestChainLoader_Load_SkipsFailingLayer(t *testing.T) {
	failing := &mockLoader{err: errors.New("missing file")}
	ok := &mockLoader{config: map[string]any{"key": "value"}}

	values, err := NewChainLoader(failing, ok).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["key"] != "value" {
		t.Errorf("unexpected values %v", values)
	}
}

func TestChainLoader_Load_AllLayersFail(t *testing.T) {
	cause := errors.New("second failure")
	chain := NewChainLoader(&mockLoader{err: errors.New("first")}, &mockLoader{err: cause})

	_, err := chain.Load()
	if !errors.Is(err, ErrNoConfigSource) {
		t.Fatalf("expected ErrNoConfigSource, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected last layer error as cause")
	}
}

func TestChainLoader_Load_ScalarOverridesSection(t *testing.T) {
	chain := NewChainLoader(
		&mockLoader{config: map[string]any{"db": map[string]any{"host": "localhost"}}},
		&mockLoader{config: map[string]any{"db": "disabled"}},
	)

	values, err := chain.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values["db"] != "disabled" {
		t.Errorf("expected scalar override, got %v", values["db"])
	}
}

func TestLoad_WrapsValues(t *testing.T) {
	cfg, err := Load(&mockLoader{config: map[string]any{"a": map[string]any{"b": 1}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetInt("a.b") != 1 {
		t.Errorf("expected a.b = 1, got %d", cfg.GetInt("a.b"))
	}

	if _, err := Load(&mockLoader{err: ErrNoConfigSource}); !errors.Is(err, ErrNoConfigSource) {
		t.Errorf("expected loader error, got %v", err)
	}
}
