package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestYamlConfigLoader_Load_Success(t *testing.T) {
	t.Setenv("EI_REDIS_ADDR", "redis:6379")
	path := writeFile(t, "config.yaml", `
http:
  server:
    address: ":8081"
    middleware:
      error_interceptor:
        enabled: true
        status_code: 503
        codes: [CORE_0004, CORE_0007]
        reporter:
          driver: redis
          address: ${EI_REDIS_ADDR}
debug: false
`)

	values, err := NewYamlConfigLoader("missing.yaml", path).Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := NewMapConfig(values)
	ic, ok := cfg.GetSub("http.server.middleware.error_interceptor")
	if !ok {
		t.Fatal("expected error_interceptor section")
	}
	if ic.GetInt("status_code") != 503 {
		t.Errorf("expected status_code = 503, got %v", ic.GetInt("status_code"))
	}
	if codes := ic.GetStringSlice("codes"); len(codes) != 2 || codes[1] != "CORE_0007" {
		t.Errorf("unexpected codes %v", codes)
	}
	if ic.GetString("reporter.address") != "redis:6379" {
		t.Errorf("expected env expansion, got %q", ic.GetString("reporter.address"))
	}
	if cfg.GetBool("debug", true) {
		t.Error("expected debug = false")
	}
}

func TestYamlConfigLoader_Load_FileNotFound(t *testing.T) {
	_, err := NewYamlConfigLoader("nonexistent.yaml").Load()

	if !errors.Is(err, ErrNoConfigSource) {
		t.Errorf("expected ErrNoConfigSource, got %v", err)
	}
}

func TestYamlConfigLoader_Load_InvalidYAML(t *testing.T) {
	path := writeFile(t, "broken.yaml", "http: [unclosed\n")

	_, err := NewYamlConfigLoader(path).Load()

	if !errors.Is(err, ErrParseYAML) {
		t.Errorf("expected ErrParseYAML, got %v", err)
	}
}
