package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// YamlConfigLoader reads the first existing file among paths. ${VAR}
// references in the file are expanded from the process environment.
type YamlConfigLoader struct {
	paths []string
}

func (l *YamlConfigLoader) Load() (map[string]any, error) {
	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var config map[string]any
		expanded := os.ExpandEnv(string(data))
		if err = yaml.UnmarshalWithOptions([]byte(expanded), &config, yaml.UseJSONUnmarshaler()); err != nil {
			return nil, ErrParseYAML.
				WithDetail("path", path).
				WithDetail("reason", err.Error()).
				WithCause(err)
		}
		if config == nil {
			config = make(map[string]any)
		}

		return config, nil
	}

	return nil, ErrNoConfigSource.WithDetail("paths", l.paths)
}
