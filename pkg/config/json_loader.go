package config

import (
	"encoding/json"
	"os"
)

// JSONConfigLoader reads the first existing file among paths, expanding
// ${VAR} references like YamlConfigLoader does.
type JSONConfigLoader struct {
	paths []string
}

func (l *JSONConfigLoader) Load() (map[string]any, error) {
	for _, path := range l.paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var config map[string]any
		if err = json.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
			return nil, ErrParseJSON.
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
