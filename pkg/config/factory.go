package config

import "github.com/shuldan/errorinterceptor/pkg/contracts"

var _ Loader = (*EnvConfigLoader)(nil)
var _ Loader = (*YamlConfigLoader)(nil)
var _ Loader = (*JSONConfigLoader)(nil)
var _ Loader = (*chainLoader)(nil)

func NewEnvConfigLoader(prefix string) Loader {
	return &EnvConfigLoader{prefix: prefix}
}

func NewYamlConfigLoader(paths ...string) *YamlConfigLoader {
	return &YamlConfigLoader{paths: paths}
}

func NewJSONConfigLoader(paths ...string) *JSONConfigLoader {
	return &JSONConfigLoader{paths: paths}
}

func NewChainLoader(loaders ...Loader) Loader {
	return &chainLoader{loaders: loaders}
}

func NewMapConfig(values map[string]any) contracts.Config {
	if values == nil {
		values = make(map[string]any)
	}
	return &MapConfig{values: values}
}

// Load runs loader and wraps the result, the usual entry point for
// a process reading its settings once at startup.
func Load(loader Loader) (contracts.Config, error) {
	values, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return NewMapConfig(values), nil
}
