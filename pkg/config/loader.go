package config

// Loader produces one layer of raw configuration values.
type Loader interface {
	Load() (map[string]any, error)
}
