package redis

type Option func(*config)

type config struct {
	stream          string
	maxLen          int64
	approximateTrim bool
}

func defaultConfig() *config {
	return &config{
		stream:          "errors:intercepted",
		approximateTrim: true,
	}
}

func WithStream(stream string) Option {
	return func(c *config) {
		if stream != "" {
			c.stream = stream
		}
	}
}

// WithMaxLen caps the stream length; zero leaves it unbounded.
func WithMaxLen(maxLen int64) Option {
	return func(c *config) {
		c.maxLen = maxLen
	}
}

func WithApproximateTrimming(enabled bool) Option {
	return func(c *config) {
		c.approximateTrim = enabled
	}
}
