package sqlstore

import "time"

type Option func(*config)

type config struct {
	table           string
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	pingTimeout     time.Duration
	retryAttempts   int
	retryDelay      time.Duration
}

func defaultConfig() *config {
	return &config{
		table:           "intercepted_errors",
		maxOpenConns:    10,
		maxIdleConns:    2,
		connMaxLifetime: time.Hour,
		pingTimeout:     5 * time.Second,
		retryAttempts:   3,
		retryDelay:      time.Second,
	}
}

func WithTable(table string) Option {
	return func(c *config) {
		if table != "" {
			c.table = table
		}
	}
}

func WithConnectionPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(c *config) {
		c.maxOpenConns = maxOpen
		c.maxIdleConns = maxIdle
		c.connMaxLifetime = maxLifetime
	}
}

func WithPingTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.pingTimeout = timeout
	}
}

func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *config) {
		c.retryAttempts = attempts
		c.retryDelay = delay
	}
}
