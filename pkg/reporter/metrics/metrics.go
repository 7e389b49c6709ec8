// Package metrics counts intercepted errors for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/errors"
)

const uncoded = "none"

// Collector is an interceptor logger hook that counts every handled error.
// It never produces a log message of its own.
type Collector struct {
	registry *prometheus.Registry
	handled  *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		handled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_intercepted_total",
				Help:      "Errors handled by the error interceptor",
			},
			[]string{"method", "code"},
		),
	}
}

func (c *Collector) LogError(ctx contracts.HTTPContext, err error) (string, error) {
	code := string(errors.GetErrorCode(err))
	if code == "" {
		code = uncoded
	}
	c.handled.WithLabelValues(ctx.Method(), code).Inc()
	return "", nil
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
