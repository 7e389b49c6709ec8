package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/shuldan/errorinterceptor/pkg/config"
	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/errors"
	apphttp "github.com/shuldan/errorinterceptor/pkg/http"
	"github.com/shuldan/errorinterceptor/pkg/logger"
	"github.com/shuldan/errorinterceptor/pkg/reporter"
	"github.com/shuldan/errorinterceptor/pkg/reporter/metrics"
	"github.com/shuldan/errorinterceptor/pkg/reporter/redis"
	"github.com/shuldan/errorinterceptor/pkg/reporter/sqlstore"
)

const reporterSection = "http.server.middleware.error_interceptor.reporter"

type recentSource interface {
	Recent(ctx context.Context, limit int) ([]reporter.Record, error)
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.NewChainLoader(
		config.NewYamlConfigLoader("config.yaml", "config/config.yaml"),
		config.NewJSONConfigLoader("config.json", "config/config.json"),
		config.NewEnvConfigLoader("ERRORINTERCEPTOR_"),
	))
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector("errorinterceptor")
	hooks := []contracts.ErrorLogger{collector}

	sink, closer, err := openReporter(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close reporter", "error", err)
		}
	}()
	if sink != nil {
		hook, err := reporter.NewErrorLogger(sink, cfg.GetString(reporterSection+".driver"))
		if err != nil {
			return err
		}
		hooks = append(hooks, hook)
	}

	middleware, err := apphttp.LoadMiddlewareFromConfig(cfg, log, hooks...)
	if err != nil {
		return err
	}

	router := apphttp.NewRouter(log)
	router.Use(middleware...)
	registerRoutes(router, collector, sink)

	server, err := apphttp.NewServer(router, log, apphttp.ServerOptionsFromConfig(cfg)...)
	if err != nil {
		return err
	}
	if err := server.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return server.Stop(context.Background())
}

func newLogger(cfg contracts.Config) (contracts.Logger, error) {
	sub, ok := cfg.GetSub("logger")
	if !ok {
		return logger.NewLogger()
	}
	opts, err := logger.OptionsFromConfig(sub)
	if err != nil {
		return nil, err
	}
	return logger.NewLogger(opts...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openReporter builds the sink named by reporter.driver; an empty driver
// disables reporting.
func openReporter(ctx context.Context, cfg contracts.Config) (reporter.Sink, io.Closer, error) {
	section, ok := cfg.GetSub(reporterSection)
	if !ok {
		return nil, nopCloser{}, nil
	}

	switch driver := section.GetString("driver"); driver {
	case "":
		return nil, nopCloser{}, nil
	case "redis":
		s, err := redis.FromConfig(subOrEmpty(section, "redis"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "sql":
		s, err := sqlstore.FromConfig(ctx, subOrEmpty(section, "sql"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, reporter.ErrUnknownReporter.WithDetail("driver", driver)
	}
}

func subOrEmpty(cfg contracts.Config, key string) contracts.Config {
	if sub, ok := cfg.GetSub(key); ok {
		return sub
	}
	return config.NewMapConfig(nil)
}

func registerRoutes(router *apphttp.Router, collector *metrics.Collector, sink reporter.Sink) {
	router.GET("/health", func(ctx contracts.HTTPContext) error {
		return ctx.JSON(map[string]string{"status": "ok"})
	})

	router.GET("/users/:id", func(ctx contracts.HTTPContext) error {
		id := ctx.Param("id")
		if id == "0" {
			return errors.ErrNotFound.WithDetail("id", id)
		}
		return ctx.JSON(map[string]string{"id": id})
	})

	router.POST("/users", func(ctx contracts.HTTPContext) error {
		body, err := ctx.Body()
		if err != nil {
			return err
		}
		if len(body) == 0 {
			return errors.ErrValidation.WithDetail("field", "body")
		}
		return ctx.Status(201).JSON(map[string]int{"size": len(body)})
	})

	router.GET("/panic", func(contracts.HTTPContext) error {
		panic("demo panic")
	})

	router.GET("/metrics", apphttp.WrapHandler(collector.Handler()))

	if src, ok := sink.(recentSource); ok {
		router.GET("/errors/recent", func(ctx contracts.HTTPContext) error {
			records, err := src.Recent(ctx.Context(), 20)
			if err != nil {
				return err
			}
			return ctx.JSON(records)
		})
	}
}
