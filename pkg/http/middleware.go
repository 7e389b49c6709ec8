package http

import (
	"context"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

// LoadMiddlewareFromConfig builds the global middleware described under
// http.server.middleware, outermost first: request_id, logging,
// error_interceptor, recovery. Recovery sits inside the interceptor so panics
// go through the same error policy. hooks are chained into the interceptor's
// logger hook, which is how reporters get attached.
func LoadMiddlewareFromConfig(config contracts.Config, logger contracts.Logger, hooks ...contracts.ErrorLogger) ([]contracts.HTTPMiddleware, error) {
	var middlewares []contracts.HTTPMiddleware

	sub, ok := config.GetSub("http.server.middleware")
	if !ok {
		return middlewares, nil
	}

	if enabled(sub, "request_id") {
		logger.Info("Request ID middleware enabled")
		middlewares = append(middlewares, RequestIDMiddleware())
	}
	if enabled(sub, "logging") {
		logger.Info("Logging middleware enabled")
		middlewares = append(middlewares, LoggingMiddleware(logger))
	}

	m, err := loadErrorInterceptor(sub, logger, hooks)
	if err != nil {
		return nil, err
	}
	if m != nil {
		middlewares = append(middlewares, m)
	}

	if enabled(sub, "recovery") {
		logger.Info("Recovery middleware enabled")
		middlewares = append(middlewares, RecoveryMiddleware(logger))
	}

	return middlewares, nil
}

func enabled(sub contracts.Config, name string) bool {
	section, ok := sub.GetSub(name)
	return ok && section.GetBool("enabled", false)
}

func loadErrorInterceptor(sub contracts.Config, logger contracts.Logger, hooks []contracts.ErrorLogger) (contracts.HTTPMiddleware, error) {
	section, ok := sub.GetSub("error_interceptor")
	if !ok || !section.GetBool("enabled", false) {
		return nil, nil
	}

	opts := InterceptorOptionsFromConfig(section)
	if len(hooks) > 0 {
		opts = append(opts, WithErrorLogger(ChainErrorLoggers(hooks...)))
	}

	cfg, err := NewInterceptorConfig(opts...)
	if err != nil {
		return nil, err
	}

	logger.Info("Error interceptor middleware enabled",
		"status_code", cfg.StatusCode(),
		"log_level", cfg.LogLevel(),
		"continue", cfg.ContinueAfterHandling(),
	)
	return ErrorInterceptor(cfg, logger), nil
}

func LoggingMiddleware(logger contracts.Logger) contracts.HTTPMiddleware {
	return func(next contracts.HTTPHandler) contracts.HTTPHandler {
		return func(ctx contracts.HTTPContext) error {
			start := time.Now()
			ctx.SetContext(context.WithValue(ctx.Context(), RequestStartKey, start))

			err := next(ctx)

			status := ctx.StatusCode()
			if status == 0 {
				status = http.StatusOK
				if err != nil {
					status = http.StatusInternalServerError
				}
			}

			logArgs := []any{
				"method", ctx.Method(),
				"path", ctx.Path(),
				"status", status,
				"duration", time.Since(start),
				"request_id", ctx.RequestID(),
			}
			if userAgent := ctx.RequestHeader("User-Agent"); userAgent != "" {
				logArgs = append(logArgs, "user_agent", userAgent)
			}
			if forwarded := ctx.RequestHeader("X-Forwarded-For"); forwarded != "" {
				logArgs = append(logArgs, "client_ip", strings.TrimSpace(strings.Split(forwarded, ",")[0]))
			}
			if err != nil {
				logArgs = append(logArgs, "error", err.Error())
			}

			switch {
			case status >= 500:
				logger.Error("HTTP request completed with server error", logArgs...)
			case status >= 400:
				logger.Warn("HTTP request completed with client error", logArgs...)
			default:
				logger.Info("HTTP request completed", logArgs...)
			}
			return err
		}
	}
}

// RecoveryMiddleware turns a panic into an ErrPanicRecovered error. It writes
// nothing itself; whatever sits outside it decides the response.
func RecoveryMiddleware(logger contracts.Logger) contracts.HTTPMiddleware {
	return func(next contracts.HTTPHandler) contracts.HTTPHandler {
		return func(ctx contracts.HTTPContext) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				if logger != nil {
					logger.Error("HTTP handler panic",
						"panic", r,
						"method", ctx.Method(),
						"path", ctx.Path(),
						"request_id", ctx.RequestID(),
						"stack_trace", string(stack),
					)
				}

				recovered := ErrPanicRecovered.WithDetail("panic", r)
				if cause, ok := r.(error); ok {
					recovered = recovered.WithCause(cause)
				}
				err = recovered
			}()
			return next(ctx)
		}
	}
}

func RequestIDMiddleware() contracts.HTTPMiddleware {
	return func(next contracts.HTTPHandler) contracts.HTTPHandler {
		return func(ctx contracts.HTTPContext) error {
			ctx.SetHeader(HeaderRequestID, ctx.RequestID())
			return next(ctx)
		}
	}
}
