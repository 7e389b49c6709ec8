package http

import (
	"bytes"
	"strings"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/errors"
	"github.com/shuldan/errorinterceptor/pkg/logger"
)

// ErrorBody is the default error response. Fields left out by the config
// serialize as null.
type ErrorBody struct {
	Message *string `json:"message"`
	Details *string `json:"details"`
}

// LogEntry is the data passed to a log template.
type LogEntry struct {
	Message   string
	Details   string
	Code      string
	Method    string
	Path      string
	RequestID string
	Status    int
}

type ResultKind int

const (
	// Suppressed means the error was not handled: nothing was logged or
	// written and the chain stops.
	Suppressed ResultKind = iota
	// Continue means the error was handled and the downstream handler runs
	// once more.
	Continue
	// Handled means the error was handled and the chain stops.
	Handled
)

func (k ResultKind) String() string {
	switch k {
	case Suppressed:
		return "suppressed"
	case Continue:
		return "continue"
	case Handled:
		return "handled"
	default:
		return "unknown"
	}
}

type Result struct {
	Kind            ResultKind
	ResponseWritten bool
}

func (r Result) Continues() bool {
	return r.Kind == Continue
}

type Interceptor struct {
	config *InterceptorConfig
	logger contracts.Logger
}

// NewInterceptor uses the default config when config is nil. A nil logger
// disables logging regardless of the config.
func NewInterceptor(config *InterceptorConfig, logger contracts.Logger) *Interceptor {
	if config == nil {
		config = defaultInterceptorConfig()
	}
	return &Interceptor{config: config, logger: logger}
}

// ErrorInterceptor is the middleware form of NewInterceptor(config, logger).
func ErrorInterceptor(config *InterceptorConfig, logger contracts.Logger) contracts.HTTPMiddleware {
	return NewInterceptor(config, logger).Middleware()
}

func (i *Interceptor) Middleware() contracts.HTTPMiddleware {
	return func(next contracts.HTTPHandler) contracts.HTTPHandler {
		return func(ctx contracts.HTTPContext) error {
			err := next(ctx)
			if err == nil {
				if i.config.continueAfterHandling {
					return next(ctx)
				}
				return nil
			}

			result, hookErr := i.Handle(ctx, err)
			if hookErr != nil {
				return hookErr
			}

			switch result.Kind {
			case Suppressed:
				return err
			case Continue:
				return next(ctx)
			default:
				return nil
			}
		}
	}
}

// Handle applies the policy to err: type filter, custom filter, logging,
// then the response. Errors returned by hooks are passed back as is.
func (i *Interceptor) Handle(ctx contracts.HTTPContext, err error) (Result, error) {
	c := i.config

	if c.errorType != nil && !c.errorType(err) {
		i.debug(ctx, "error passed through", err, "type filter")
		return Result{Kind: Suppressed}, nil
	}

	if c.filter != nil && !c.filter.FilterError(ctx, err) {
		i.debug(ctx, "error passed through", err, "custom filter")
		return Result{Kind: Suppressed}, nil
	}

	if c.useLogger {
		i.log(ctx, i.logMessage(ctx, err), err)
	}

	if c.errLogger != nil {
		msg, logErr := c.errLogger.LogError(ctx, err)
		if logErr != nil {
			return Result{}, logErr
		}
		if c.useLogger {
			i.log(ctx, msg, err)
		}
	}

	proceed := c.continueAfterHandling
	var written bool

	if c.generator != nil {
		cont, genErr := c.generator.GenerateResponse(ctx, err)
		if genErr != nil {
			return Result{}, genErr
		}
		proceed = cont
		written = ctx.ResponseSent()
	} else {
		written = i.writeBody(ctx, err)
	}

	if proceed {
		return Result{Kind: Continue, ResponseWritten: written}, nil
	}
	return Result{Kind: Handled, ResponseWritten: written}, nil
}

func (i *Interceptor) writeBody(ctx contracts.HTTPContext, err error) bool {
	var body ErrorBody
	if i.config.messageInResponse {
		msg := err.Error()
		body.Message = &msg
	}
	if i.config.detailsInResponse {
		details := errors.Describe(err)
		body.Details = &details
	}

	if writeErr := ctx.Status(i.config.statusCode).JSON(body); writeErr != nil {
		if i.logger != nil {
			i.logger.Error("Failed to write error response",
				"error", writeErr,
				"original_error", err.Error(),
				"request_id", ctx.RequestID(),
			)
		}
		return false
	}
	return true
}

func (i *Interceptor) logMessage(ctx contracts.HTTPContext, err error) string {
	c := i.config

	var entry LogEntry
	if c.messageInLog {
		entry.Message = err.Error()
	}
	if c.detailsInLog {
		entry.Details = errors.Describe(err)
	}

	if c.logTemplate == nil {
		parts := make([]string, 0, 2)
		for _, p := range []string{entry.Message, entry.Details} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, "\n\n")
	}

	if entry.Message == "" && entry.Details == "" {
		return ""
	}
	entry.Code = string(errors.GetErrorCode(err))
	entry.Method = ctx.Method()
	entry.Path = ctx.Path()
	entry.RequestID = ctx.RequestID()
	entry.Status = c.statusCode

	var buf bytes.Buffer
	if execErr := c.logTemplate.Execute(&buf, entry); execErr != nil {
		i.debug(ctx, "log template failed", execErr, "template")
		return strings.TrimSpace(entry.Message + "\n\n" + entry.Details)
	}
	return strings.TrimSpace(buf.String())
}

func (i *Interceptor) log(ctx contracts.HTTPContext, msg string, err error) {
	if strings.TrimSpace(msg) == "" || i.logger == nil {
		return
	}

	args := []any{
		"method", ctx.Method(),
		"path", ctx.Path(),
		"request_id", ctx.RequestID(),
	}
	if code := errors.GetErrorCode(err); code != "" {
		args = append(args, "code", string(code))
	}
	logger.Log(i.logger, i.config.logLevel, msg, args...)
}

func (i *Interceptor) debug(ctx contracts.HTTPContext, msg string, err error, reason string) {
	if i.logger == nil {
		return
	}
	i.logger.Debug(msg,
		"error", err.Error(),
		"reason", reason,
		"path", ctx.Path(),
		"request_id", ctx.RequestID(),
	)
}
