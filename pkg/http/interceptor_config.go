package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"text/template"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/errors"
	"github.com/shuldan/errorinterceptor/pkg/logger"
)

// InterceptorConfig is the policy of an ErrorInterceptor. It is immutable once
// built and may be shared by any number of interceptors and requests.
type InterceptorConfig struct {
	errorType ErrorMatcher

	useLogger    bool
	logLevelName string
	logLevel     slog.Level
	messageInLog bool
	detailsInLog bool
	logTemplate  *template.Template

	statusCode        int
	messageInResponse bool
	detailsInResponse bool

	continueAfterHandling bool

	filter    contracts.ErrorFilter
	errLogger contracts.ErrorLogger
	generator contracts.ResponseGenerator

	rawTemplate string
	optErr      error
}

type InterceptorOption func(*InterceptorConfig)

func defaultInterceptorConfig() *InterceptorConfig {
	return &InterceptorConfig{
		useLogger:    true,
		logLevelName: "error",
		logLevel:     slog.LevelError,
		messageInLog: true,
		detailsInLog: true,
		statusCode:   http.StatusInternalServerError,
	}
}

// NewInterceptorConfig applies opts over the defaults: log everything at
// error level, respond 500 with an empty body and stop the chain.
func NewInterceptorConfig(opts ...InterceptorOption) (*InterceptorConfig, error) {
	c := defaultInterceptorConfig()
	for _, opt := range opts {
		opt(c)
	}
	if c.optErr != nil {
		return nil, c.optErr
	}

	if c.statusCode < 100 || c.statusCode > 599 {
		return nil, ErrInvalidStatusCode.WithDetail("status", c.statusCode)
	}

	level, err := logger.ParseLevel(c.logLevelName)
	if err != nil {
		return nil, ErrInvalidLogLevel.WithDetail("level", c.logLevelName).WithCause(err)
	}
	c.logLevel = level

	if c.rawTemplate != "" {
		tmpl, err := template.New("interceptor").Parse(c.rawTemplate)
		if err != nil {
			return nil, ErrInvalidLogTemplate.WithDetail("reason", err.Error()).WithCause(err)
		}
		c.logTemplate = tmpl
	}

	return c, nil
}

// WithErrorType limits handling to matching errors. Anything else passes
// through the interceptor untouched.
func WithErrorType(m ErrorMatcher) InterceptorOption {
	return func(c *InterceptorConfig) { c.errorType = m }
}

func WithLogging(enabled bool) InterceptorOption {
	return func(c *InterceptorConfig) { c.useLogger = enabled }
}

// WithLogLevel takes one of trace, debug, info, warn, error or critical.
func WithLogLevel(level string) InterceptorOption {
	return func(c *InterceptorConfig) { c.logLevelName = level }
}

func WithMessageInLog(include bool) InterceptorOption {
	return func(c *InterceptorConfig) { c.messageInLog = include }
}

func WithDetailsInLog(include bool) InterceptorOption {
	return func(c *InterceptorConfig) { c.detailsInLog = include }
}

func WithStatusCode(status int) InterceptorOption {
	return func(c *InterceptorConfig) { c.statusCode = status }
}

func WithMessageInResponse(include bool) InterceptorOption {
	return func(c *InterceptorConfig) { c.messageInResponse = include }
}

func WithDetailsInResponse(include bool) InterceptorOption {
	return func(c *InterceptorConfig) { c.detailsInResponse = include }
}

// WithContinue makes the interceptor run the downstream handler once more
// after an error was handled, and right after it when no error occurred.
func WithContinue(enabled bool) InterceptorOption {
	return func(c *InterceptorConfig) { c.continueAfterHandling = enabled }
}

func WithFilter(f contracts.ErrorFilter) InterceptorOption {
	return func(c *InterceptorConfig) { c.filter = f }
}

func WithErrorLogger(l contracts.ErrorLogger) InterceptorOption {
	return func(c *InterceptorConfig) { c.errLogger = l }
}

func WithResponseGenerator(g contracts.ResponseGenerator) InterceptorOption {
	return func(c *InterceptorConfig) { c.generator = g }
}

// WithHooks binds every hook interface that hooks implements. A value
// implementing none of them is a configuration error.
func WithHooks(hooks any) InterceptorOption {
	return func(c *InterceptorConfig) {
		bound := false
		if f, ok := hooks.(contracts.ErrorFilter); ok {
			c.filter = f
			bound = true
		}
		if l, ok := hooks.(contracts.ErrorLogger); ok {
			c.errLogger = l
			bound = true
		}
		if g, ok := hooks.(contracts.ResponseGenerator); ok {
			c.generator = g
			bound = true
		}
		if !bound && c.optErr == nil {
			c.optErr = ErrInvalidHooks.WithDetail("type", fmt.Sprintf("%T", hooks))
		}
	}
}

// WithLogTemplate renders the log line through text/template with a LogEntry
// as data, e.g. "{{.Method}} {{.Path}} failed: {{.Message}}".
func WithLogTemplate(tmpl string) InterceptorOption {
	return func(c *InterceptorConfig) { c.rawTemplate = tmpl }
}

// InterceptorOptionsFromConfig reads an error_interceptor section. Hooks are
// not expressible in configuration and must be added programmatically.
func InterceptorOptionsFromConfig(cfg contracts.Config) []InterceptorOption {
	def := defaultInterceptorConfig()

	opts := []InterceptorOption{
		WithLogging(cfg.GetBool("use_logger", def.useLogger)),
		WithLogLevel(cfg.GetString("log_level", def.logLevelName)),
		WithMessageInLog(cfg.GetBool("include_message_in_log", def.messageInLog)),
		WithDetailsInLog(cfg.GetBool("include_details_in_log", def.detailsInLog)),
		WithStatusCode(cfg.GetInt("status_code", def.statusCode)),
		WithMessageInResponse(cfg.GetBool("include_message_in_response", def.messageInResponse)),
		WithDetailsInResponse(cfg.GetBool("include_details_in_response", def.detailsInResponse)),
		WithContinue(cfg.GetBool("continue", def.continueAfterHandling)),
		WithLogTemplate(cfg.GetString("log_template")),
	}

	if names := cfg.GetStringSlice("codes"); len(names) > 0 {
		codes := make([]errors.Code, len(names))
		for i, name := range names {
			codes[i] = errors.Code(name)
		}
		opts = append(opts, WithErrorType(MatchCodes(codes...)))
	}

	return opts
}

func (c *InterceptorConfig) ErrorType() ErrorMatcher { return c.errorType }

func (c *InterceptorConfig) UseLogger() bool { return c.useLogger }

func (c *InterceptorConfig) LogLevel() string { return c.logLevelName }

func (c *InterceptorConfig) IncludeMessageInLog() bool { return c.messageInLog }

func (c *InterceptorConfig) IncludeDetailsInLog() bool { return c.detailsInLog }

func (c *InterceptorConfig) StatusCode() int { return c.statusCode }

func (c *InterceptorConfig) IncludeMessageInResponse() bool { return c.messageInResponse }

func (c *InterceptorConfig) IncludeDetailsInResponse() bool { return c.detailsInResponse }

func (c *InterceptorConfig) ContinueAfterHandling() bool { return c.continueAfterHandling }

func (c *InterceptorConfig) Filter() contracts.ErrorFilter { return c.filter }

func (c *InterceptorConfig) ErrorLogger() contracts.ErrorLogger { return c.errLogger }

func (c *InterceptorConfig) ResponseGenerator() contracts.ResponseGenerator { return c.generator }

func (c *InterceptorConfig) LogTemplate() string { return c.rawTemplate }
