package http

import "github.com/shuldan/errorinterceptor/pkg/errors"

var (
	ErrCodeGen = errors.WithPrefix("HTTP")

	ErrServerStart          = ErrCodeGen().New("failed to start server")
	ErrServerStop           = ErrCodeGen().New("failed to stop server")
	ErrServerAlreadyRunning = ErrCodeGen().New("server already running")
	ErrInvalidRouter        = ErrCodeGen().New("router cannot be nil")
	ErrInvalidLogger        = ErrCodeGen().New("logger cannot be nil")
	ErrInvalidHandler       = ErrCodeGen().New("handler cannot be nil")
	ErrRouteNotFound        = ErrCodeGen().New("route not found: {{.method}} {{.path}}")
	ErrMethodNotAllowed     = ErrCodeGen().New("method not allowed: {{.method}} {{.path}}")
	ErrBodyRead             = ErrCodeGen().New("failed to read request body")
	ErrJSONMarshal          = ErrCodeGen().New("failed to marshal JSON")
	ErrResponseAlreadySent  = ErrCodeGen().New("response already sent")
	ErrPanicRecovered       = ErrCodeGen().New("panic recovered: {{.panic}}")
)

var (
	ErrInterceptorCodeGen = errors.WithPrefix("INTERCEPTOR")

	ErrInvalidStatusCode  = ErrInterceptorCodeGen().New("invalid response status code: {{.status}}")
	ErrInvalidLogLevel    = ErrInterceptorCodeGen().New("invalid log level: {{.level}}")
	ErrInvalidLogTemplate = ErrInterceptorCodeGen().New("invalid log template: {{.reason}}")
	ErrInvalidHooks       = ErrInterceptorCodeGen().New("value of type {{.type}} implements no interceptor hook")
)
