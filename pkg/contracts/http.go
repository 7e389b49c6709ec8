package contracts

import (
	"context"
	"net/http"
	"time"
)

type HTTPServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Addr() string
	Handler() http.Handler
}

type HTTPContext interface {
	HTTPRequestContext
	HTTPResponseWriter
	RequestContext
}

type HTTPRequestContext interface {
	Method() string
	Path() string
	Query(key string) string
	Param(key string) string
	RequestHeader(key string) string
	Body() ([]byte, error)
	Request() *http.Request
}

type HTTPResponseWriter interface {
	SetHeader(key, value string) HTTPResponseWriter
	Status(code int) HTTPResponseWriter
	JSON(v interface{}) error
	String(s string) error
	NoContent() error
	StatusCode() int
	ResponseSent() bool
	Writer() http.ResponseWriter
}

type RequestContext interface {
	Context() context.Context
	SetContext(ctx context.Context)
	Set(key string, value interface{})
	Get(key string) (interface{}, bool)
	RequestID() string
	StartTime() time.Time
}

type HTTPRouter interface {
	GET(path string, handler HTTPHandler, middleware ...HTTPMiddleware)
	POST(path string, handler HTTPHandler, middleware ...HTTPMiddleware)
	PUT(path string, handler HTTPHandler, middleware ...HTTPMiddleware)
	DELETE(path string, handler HTTPHandler, middleware ...HTTPMiddleware)
	PATCH(path string, handler HTTPHandler, middleware ...HTTPMiddleware)

	Use(middleware ...HTTPMiddleware)

	Handle(method, path string, handler HTTPHandler, middleware ...HTTPMiddleware)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

type HTTPHandler func(HTTPContext) error

type HTTPMiddleware func(HTTPHandler) HTTPHandler

type HTTPErrorHandler func(HTTPContext, error)
