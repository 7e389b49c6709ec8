package http

import (
	"net/http"
	"strings"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/errors"
)

type Route struct {
	method     string
	pattern    string
	handler    contracts.HTTPHandler
	middleware []contracts.HTTPMiddleware
}

type Router struct {
	routes                  []Route
	middleware              []contracts.HTTPMiddleware
	errorHandler            contracts.HTTPErrorHandler
	logger                  contracts.Logger
	notFoundHandler         contracts.HTTPHandler
	methodNotAllowedHandler contracts.HTTPHandler
}

var _ contracts.HTTPRouter = (*Router)(nil)

func NewRouter(logger contracts.Logger) *Router {
	r := &Router{
		routes: make([]Route, 0),
		logger: logger,
	}

	r.notFoundHandler = func(ctx contracts.HTTPContext) error {
		return ErrRouteNotFound.
			WithDetail("method", ctx.Method()).
			WithDetail("path", ctx.Path())
	}

	r.methodNotAllowedHandler = func(ctx contracts.HTTPContext) error {
		return ErrMethodNotAllowed.
			WithDetail("method", ctx.Method()).
			WithDetail("path", ctx.Path())
	}

	r.errorHandler = r.defaultErrorHandler

	return r
}

// defaultErrorHandler handles whatever the middleware chain lets through,
// including errors an ErrorInterceptor chose not to handle.
func (r *Router) defaultErrorHandler(ctx contracts.HTTPContext, err error) {
	if r.logger != nil {
		r.logger.Error("HTTP handler error",
			"error", err,
			"path", ctx.Path(),
			"method", ctx.Method(),
			"request_id", ctx.RequestID(),
		)
	}

	if ctx.ResponseSent() {
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrRouteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrMethodNotAllowed):
		status = http.StatusMethodNotAllowed
	}

	if jsonErr := ctx.Status(status).JSON(map[string]string{"error": err.Error()}); jsonErr != nil && r.logger != nil {
		r.logger.Error("JSON error", "error", jsonErr, "path", ctx.Path(), "method", ctx.Method())
	}
}

func (r *Router) SetErrorHandler(handler contracts.HTTPErrorHandler) {
	if handler == nil {
		handler = r.defaultErrorHandler
	}
	r.errorHandler = handler
}

func (r *Router) GET(path string, handler contracts.HTTPHandler, middleware ...contracts.HTTPMiddleware) {
	r.Handle(http.MethodGet, path, handler, middleware...)
}

func (r *Router) POST(path string, handler contracts.HTTPHandler, middleware ...contracts.HTTPMiddleware) {
	r.Handle(http.MethodPost, path, handler, middleware...)
}

func (r *Router) PUT(path string, handler contracts.HTTPHandler, middleware ...contracts.HTTPMiddleware) {
	r.Handle(http.MethodPut, path, handler, middleware...)
}

func (r *Router) DELETE(path string, handler contracts.HTTPHandler, middleware ...contracts.HTTPMiddleware) {
	r.Handle(http.MethodDelete, path, handler, middleware...)
}

func (r *Router) PATCH(path string, handler contracts.HTTPHandler, middleware ...contracts.HTTPMiddleware) {
	r.Handle(http.MethodPatch, path, handler, middleware...)
}

func (r *Router) Use(middleware ...contracts.HTTPMiddleware) {
	r.middleware = append(r.middleware, middleware...)
}

func (r *Router) Handle(method, path string, handler contracts.HTTPHandler, middleware ...contracts.HTTPMiddleware) {
	if handler == nil {
		panic(ErrInvalidHandler)
	}

	r.routes = append(r.routes, Route{
		method:     method,
		pattern:    path,
		handler:    handler,
		middleware: middleware,
	})
}

// ServeHTTP runs global middleware for every request, including unmatched
// ones, so a registered ErrorInterceptor also shapes 404 and 405 responses.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := NewHTTPContext(w, req, r.logger)

	var handler contracts.HTTPHandler
	route, params := r.matchRoute(req.Method, req.URL.Path)
	switch {
	case route != nil:
		for key, value := range params {
			ctx.Set(key, value)
		}
		handler = route.handler
		for i := len(route.middleware) - 1; i >= 0; i-- {
			handler = route.middleware[i](handler)
		}
	case r.pathExistsWithDifferentMethod(req.URL.Path, req.Method):
		handler = r.methodNotAllowedHandler
	default:
		handler = r.notFoundHandler
	}

	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}

	if err := handler(ctx); err != nil {
		r.errorHandler(ctx, err)
	}
}

func (r *Router) matchRoute(method, path string) (*Route, map[string]string) {
	for i := range r.routes {
		route := &r.routes[i]
		if route.method != method {
			continue
		}

		if params := matchPattern(route.pattern, path); params != nil {
			return route, params
		}
	}
	return nil, nil
}

func (r *Router) pathExistsWithDifferentMethod(path, method string) bool {
	for _, route := range r.routes {
		if route.method == method {
			continue
		}

		if matchPattern(route.pattern, path) != nil {
			return true
		}
	}
	return false
}

// matchPattern supports ":name" segments and a trailing "*" that captures the
// rest of the path under the "*" param.
func matchPattern(pattern, path string) map[string]string {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	params := make(map[string]string)

	if last := len(patternParts) - 1; patternParts[last] == "*" {
		if len(pathParts) < last {
			return nil
		}
		if !matchParts(patternParts[:last], pathParts[:last], params) {
			return nil
		}
		params["*"] = strings.Join(pathParts[last:], "/")
		return params
	}

	if len(patternParts) != len(pathParts) {
		return nil
	}
	if !matchParts(patternParts, pathParts, params) {
		return nil
	}
	return params
}

func matchParts(patternParts, pathParts []string, params map[string]string) bool {
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			params[part[1:]] = pathParts[i]
		} else if part != pathParts[i] {
			return false
		}
	}
	return true
}

// WrapHandler mounts a plain net/http handler, e.g. promhttp.Handler(), on
// the router.
func WrapHandler(h http.Handler) contracts.HTTPHandler {
	return func(ctx contracts.HTTPContext) error {
		h.ServeHTTP(ctx.Writer(), ctx.Request())
		return nil
	}
}
