package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

type contextKey string

const (
	// RequestIDKey holds the request ID in the request's context.Context.
	RequestIDKey contextKey = "request_id"
	// RequestStartKey holds the time LoggingMiddleware started timing.
	RequestStartKey contextKey = "request_start"

	HeaderRequestID = "X-Request-ID"
)

type httpContext struct {
	req        *http.Request
	resp       *responseWriter
	logger     contracts.Logger
	statusCode int
	params     map[string]interface{}
	body       []byte
	bodyRead   bool
	startTime  time.Time
	requestID  string
	mu         sync.RWMutex
}

func NewHTTPContext(w http.ResponseWriter, r *http.Request, logger contracts.Logger) contracts.HTTPContext {
	requestID := r.Header.Get(HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID))

	return &httpContext{
		req:       r,
		resp:      &responseWriter{ResponseWriter: w},
		logger:    logger,
		params:    make(map[string]interface{}),
		startTime: time.Now(),
		requestID: requestID,
	}
}

func (c *httpContext) Context() context.Context {
	return c.req.Context()
}

func (c *httpContext) SetContext(ctx context.Context) {
	if ctx.Value(RequestIDKey) == nil {
		ctx = context.WithValue(ctx, RequestIDKey, c.requestID)
	}
	c.req = c.req.WithContext(ctx)
}

func (c *httpContext) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params[key] = value
}

func (c *httpContext) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, exists := c.params[key]
	return value, exists
}

func (c *httpContext) RequestID() string {
	return c.requestID
}

func (c *httpContext) StartTime() time.Time {
	return c.startTime
}

func (c *httpContext) Method() string {
	return c.req.Method
}

func (c *httpContext) Path() string {
	return c.req.URL.Path
}

func (c *httpContext) Query(key string) string {
	return c.req.URL.Query().Get(key)
}

func (c *httpContext) Param(key string) string {
	value, _ := c.Get(key)
	str, _ := value.(string)
	return str
}

func (c *httpContext) RequestHeader(key string) string {
	return c.req.Header.Get(key)
}

func (c *httpContext) Body() ([]byte, error) {
	if c.bodyRead {
		return c.body, nil
	}

	body, err := io.ReadAll(c.req.Body)
	if err != nil {
		return nil, ErrBodyRead.WithCause(err)
	}
	c.body = body
	c.bodyRead = true

	if closeErr := c.req.Body.Close(); closeErr != nil && c.logger != nil {
		c.logger.Error("Failed to close request body", "error", closeErr)
	}
	return c.body, nil
}

func (c *httpContext) Request() *http.Request {
	return c.req
}

func (c *httpContext) SetHeader(key, value string) contracts.HTTPResponseWriter {
	c.resp.Header().Set(key, value)
	return c
}

func (c *httpContext) Status(code int) contracts.HTTPResponseWriter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statusCode = code
	return c
}

func (c *httpContext) JSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return ErrJSONMarshal.WithCause(err)
	}
	return c.write("application/json", data)
}

func (c *httpContext) String(s string) error {
	return c.write("text/plain; charset=utf-8", []byte(s))
}

func (c *httpContext) NoContent() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resp.sent {
		return ErrResponseAlreadySent
	}
	c.statusCode = http.StatusNoContent
	c.resp.WriteHeader(http.StatusNoContent)
	return nil
}

func (c *httpContext) StatusCode() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.resp.sent {
		return c.resp.status
	}
	return c.statusCode
}

func (c *httpContext) ResponseSent() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resp.sent
}

// Writer exposes the underlying writer for plain net/http handlers. Anything
// written through it marks the response as sent.
func (c *httpContext) Writer() http.ResponseWriter {
	return c.resp
}

func (c *httpContext) write(contentType string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resp.sent {
		return ErrResponseAlreadySent
	}
	if c.statusCode == 0 {
		c.statusCode = http.StatusOK
	}

	c.resp.Header().Set("Content-Type", contentType)
	c.resp.WriteHeader(c.statusCode)
	_, err := c.resp.Write(data)
	return err
}

type responseWriter struct {
	http.ResponseWriter
	status int
	sent   bool
}

func (w *responseWriter) WriteHeader(code int) {
	if w.sent {
		return
	}
	w.status = code
	w.sent = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.sent {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
