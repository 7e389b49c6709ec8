package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})

	handlerCalled := false
	router.GET("/test", func(ctx contracts.HTTPContext) error {
		handlerCalled = true
		return ctx.JSON(map[string]string{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	if !handlerCalled {
		t.Error("Handler was not called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestRouterHTTPMethods(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})
	register := map[string]func(string, contracts.HTTPHandler, ...contracts.HTTPMiddleware){
		"GET":    router.GET,
		"POST":   router.POST,
		"PUT":    router.PUT,
		"DELETE": router.DELETE,
		"PATCH":  router.PATCH,
	}
	for _, fn := range register {
		fn("/resource", func(ctx contracts.HTTPContext) error {
			return ctx.String(ctx.Method())
		})
	}

	for method := range register {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/resource", nil))
		if w.Body.String() != method {
			t.Errorf("%s: expected body %q, got %q", method, method, w.Body.String())
		}
	}
}

func TestRouterParams(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})

	var id, postID, rest string
	router.GET("/users/:id/posts/:postId", func(ctx contracts.HTTPContext) error {
		id, postID = ctx.Param("id"), ctx.Param("postId")
		return ctx.NoContent()
	})
	router.GET("/files/*", func(ctx contracts.HTTPContext) error {
		rest = ctx.Param("*")
		return ctx.NoContent()
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/users/123/posts/456", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/files/a/b.txt", nil))

	if id != "123" || postID != "456" {
		t.Errorf("unexpected params id=%q postId=%q", id, postID)
	}
	if rest != "a/b.txt" {
		t.Errorf("unexpected wildcard %q", rest)
	}
}

func TestRouterDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	logger := &mockLogger{}
	router := NewRouter(logger)
	router.GET("/users", func(contracts.HTTPContext) error { return &valueError{"broken"} })
	router.GET("/partial", func(ctx contracts.HTTPContext) error {
		_ = ctx.Status(http.StatusAccepted).String("partial")
		return &valueError{"late failure"}
	})

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{"GET", "/missing", http.StatusNotFound, ""},
		{"POST", "/users", http.StatusMethodNotAllowed, ""},
		{"GET", "/users", http.StatusInternalServerError, "broken"},
		{"GET", "/partial", http.StatusAccepted, ""},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

		if w.Code != tt.status {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.status, w.Code)
		}
		if tt.body == "" {
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("JSON decode failed: %v", err)
		}
		if body["error"] != tt.body {
			t.Errorf("%s %s: expected error %q, got %q", tt.method, tt.path, tt.body, body["error"])
		}
	}

	if !logger.contains("late failure") {
		t.Error("error after a sent response should still be logged")
	}
}

func TestRouterSetErrorHandler(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})
	var got error
	router.SetErrorHandler(func(ctx contracts.HTTPContext, err error) {
		got = err
		_ = ctx.Status(http.StatusBadGateway).String("")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/nothing", nil))

	if got == nil || w.Code != http.StatusBadGateway {
		t.Errorf("custom handler not used: %v %d", got, w.Code)
	}

	router.SetErrorHandler(nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/nothing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected default handler back, got %d", w.Code)
	}
}

func TestRouterMiddlewareOrder(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})
	var order []string
	mark := func(name string) contracts.HTTPMiddleware {
		return func(next contracts.HTTPHandler) contracts.HTTPHandler {
			return func(ctx contracts.HTTPContext) error {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	router.Use(mark("global1"), mark("global2"))
	router.GET("/test", func(ctx contracts.HTTPContext) error {
		order = append(order, "handler")
		return ctx.NoContent()
	}, mark("route"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/test", nil))

	if got := strings.Join(order, ","); got != "global1,global2,route,handler" {
		t.Errorf("unexpected order %s", got)
	}

	order = nil
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/unknown", nil))
	if got := strings.Join(order, ","); got != "global1,global2" {
		t.Errorf("global middleware should wrap unmatched routes, got %s", got)
	}
}

func TestRouterHandleNilHandler(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil handler")
		}
	}()

	router.Handle("GET", "/test", nil)
}

func TestMatchPatternEdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		path    string
		match   bool
	}{
		{"/users/:id/posts/:postId", "/users/123/posts/456", true},
		{"/users/:id/posts/:postId", "/users/123/posts", false},
		{"/files/*", "/files", true},
		{"/files/*", "/files/", true},
		{"/files/*", "/files/path/to/file", true},
		{"/files/*", "/other/path", false},
		{"/:category/:id", "/books/123", true},
		{"/:category/:id", "/books", false},
		{"/", "/", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"->"+tt.path, func(t *testing.T) {
			if matched := matchPattern(tt.pattern, tt.path) != nil; matched != tt.match {
				t.Errorf("Expected match=%v for pattern %s and path %s, got %v",
					tt.match, tt.pattern, tt.path, matched)
			}
		})
	}
}

func TestWrapHandler(t *testing.T) {
	t.Parallel()

	router := NewRouter(&mockLogger{})
	router.GET("/plain", WrapHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(r.URL.Path))
	})))

	var sent bool
	router.Use(func(next contracts.HTTPHandler) contracts.HTTPHandler {
		return func(ctx contracts.HTTPContext) error {
			err := next(ctx)
			sent = ctx.ResponseSent()
			return err
		}
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/plain", nil))

	if w.Code != http.StatusCreated || w.Body.String() != "/plain" {
		t.Errorf("unexpected response %d %q", w.Code, w.Body.String())
	}
	if !sent {
		t.Error("wrapped handler output should mark the response sent")
	}
}
