package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type mockLogger struct {
	entries []logEntry
	mu      sync.Mutex
}

func (m *mockLogger) log(level, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level: level, msg: msg, args: args})
}

func (m *mockLogger) Trace(msg string, args ...any)    { m.log("TRACE", msg, args...) }
func (m *mockLogger) Debug(msg string, args ...any)    { m.log("DEBUG", msg, args...) }
func (m *mockLogger) Info(msg string, args ...any)     { m.log("INFO", msg, args...) }
func (m *mockLogger) Warn(msg string, args ...any)     { m.log("WARN", msg, args...) }
func (m *mockLogger) Error(msg string, args ...any)    { m.log("ERROR", msg, args...) }
func (m *mockLogger) Critical(msg string, args ...any) { m.log("CRITICAL", msg, args...) }
func (m *mockLogger) With(args ...any) contracts.Logger { return m }

func (m *mockLogger) getMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.entries))
	for i, e := range m.entries {
		formatted := fmt.Sprintf("[%s] %s", e.level, e.msg)
		for j := 0; j+1 < len(e.args); j += 2 {
			formatted += fmt.Sprintf(" %v=%v", e.args[j], e.args[j+1])
		}
		result[i] = formatted
	}
	return result
}

// at returns the entries logged at level, skipping middleware chatter.
func (m *mockLogger) at(level string) []logEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []logEntry
	for _, e := range m.entries {
		if e.level == level {
			result = append(result, e)
		}
	}
	return result
}

func (m *mockLogger) contains(substr string) bool {
	for _, msg := range m.getMessages() {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func (e logEntry) arg(key string) (any, bool) {
	for i := 0; i+1 < len(e.args); i += 2 {
		if e.args[i] == key {
			return e.args[i+1], true
		}
	}
	return nil, false
}

func newTestContext(method, target string) (contracts.HTTPContext, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	return NewHTTPContext(w, req, nil), w
}

// valueError and timeoutError stand in for application error types.
type valueError struct{ msg string }

func (e *valueError) Error() string { return e.msg }

type timeoutError struct{ op string }

func (e *timeoutError) Error() string { return e.op + ": timed out" }

type counter struct {
	calls int
	errs  []error
}

// handler returns the queued errors one per call, then nil.
func (c *counter) handler(ctx contracts.HTTPContext) error {
	c.calls++
	if len(c.errs) == 0 {
		return nil
	}
	err := c.errs[0]
	c.errs = c.errs[1:]
	return err
}

var _ http.Handler = (*Router)(nil)
