package reporter

import (
	"context"
	"fmt"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

// Sink stores error records. Implementations must be safe for concurrent use.
type Sink interface {
	Report(ctx context.Context, record Record) error
}

type SinkFunc func(ctx context.Context, record Record) error

func (f SinkFunc) Report(ctx context.Context, record Record) error {
	return f(ctx, record)
}

type errorLogger struct {
	sink Sink
	name string
}

// NewErrorLogger adapts sink to the interceptor's logger hook. The hook's
// message names the sink and the stored record ID; a failing sink fails
// the hook.
func NewErrorLogger(sink Sink, name string) (contracts.ErrorLogger, error) {
	if sink == nil {
		return nil, ErrInvalidSink
	}
	return &errorLogger{sink: sink, name: name}, nil
}

func (l *errorLogger) LogError(ctx contracts.HTTPContext, err error) (string, error) {
	record := NewRecord(ctx, err)
	if reportErr := l.sink.Report(ctx.Context(), record); reportErr != nil {
		return "", ErrReportFailed.WithDetail("sink", l.name).WithCause(reportErr)
	}
	return fmt.Sprintf("error reported to %s id=%s", l.name, record.ID), nil
}

type fanout []Sink

// Fanout reports to every sink in order and stops at the first failure.
func Fanout(sinks ...Sink) Sink {
	out := make(fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f fanout) Report(ctx context.Context, record Record) error {
	for _, s := range f {
		if err := s.Report(ctx, record); err != nil {
			return err
		}
	}
	return nil
}
