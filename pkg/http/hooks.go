package http

import (
	"strings"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
)

type ErrorFilterFunc func(ctx contracts.HTTPContext, err error) bool

func (f ErrorFilterFunc) FilterError(ctx contracts.HTTPContext, err error) bool {
	return f(ctx, err)
}

type ErrorLoggerFunc func(ctx contracts.HTTPContext, err error) (string, error)

func (f ErrorLoggerFunc) LogError(ctx contracts.HTTPContext, err error) (string, error) {
	return f(ctx, err)
}

type ResponseGeneratorFunc func(ctx contracts.HTTPContext, err error) (bool, error)

func (f ResponseGeneratorFunc) GenerateResponse(ctx contracts.HTTPContext, err error) (bool, error) {
	return f(ctx, err)
}

type errorLoggerChain []contracts.ErrorLogger

// ChainErrorLoggers runs loggers in order and joins their non-empty messages
// with "; ". The first failing logger stops the chain.
func ChainErrorLoggers(loggers ...contracts.ErrorLogger) contracts.ErrorLogger {
	chain := make(errorLoggerChain, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			chain = append(chain, l)
		}
	}
	if len(chain) == 1 {
		return chain[0]
	}
	return chain
}

func (c errorLoggerChain) LogError(ctx contracts.HTTPContext, err error) (string, error) {
	messages := make([]string, 0, len(c))
	for _, l := range c {
		msg, logErr := l.LogError(ctx, err)
		if logErr != nil {
			return "", logErr
		}
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	return strings.Join(messages, "; "), nil
}
