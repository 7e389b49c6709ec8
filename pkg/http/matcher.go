package http

import (
	"slices"

	"github.com/shuldan/errorinterceptor/pkg/errors"
)

// ErrorMatcher restricts an ErrorInterceptor to a class of errors. Matchers
// are built once, together with the InterceptorConfig.
type ErrorMatcher func(err error) bool

// MatchType matches errors that errors.As can assign to T, anywhere in the
// wrap chain.
func MatchType[T error]() ErrorMatcher {
	return func(err error) bool {
		var target T
		return errors.As(err, &target)
	}
}

// MatchErrors matches errors that are any of targets.
func MatchErrors(targets ...error) ErrorMatcher {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// MatchCodes matches framework errors carrying one of codes.
func MatchCodes(codes ...errors.Code) ErrorMatcher {
	return func(err error) bool {
		code := errors.GetErrorCode(err)
		return code != "" && slices.Contains(codes, code)
	}
}

func MatchAny(matchers ...ErrorMatcher) ErrorMatcher {
	return func(err error) bool {
		for _, m := range matchers {
			if m != nil && m(err) {
				return true
			}
		}
		return false
	}
}
