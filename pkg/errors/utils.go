package errors

import (
	"errors"
	"fmt"
	"strings"
)

func Is(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	return errors.Is(err, target)
}

func As[T error](err error, target *T) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

func GetErrorCode(err error) Code {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return ""
}

// Describe renders the full diagnostic text of err: the message, then the
// captured stack for coded errors, or one "caused by" line per wrapped cause
// for everything else.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var fe *Error
	if errors.As(err, &fe) && fe.Stack != "" {
		return err.Error() + "\n" + strings.TrimRight(fe.Stack, "\n")
	}

	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%T: %s", err, err.Error())
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		_, _ = fmt.Fprintf(&b, "\ncaused by: %T: %s", cause, cause.Error())
	}
	return b.String()
}
