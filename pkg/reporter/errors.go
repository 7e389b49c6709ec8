package reporter

import "github.com/shuldan/errorinterceptor/pkg/errors"

var newReporterCode = errors.WithPrefix("REPORTER")

var (
	ErrInvalidSink     = newReporterCode().New("sink cannot be nil")
	ErrReportFailed    = newReporterCode().New("failed to report error to {{.sink}}")
	ErrUnknownReporter = newReporterCode().New("unknown reporter driver {{.driver}}")
)
