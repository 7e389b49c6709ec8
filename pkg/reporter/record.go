package reporter

import (
	"time"

	"github.com/google/uuid"

	"github.com/shuldan/errorinterceptor/pkg/contracts"
	"github.com/shuldan/errorinterceptor/pkg/errors"
)

// Record is one intercepted error as stored by a Sink.
type Record struct {
	ID         string    `json:"id"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	Details    string    `json:"details"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	RequestID  string    `json:"request_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewRecord(ctx contracts.HTTPContext, err error) Record {
	return Record{
		ID:         uuid.NewString(),
		Code:       string(errors.GetErrorCode(err)),
		Message:    err.Error(),
		Details:    errors.Describe(err),
		Method:     ctx.Method(),
		Path:       ctx.Path(),
		RequestID:  ctx.RequestID(),
		OccurredAt: time.Now().UTC(),
	}
}
