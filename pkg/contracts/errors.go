package contracts

// ErrorFilter decides whether an error raised downstream should be handled
// by the error interceptor at all.
type ErrorFilter interface {
	FilterError(ctx HTTPContext, err error) bool
}

// ErrorLogger is invoked for every handled error. A non-empty message is
// written to the interceptor's log at its configured level.
type ErrorLogger interface {
	LogError(ctx HTTPContext, err error) (string, error)
}

// ResponseGenerator writes the error response itself. The returned flag
// tells the interceptor whether the chain continues afterwards.
type ResponseGenerator interface {
	GenerateResponse(ctx HTTPContext, err error) (bool, error)
}
