package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// InvocationError wraps any failure of the upstream call. Its message is the
// upstream message unchanged so it can be shown to the user as is.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string {
	if e.Err == nil {
		return "model invocation failed"
	}
	return e.Err.Error()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
