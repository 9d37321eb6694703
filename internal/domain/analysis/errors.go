package analysis

// ValidationError is returned before any upstream call when the request is unusable.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
