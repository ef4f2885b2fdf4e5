package valueobject

// ValidationError is raised by value object constructors when raw input
// violates a domain rule. Field identifies the offending input and Message
// carries the user-facing text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
