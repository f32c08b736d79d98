package service

// ValidationError reports caller input the service refuses to act on.
type ValidationError struct {
	message string
}

// Error returns the error message.
func (e *ValidationError) Error() string {
	return e.message
}
