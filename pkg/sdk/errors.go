package partscout

import "fmt"

// APIError is a non-2xx response from the service.
// Use errors.As() to inspect the code.
type APIError struct {
	Status  int    // HTTP status
	Code    string // machine-readable error code, e.g. "invalid_input"
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("partscout: %s (http %d): %s", e.Code, e.Status, e.Message)
}
