package clinicapi

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from the clinic backend. Message carries
// the backend's own message body when one was present, so callers can show
// it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("clinic api: unexpected status %d", e.Status)
}

// HasMessage reports whether the backend supplied its own message.
func (e *APIError) HasMessage() bool { return e.Message != "" }

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// ErrDoctorNotFound is returned when neither the detail endpoint nor the
// list fallback yields the requested doctor.
var ErrDoctorNotFound = errors.New("doctor not found")
