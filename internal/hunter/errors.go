package hunter

import (
	"fmt"
)

// RequestError reports a failed round trip: either the transport failed
// (StatusCode is 0 and Cause is set) or the service answered with a
// non-success status.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: HTTP status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP status %d", e.Endpoint, e.StatusCode)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Message, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ResponseError reports a successful status whose body could not be
// understood.
type ResponseError struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
