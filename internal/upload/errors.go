package upload

import (
	"errors"
	"fmt"
)

// GenericFailureMessage is shown when the server rejects an upload without
// saying why.
const GenericFailureMessage = "Upload failed"

// ServerError is a non-success response from the analysis endpoint.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError means the request never completed.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means the server reported success but its body is not an
// analysis document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsServerError reports whether any error in err's chain is a *ServerError.
func IsServerError(err error) bool {
	var target *ServerError
	return errors.As(err, &target)
}

// IsTransportError reports whether any error in err's chain is a *TransportError.
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// IsDecodeError reports whether any error in err's chain is a *DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// Message returns the user-facing text for an upload failure.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericFailureMessage
}

func errorf(format string, args ...any) error {
	return &TransportError{Err: fmt.Errorf(format, args...)}
}
