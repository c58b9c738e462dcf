package apiclient

import "fmt"

// TransportError is the single error kind surfaced by the client. It wraps any
// network-level failure (timeout, connection refused, DNS, TLS) so that callers
// never see the transport library's own error types. A non-2xx status code is not
// an error; it is returned as a normal Response for the caller to inspect.
type TransportError struct {
	cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %s", e.cause)
}

func (e *TransportError) Unwrap() error {
	return e.cause
}

func newTransportError(cause error) *TransportError {
	return &TransportError{cause: cause}
}
