package fetch

import "fmt"

// ErrTransport matches every *TransportError with errors.Is
var ErrTransport = &TransportError{}

// TransportError reports a failed document fetch: a network error or a non-success response.
type TransportError struct {
	// Op is the operation that failed (e.g. "get", "list-objects")
	Op string

	// Source is the URL or bucket the document was requested from
	Source string

	// StatusCode is the HTTP status, zero when no response was received
	StatusCode int

	// Err is the underlying error
	Err error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("fetch.%s %s: status %d: %v", e.Op, e.Source, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch.%s %s: status %d", e.Op, e.Source, e.StatusCode)
	default:
		return fmt.Sprintf("fetch.%s %s: %v", e.Op, e.Source, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *TransportError
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}
