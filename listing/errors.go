package listing

import "fmt"

// ErrorKind classifies a ParseError
type ErrorKind int

const (
	// MalformedXML means the text is not well-formed XML or has no document element
	MalformedXML ErrorKind = iota + 1
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedXML:
		return "malformed xml"
	default:
		return "unknown"
	}
}

// ErrMalformedXML matches any ParseError of kind MalformedXML with errors.Is
var ErrMalformedXML = &ParseError{Kind: MalformedXML}

// ParseError is returned by Parse when no listing can be produced.
// Detail separates decoder syntax errors ("not XML") from structural ones ("wrong shape").
type ParseError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("listing: %s", e.Kind)
	}
	return fmt.Sprintf("listing: %s: %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ParseError of the same kind
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func malformed(detail string, err error) *ParseError {
	return &ParseError{Kind: MalformedXML, Detail: detail, Err: err}
}
