package images

import "fmt"

// Kind classifies a failed image operation.
type Kind int

const (
	// KindInvalid covers missing fields, disallowed extensions and bad paths.
	KindInvalid Kind = iota + 1
	// KindNotFound means no stored file matches the requested name.
	KindNotFound
	// KindInternal wraps unexpected I/O failures.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every Service operation that fails.
// Message is safe to show to clients; Err carries the underlying cause.
type Error struct {
	Kind    Kind
	Op      string
	Name    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	s := e.Op
	if e.Name != "" {
		s += " " + e.Name
	}
	s += ": " + e.Message
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func invalid(op, name, msg string) *Error {
	return &Error{Kind: KindInvalid, Op: op, Name: name, Message: msg}
}
