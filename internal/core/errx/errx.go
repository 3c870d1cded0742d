// Package errx defines the error taxonomy shared by every pipeline stage.
// Errors carry a Kind so the CLI entry point can report what failed without
// inspecting stage internals; everything propagates, nothing is retried.
package errx

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindData covers missing, unreadable or empty CSV input.
	KindData Kind = iota + 1
	// KindTemplate covers unknown deck template names.
	KindTemplate
	// KindNarrator covers language model transport or API failures.
	KindNarrator
	// KindRender covers chart and deck write failures.
	KindRender
)

// String returns the human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindTemplate:
		return "template"
	case KindNarrator:
		return "narrator"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind and a safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Kind == e.Kind
	}
	return errors.Is(e.Err, target)
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an existing error. Returns nil when
// err is nil so call sites can wrap unconditionally.
func Wrap(kind Kind, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the Kind from an error chain, or 0 when no Error is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
