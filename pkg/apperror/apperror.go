package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindDependencyConflict
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindDependencyConflict:
		return "dependency_conflict"
	case KindUpstream:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// Error is the typed error surfaced by services to the HTTP boundary.
type Error struct {
	Kind    Kind
	Message string
	Field   string            // offending field for conflicts
	Fields  map[string]string // per-field messages for validation failures
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUnauthenticated is returned for every credential or token failure so
// callers cannot tell an unknown user from a bad password.
var ErrUnauthenticated = &Error{
	Kind:    KindUnauthenticated,
	Message: "could not validate credentials",
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func InvalidField(field, message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("validation failed: %s", field),
		Fields:  map[string]string{field: message},
	}
}

func Conflict(field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: fmt.Sprintf("%s already exists", field),
		Field:   field,
	}
}

func NotFound(entity, id string) *Error {
	if id == "" {
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", entity)}
	}
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func DependencyConflict(message string) *Error {
	return &Error{Kind: KindDependencyConflict, Message: message}
}

func Upstream(operation string, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: fmt.Sprintf("%s unavailable", operation),
		Err:     err,
	}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
