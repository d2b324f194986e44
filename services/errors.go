package services

import "errors"

// Kind classifies a service failure. The HTTP layer maps each kind to a status code.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is the error type returned by every service operation.
type Error struct {
	Kind    Kind
	Message string
	// Count is set when a delete is blocked by dependent rows.
	Count *int64
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindUnexpected {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: err.Error(), Err: err}
}

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind Kind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}

func blockedByDependents(msg string, count int64) *Error {
	return &Error{Kind: KindConflict, Message: msg, Count: &count}
}
