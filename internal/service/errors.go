package service

import "errors"

// Error kinds. Every error returned by the services unwraps to one of these.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("bad request")
	ErrNoChange           = errors.New("no change")
	ErrNotModified        = errors.New("not modified")
	ErrServer             = errors.New("server error")
)

// Error pairs a kind with the message shown to the client.
type Error struct {
	Kind    error
	Message string
	// Err is the underlying cause, kept for logs only.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func serverError(message string, cause error) *Error {
	return &Error{Kind: ErrServer, Message: message, Err: cause}
}
