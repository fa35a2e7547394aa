package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the request boundary, where it is mapped to
// an HTTP status. Everything below the handlers works with plain errors and
// wraps a Kind in only at the point the classification is known.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindForbidden
	KindAuth
	KindExternal
)

type Error struct {
	Kind    Kind
	Message string
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

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Auth(message string) error {
	return &Error{Kind: KindAuth, Message: message}
}

// External wraps a downstream platform API failure. There is no retry
// policy; every external failure is reported identically to the caller.
func External(message string, err error) error {
	return &Error{Kind: KindExternal, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
