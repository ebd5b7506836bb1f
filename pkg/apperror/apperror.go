// Package apperror defines the typed errors shared by the service layers.
// Handlers map an error to an HTTP status through its Kind, never through
// its message text.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	Internal Kind = iota
	Validation
	Conflict
	InvalidCredentials
	NotFound
	Storage
	Config
	Unauthorized
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case InvalidCredentials:
		return "invalid_credentials"
	case NotFound:
		return "not_found"
	case Storage:
		return "storage"
	case Config:
		return "config"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// AppError carries a kind, a client-safe message and the underlying cause.
// Fields holds per-field validation messages keyed by JSON name.
type AppError struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status for the error kind.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, fields map[string]string) *AppError {
	return &AppError{Kind: Validation, Message: message, Fields: fields}
}

func NewConflict(message string, err error) *AppError { return New(Conflict, message, err) }
func NewNotFound(message string) *AppError            { return New(NotFound, message, nil) }
func NewStorage(message string, err error) *AppError  { return New(Storage, message, err) }
func NewConfig(message string, err error) *AppError   { return New(Config, message, err) }
func NewInternal(message string, err error) *AppError { return New(Internal, message, err) }

// ErrInvalidCredentials is returned for every failed sign-in, whatever the
// cause, so callers cannot tell an unknown username from a wrong password.
var ErrInvalidCredentials = &AppError{Kind: InvalidCredentials, Message: "invalid credentials"}

// KindOf reports the kind of the first AppError in err's chain, or Internal.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// As returns the first AppError in err's chain. Errors that are not an
// AppError are wrapped as Internal.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal("internal server error", err)
}

func IsNotFound(err error) bool           { return err != nil && KindOf(err) == NotFound }
func IsConflict(err error) bool           { return err != nil && KindOf(err) == Conflict }
func IsValidation(err error) bool         { return err != nil && KindOf(err) == Validation }
func IsInvalidCredentials(err error) bool { return err != nil && KindOf(err) == InvalidCredentials }
func IsStorage(err error) bool            { return err != nil && KindOf(err) == Storage }
