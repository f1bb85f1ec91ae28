package models

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorage      = errors.New("storage failure")
)

// Error carries a message that is safe to show to API clients next to its kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func NewValidationError(msg string) error { return &Error{Kind: ErrValidation, Msg: msg} }

func NewConflictError(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }

func NewNotFoundError(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

func NewAuthorizationError(msg string) error { return &Error{Kind: ErrUnauthorized, Msg: msg} }

func NewStorageError(msg string) error { return &Error{Kind: ErrStorage, Msg: msg} }
