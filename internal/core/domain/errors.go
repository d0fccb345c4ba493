package domain

import "errors"

// Authentication and authorization failures.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotAcceptable      = errors.New("resource not owned by caller")
	ErrSecretTooLong      = errors.New("password must be at most 72 bytes")
)

// Lookup failures. Each specific error wraps ErrNotFound so callers that do not
// care which record was missing can match on the generic one.
var (
	ErrNotFound          = errors.New("not found")
	ErrPrincipalNotFound = notFound("principal not found")
	ErrProductNotFound   = notFound("product not found")
	ErrImageNotFound     = notFound("image not found")
	ErrOrderNotFound     = notFound("order not found")
)

// Uniqueness violations, all wrapping ErrConflict.
var (
	ErrConflict          = errors.New("conflict")
	ErrPrincipalExists   = conflict("principal already exists")
	ErrCardExists        = conflict("card already registered")
	ErrBankAccountExists = conflict("bank account already registered")
	ErrOrderInProgress   = conflict("an order with this idempotency key is still being placed")
)

type notFoundError struct{ msg string }

func notFound(msg string) error { return &notFoundError{msg: msg} }

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }

type conflictError struct{ msg string }

func conflict(msg string) error { return &conflictError{msg: msg} }

func (e *conflictError) Error() string { return e.msg }

func (e *conflictError) Unwrap() error { return ErrConflict }
