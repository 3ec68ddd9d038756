package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Login flow taxonomy. Validation errors never reach the network; precondition
// errors ask the user to redo a step; rejections and provider errors are
// surfaced with deliberately generic messages.
var (
	ErrValidation   = errors.New("validation failed")
	ErrPrecondition = errors.New("precondition failed")
	ErrRejected     = errors.New("rejected")
	ErrProvider     = errors.New("identity provider error")
)
