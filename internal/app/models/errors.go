package models

import "errors"

// Domain errors shared by services and handlers.
var (
	ErrNotFound      = errors.New("requested item not found")
	ErrBadRequest    = errors.New("bad request")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidDate   = errors.New("invalid date")
	ErrMissingAPIKey = errors.New("provider API key not configured")
	ErrUpstream      = errors.New("upstream provider failed")
	ErrBusy          = errors.New("a request for this purpose is already in flight")
)
