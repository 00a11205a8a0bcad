package service

import "errors"

// Domain errors. Handlers map these to stable client-visible codes;
// anything else is reported as a generic server error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed to act on this record")
	ErrConflict           = errors.New("relationship already exists")
	ErrInvalidState       = errors.New("transition not legal from current state")
	ErrInvalidOperation   = errors.New("operation cannot target yourself")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
