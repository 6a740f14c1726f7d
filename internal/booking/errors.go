package booking

import "errors"

// Domain error taxonomy. Handlers map these onto HTTP statuses; anything
// not wrapping one of them surfaces as a 500 with the raw error text.
var (
	ErrNotFound      = errors.New("not found")
	ErrNotAuthorized = errors.New("not authorized")
	ErrInvalidState  = errors.New("action not allowed in current status")
	ErrInvalidInput  = errors.New("invalid input")
)
