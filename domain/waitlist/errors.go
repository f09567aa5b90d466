package waitlist

import "errors"

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrAlreadyRegistered = errors.New("email already registered")
)
