package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already registered")
	ErrValidation         = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrHashing            = errors.New("password hashing failed")

	ErrInvalidToken = errors.New("invalid token")
	// The three token failures below all match ErrInvalidToken with errors.Is.
	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenSignatureInvalid = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrTokenExpired          = fmt.Errorf("%w: expired", ErrInvalidToken)
)
