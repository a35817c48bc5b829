package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrValidation              = errors.New("validation error")
	ErrDuplicateEmail          = errors.New("user already registered")
	ErrPrivilegedAccountExists = errors.New("an admin is already registered")
	ErrDuplicatePermitNumber   = errors.New("permit number already exists")
	ErrNotRegistered           = errors.New("user not registered")
	ErrIncorrectSecret         = errors.New("incorrect password")
	ErrNotFound                = errors.New("permit not found")
	ErrInternal                = errors.New("internal error")
)

func internalErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
