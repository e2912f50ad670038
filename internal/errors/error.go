package errors

import "errors"

var (
	ErrEmptyAuth        = errors.New("missing authorization")
	ErrEmptySubject     = errors.New("missing subject")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrCsrfTokenInvalid = errors.New("invalid csrf token")
	ErrNotOwner         = errors.New("not the owner of the resource")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("password mismatch")
)
