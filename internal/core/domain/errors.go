package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Staff errors
var (
	ErrStaffNotFound      = errors.New("staff not found")
	ErrStaffAlreadyExists = errors.New("staff already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

// Matter errors
var (
	ErrMatterNotFound      = errors.New("matter not found")
	ErrMatterAlreadyExists = errors.New("matter already exists")
)
