package services

import "errors"

// Error kinds returned by the services. Detail is added by wrapping with
// fmt.Errorf("%w: ...") and handlers match with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrDuplicateRequest   = errors.New("collaboration request already exists")
	ErrSelfCollaboration  = errors.New("cannot request to collaborate on your own idea")
	ErrInvalidTransition  = errors.New("collaboration request is no longer pending")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
)
