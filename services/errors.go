package services

import "errors"

// Domain errors translated to HTTP status codes at the controller boundary.
// Cross-owner access surfaces as ErrNotFound everywhere so a caller cannot
// tell "exists but not yours" from "does not exist".
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("record not found")
	ErrEmailInUse         = errors.New("email already in use")
)
