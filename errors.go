package forwardauth

import (
	"errors"
)

// ErrNoUsers is returned when the middleware is built without a user store
var ErrNoUsers = errors.New("user store is required")

// ErrNoSessionIssuer is returned when the middleware is built without a
// session issuance primitive
var ErrNoSessionIssuer = errors.New("session issuer is required")

// ErrNoEmptyString rejects empty secrets when hashing
var ErrNoEmptyString = errors.New("string must not be empty")

// ErrDefaultRoleMissing signals the store has no member role to assign
var ErrDefaultRoleMissing = errors.New("default member role not found")
