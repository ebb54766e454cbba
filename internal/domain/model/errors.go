package model

import "errors"

// Sentinel errors shared by the domain, the application layer and the
// stores. Callers match them with errors.Is; transports map them to
// status codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrInvalidScore    = errors.New("score must be a non-negative integer")
	ErrInvalidStatus   = errors.New("invalid record status")
	ErrFieldNotAllowed = errors.New("search field not allowed in this mode")
	ErrNotFound        = errors.New("not found")
	ErrReferenced      = errors.New("entity is referenced by existing records")
	ErrVersionConflict = errors.New("version conflict")
	ErrDuplicate       = errors.New("already exists")
	ErrBrokerInactive  = errors.New("broker account is inactive")
	ErrRateLimited     = errors.New("rate limit exceeded")
)
