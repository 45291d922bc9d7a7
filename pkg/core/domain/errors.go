package domain

import "errors"

// Anything not matching one of these is a transient store or network failure.
var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrLimitExceeded          = errors.New("link limit reached for current plan")
	ErrHandleTaken            = errors.New("handle already taken")
	ErrUpgradeRequired        = errors.New("upgrade required")
	ErrSuggestionsUnavailable = errors.New("suggestions unavailable")
)
