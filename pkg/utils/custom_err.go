package utils

import "errors"

var (
	ErrNameRequired  = errors.New("shop name is required")
	ErrTooManyTags   = errors.New("at most 5 tags are allowed")
	ErrInvalidStatus = errors.New("invalid shop status")

	// ErrShopNotFound covers both "no such shop" and "not the caller's shop"
	// so responses never reveal whether another user's record exists.
	ErrShopNotFound = errors.New("shop not found or not permitted")

	ErrShopAlreadyRegistered = errors.New("shop already registered")

	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")

	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrPlacesUnavailable = errors.New("place lookup failed")

	ErrStorageFailure = errors.New("photo storage failure")
	ErrDatabaseError  = errors.New("database error")
)
