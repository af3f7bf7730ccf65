package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the backend is unreachable (no response at all)
	ErrServerOffline = errors.New("server is unreachable")

	// ErrAuthFailed indicates the stored session token was rejected
	ErrAuthFailed = errors.New("session token is invalid")

	// ErrInvalidCredentials indicates a login attempt was rejected
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrLoginRequired indicates the operation needs an authenticated session
	ErrLoginRequired = errors.New("must be logged in")
)
