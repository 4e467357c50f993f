package core

import "errors"

// Validation errors (registration input)
var (
	ErrWeakPassword     = errors.New("password is too short")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUsernameRequired = errors.New("username is required")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Access errors
var (
	ErrAccessDenied   = errors.New("access denied")
	ErrUnknownSession = errors.New("unknown session")
)

// Transfer errors
var (
	ErrInvalidAmount     = errors.New("invalid transfer amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownRecipient  = errors.New("unknown recipient")
)

// Storage and session errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrCacheNotFound   = errors.New("session not found in cache")
)

// Config errors (wiring-time)
var (
	ErrInvalidRole = errors.New("invalid role")
)
