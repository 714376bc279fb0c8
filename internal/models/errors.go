package models

import "errors"

// Error constants for session and store operations
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionNotFound  = errors.New("no persisted session")
	ErrCorruptSession   = errors.New("persisted session is malformed")
	ErrEmptyCredentials = errors.New("email and password are required")
)
