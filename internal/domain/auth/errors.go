package auth

import "errors"

var (
	// ErrBackendUnconfigured means no user store is available, so nobody can sign in.
	ErrBackendUnconfigured = errors.New("authentication backend is not configured")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
	ErrUserNotFound        = errors.New("admin user not found")
)
