package domain

import "github.com/yash200611/launchmate/internal/apperrors"

var (
	ErrMissingFields      = apperrors.Validation("", "Missing fields")
	ErrInvalidAuthType    = apperrors.Validation("type", "Invalid auth type")
	ErrEmailRegistered    = apperrors.Validation("email", "Email already registered")
	ErrUserExists         = apperrors.Conflict("User already exists")
	ErrUserNotFound       = apperrors.NotFound("User not found")
	ErrIncorrectPassword  = apperrors.Auth("Incorrect password")
	ErrInvalidCredentials = apperrors.Auth("Invalid credentials")
	ErrNotAuthenticated   = apperrors.Auth("Not authenticated")
	ErrMissingProfile     = apperrors.Validation("", "Missing name or email")
)
