package domain

import "github.com/yash200611/launchmate/internal/apperrors"

var (
	ErrNotFound     = apperrors.NotFound("Project not found")
	ErrMissingOwner = apperrors.Validation("ownerEmail", "Missing ownerEmail in query")
	ErrMissingID    = apperrors.Validation("id", "Missing project id")
	ErrInvalidID    = apperrors.Validation("id", "Invalid project id")
)
