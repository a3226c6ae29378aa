package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yash200611/launchmate/internal/apperrors"
	"github.com/yash200611/launchmate/internal/logging"
)

// Request bodies are closed shapes; an unknown field is a client error.
func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

// DecodeStrict binds a JSON body into dst with c.ShouldBindJSON. Failures are
// validation errors.
func DecodeStrict(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return apperrors.Validation("", "Request body is required")
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("", "Request body is required")
		}
		return apperrors.Validation("", fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

// WriteError maps err to its status and writes {"error": msg}. Storage
// faults are logged with their cause and reported opaquely.
func WriteError(c *gin.Context, operation string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error().
			Err(err).
			Str("operation", operation).
			Msg("request failed")
	}

	body := gin.H{"error": apperrors.PublicMessage(err)}
	if field := apperrors.FieldOf(err); field != "" {
		body["field"] = field
	}
	c.JSON(status, body)
}
