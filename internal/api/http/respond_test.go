package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yash200611/launchmate/internal/apperrors"
)

type sample struct {
	Name string `json:"name"`
}

func decodeCtx(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestDecodeStrict(t *testing.T) {
	var s sample
	require.NoError(t, DecodeStrict(decodeCtx(`{"name":"x"}`), &s))
	assert.Equal(t, "x", s.Name)

	for _, body := range []string{``, `{"name":"x","extra":1}`, `{"name":`, `[1]`} {
		err := DecodeStrict(decodeCtx(body), &sample{})
		require.Error(t, err, body)
		assert.True(t, apperrors.Is(err, apperrors.KindValidation), body)
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err       error
		status    int
		message   string
		wantField string
	}{
		{apperrors.Validation("title", "Missing required fields"), http.StatusBadRequest, "Missing required fields", "title"},
		{apperrors.Auth("Not authenticated"), http.StatusUnauthorized, "Not authenticated", ""},
		{apperrors.NotFound("User not found"), http.StatusNotFound, "User not found", ""},
		{apperrors.Conflict("User already exists"), http.StatusConflict, "User already exists", ""},
		{apperrors.Storage("insert", errors.New("socket closed")), http.StatusInternalServerError, "Internal server error", ""},
		{errors.New("boom"), http.StatusInternalServerError, "Internal server error", ""},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rr)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		WriteError(c, "test", tt.err)

		assert.Equal(t, tt.status, rr.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tt.message, body["error"])
		assert.Equal(t, tt.wantField, body["field"])
	}
}
