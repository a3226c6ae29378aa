package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/yash200611/launchmate/internal/api/http"
	"github.com/yash200611/launchmate/internal/auth"
	"github.com/yash200611/launchmate/internal/auth/domain"
)

// Authenticator is implemented by *service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (domain.Identity, error)
}

// RequireSession resolves the caller from the session cookie or a Bearer
// token and stores the identity on the context. It answers 401 otherwise.
func RequireSession(a Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c, cookieName)
		if raw == "" {
			httpapi.WriteError(c, "authenticate", domain.ErrNotAuthenticated)
			c.Abort()
			return
		}

		id, err := a.Authenticate(c.Request.Context(), raw)
		if err != nil {
			httpapi.WriteError(c, "authenticate", err)
			c.Abort()
			return
		}

		auth.SetIdentity(c, id)
		c.Next()
	}
}

// ExtractToken prefers the Authorization header over the session cookie.
func ExtractToken(c *gin.Context, cookieName string) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return strings.TrimSpace(v)
	}
	return ""
}
