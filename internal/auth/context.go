package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/yash200611/launchmate/internal/auth/domain"
)

const CtxIdentity = "auth_identity"

// SetIdentity stores the resolved caller on the Gin context.
func SetIdentity(c *gin.Context, id domain.Identity) {
	c.Set(CtxIdentity, id)
}

// IdentityFrom extracts the identity set by the session middleware.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
