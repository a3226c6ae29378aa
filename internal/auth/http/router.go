package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yash200611/launchmate/internal/auth/middleware"
)

// Register mounts the auth routes. The combined endpoint is served on the
// group root; /api/auth.js is mounted as its alias by the router.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.Authenticate)
	rg.POST("/register", h.RegisterUser)
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", middleware.RequireSession(h.authService, h.cookie.Name), h.Me)
}

// RegisterProfiles mounts the profile endpoint, served at /api/users.
func (h *Handler) RegisterProfiles(rg *gin.RouterGroup) {
	rg.POST("", h.CreateProfile)
}
