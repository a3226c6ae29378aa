package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. The group is
// mounted at /api/projects; /api/projects.js is served as an alias.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PATCH("", h.update)
	rg.DELETE("", h.delete)
}
