package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/yash200611/launchmate/internal/api/http"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("ownerEmail"))
	if err != nil {
		httpapi.WriteError(c, "list projects", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := httpapi.DecodeStrict(c, &req); err != nil {
		httpapi.WriteError(c, "create project", err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		httpapi.WriteError(c, "create project", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := httpapi.DecodeStrict(c, &req); err != nil {
		httpapi.WriteError(c, "update project", err)
		return
	}

	if err := h.svc.Update(c.Request.Context(), req.ID, req.UpdateInput); err != nil {
		httpapi.WriteError(c, "update project", err)
		return
	}
	c.JSON(http.StatusOK, successResp{Success: true})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Query("id")); err != nil {
		httpapi.WriteError(c, "delete project", err)
		return
	}
	c.JSON(http.StatusOK, successResp{Success: true})
}
