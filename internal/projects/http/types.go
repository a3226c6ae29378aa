package http

import (
	"github.com/yash200611/launchmate/internal/projects/domain"
	"github.com/yash200611/launchmate/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

type createReq = domain.CreateInput

// updateReq is the PATCH body: the project id plus the fields to change.
type updateReq struct {
	ID string `json:"id"`
	domain.UpdateInput
}

type successResp struct {
	Success bool `json:"success"`
}
