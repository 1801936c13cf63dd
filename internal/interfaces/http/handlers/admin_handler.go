package handlers

import (
	"context"
	"net/http"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminService is implemented by usecases.AdminUsecase.
type AdminService interface {
	ListProjects(ctx context.Context, q usecases.AdminProjectQuery) ([]*entities.Project, utils.PaginationMeta, error)
	ProjectDetail(ctx context.Context, adminID, projectID uuid.UUID) (*entities.ProjectDetail, error)
}

// StatusChanger is the lifecycle entry point for the admin status endpoint.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, adminID, projectID uuid.UUID, input *entities.ReviewInput) (*entities.Project, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	admin    AdminService
	projects StatusChanger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin AdminService, projects StatusChanger) *AdminHandler {
	return &AdminHandler{admin: admin, projects: projects}
}

// ListProjects is the review queue
// GET /api/admin/projects?status=&page=&limit=&sort=&order=
func (h *AdminHandler) ListProjects(c *gin.Context) {
	q := usecases.AdminProjectQuery{
		Status: c.Query("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
	items, meta, err := h.admin.ListProjects(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "meta": meta})
}

// ProjectDetail returns the project with statistics and risk indicators
// GET /api/admin/projects/:projectId
func (h *AdminHandler) ProjectDetail(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "projectId", "project")
	if !ok {
		return
	}
	detail, err := h.admin.ProjectDetail(c.Request.Context(), a.UserID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// ChangeStatus moves a project through the lifecycle
// PATCH /api/admin/projects/:projectId/status
func (h *AdminHandler) ChangeStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "projectId", "project")
	if !ok {
		return
	}
	var input entities.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	project, err := h.projects.ChangeStatus(c.Request.Context(), a.UserID, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}
