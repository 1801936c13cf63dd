package handlers

import (
	"context"
	"net/http"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/interfaces/http/middleware"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectService is implemented by usecases.ProjectUsecase.
type ProjectService interface {
	Create(ctx context.Context, userID uuid.UUID, input *entities.ProjectInput) (*entities.Project, error)
	Update(ctx context.Context, actor *usecases.Actor, projectID uuid.UUID, input *entities.ProjectInput) (*entities.Project, error)
	Submit(ctx context.Context, userID, projectID uuid.UUID) (*entities.Project, error)
	Review(ctx context.Context, adminID, projectID uuid.UUID, input *entities.ReviewInput) (*entities.Project, error)
	Get(ctx context.Context, viewer *usecases.Actor, projectID uuid.UUID) (*entities.ProjectPage, error)
	List(ctx context.Context, viewer *usecases.Actor, q usecases.ListProjectsQuery) ([]*entities.Project, utils.PaginationMeta, error)
	AddTeamMember(ctx context.Context, actor *usecases.Actor, projectID uuid.UUID, input *entities.TeamMemberInput) (*entities.ProjectTeamMember, error)
	RemoveTeamMember(ctx context.Context, actor *usecases.Actor, projectID, memberID uuid.UUID) error
	AddFAQ(ctx context.Context, actor *usecases.Actor, projectID uuid.UUID, input *entities.FAQInput) (*entities.ProjectFAQ, error)
	RemoveFAQ(ctx context.Context, actor *usecases.Actor, projectID, faqID uuid.UUID) error
}

// ProjectHandler serves the project catalogue and the company side of the lifecycle.
type ProjectHandler struct {
	projects ProjectService
}

func NewProjectHandler(projects ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create starts a draft for the caller's company
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var input entities.ProjectInput
	if !bindJSON(c, &input) {
		return
	}
	project, err := h.projects.Create(c.Request.Context(), a.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"project": project})
}

// List returns the catalogue; ?mine=true lists the caller's own projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	q := usecases.ListProjectsQuery{
		Industry: c.Query("industry"),
		Impact:   c.Query("impact"),
		Mine:     c.Query("mine") == "true",
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	items, meta, err := h.projects.List(c.Request.Context(), middleware.CurrentActor(c), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "meta": meta})
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	page, err := h.projects.Get(c.Request.Context(), middleware.CurrentActor(c), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	var input entities.ProjectInput
	if !bindJSON(c, &input) {
		return
	}
	project, err := h.projects.Update(c.Request.Context(), a, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"project": project})
}

// POST /api/projects/:id/submit
func (h *ProjectHandler) Submit(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	project, err := h.projects.Submit(c.Request.Context(), a.UserID, projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Project submitted for review",
		"project": project,
	})
}

// POST /api/projects/:id/review
func (h *ProjectHandler) Review(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	var input entities.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	project, err := h.projects.Review(c.Request.Context(), a.UserID, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message": "Project " + string(project.Status),
		"project": project,
	})
}

// POST /api/projects/:id/team
func (h *ProjectHandler) AddTeamMember(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	var input entities.TeamMemberInput
	if !bindJSON(c, &input) {
		return
	}
	member, err := h.projects.AddTeamMember(c.Request.Context(), a, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"teamMember": member})
}

// DELETE /api/projects/:id/team/:memberId
func (h *ProjectHandler) RemoveTeamMember(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	memberID, ok := paramID(c, "memberId", "team member")
	if !ok {
		return
	}
	if err := h.projects.RemoveTeamMember(c.Request.Context(), a, projectID, memberID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/projects/:id/faqs
func (h *ProjectHandler) AddFAQ(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	var input entities.FAQInput
	if !bindJSON(c, &input) {
		return
	}
	faq, err := h.projects.AddFAQ(c.Request.Context(), a, projectID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"faq": faq})
}

// DELETE /api/projects/:id/faqs/:faqId
func (h *ProjectHandler) RemoveFAQ(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	projectID, ok := paramID(c, "id", "project")
	if !ok {
		return
	}
	faqID, ok := paramID(c, "faqId", "faq")
	if !ok {
		return
	}
	if err := h.projects.RemoveFAQ(c.Request.Context(), a, projectID, faqID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
