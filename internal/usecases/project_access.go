package usecases

import (
	"context"
	"errors"
	"fmt"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"github.com/google/uuid"
)

// AccessOptions tunes a project access check.
type AccessOptions struct {
	// AdminBypass skips the ownership step. The caller decides; the check
	// never looks at the acting user's role.
	AdminBypass bool
}

// ProjectAccess is the gate every mutating project operation goes through.
type ProjectAccess struct {
	projectRepo repositories.ProjectRepository
	companyRepo repositories.CompanyProfileRepository
}

func NewProjectAccess(projectRepo repositories.ProjectRepository, companyRepo repositories.CompanyProfileRepository) *ProjectAccess {
	return &ProjectAccess{projectRepo: projectRepo, companyRepo: companyRepo}
}

// Check loads the project and verifies that userID's company owns it and that
// its status is one of allowed. A nil allowed list accepts any status.
func (a *ProjectAccess) Check(ctx context.Context, projectID, userID uuid.UUID, allowed []entities.ProjectStatus, opts AccessOptions) (*entities.Project, error) {
	project, err := a.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errProjectNotFound()
		}
		return nil, domainerrors.InternalError(err)
	}

	if !opts.AdminBypass {
		company, err := a.companyRepo.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InternalError(err)
		}
		if company == nil || company.ID != project.CompanyID {
			return nil, domainerrors.Forbidden("access denied: you are not the owner of this project").
				WithCode(domainerrors.CodeNotProjectOwner)
		}
	}

	if allowed != nil && !containsStatus(allowed, project.Status) {
		return nil, domainerrors.Forbidden(fmt.Sprintf("action not allowed for project with status '%s'", project.Status)).
			WithCode(domainerrors.CodeProjectStatusNotAllowed).
			WithDetail("currentStatus", project.Status)
	}

	return project, nil
}

func containsStatus(set []entities.ProjectStatus, s entities.ProjectStatus) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func errProjectNotFound() *domainerrors.AppError {
	return domainerrors.NotFound("project not found").WithCode(domainerrors.CodeProjectNotFound)
}
