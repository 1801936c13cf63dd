package repositories

import (
	"context"
	"time"

	"crowdfund.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ProjectRepository defines project data operations.
//
// UpdateContent and Transition are conditional on the status the caller
// observed; when the stored status differs they return errors.ErrConflict
// and write nothing.
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, int64, error)
	UpdateContent(ctx context.Context, project *entities.Project, expected entities.ProjectStatus) error
	Transition(ctx context.Context, project *entities.Project, from entities.ProjectStatus) error
	ListEndedActive(ctx context.Context, now time.Time, limit int) ([]*entities.Project, error)
}

// ProjectTeamRepository stores team members shown on a project page
type ProjectTeamRepository interface {
	Create(ctx context.Context, member *entities.ProjectTeamMember) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectTeamMember, error)
	Delete(ctx context.Context, projectID, id uuid.UUID) error
}

// ProjectFAQRepository stores FAQ entries shown on a project page
type ProjectFAQRepository interface {
	Create(ctx context.Context, faq *entities.ProjectFAQ) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectFAQ, error)
	Delete(ctx context.Context, projectID, id uuid.UUID) error
}
