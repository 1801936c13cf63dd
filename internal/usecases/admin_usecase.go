package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var adminSortWhitelist = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"submitted_at": true,
	"title":        true,
	"funding_goal": true,
}

// AdminProjectQuery is the review queue query. Status "all" lists every status.
type AdminProjectQuery struct {
	Status string
	Page   int
	Limit  int
	Sort   string
	Order  string
}

// AdminUsecase is the read side of the review workflow.
type AdminUsecase struct {
	projectRepo     repositories.ProjectRepository
	companyRepo     repositories.CompanyProfileRepository
	userRepo        repositories.UserRepository
	documentRepo    repositories.DocumentRepository
	transactionRepo repositories.TransactionRepository
	teamRepo        repositories.ProjectTeamRepository
	faqRepo         repositories.ProjectFAQRepository
	now             func() time.Time
}

func NewAdminUsecase(
	projectRepo repositories.ProjectRepository,
	companyRepo repositories.CompanyProfileRepository,
	userRepo repositories.UserRepository,
	documentRepo repositories.DocumentRepository,
	transactionRepo repositories.TransactionRepository,
	teamRepo repositories.ProjectTeamRepository,
	faqRepo repositories.ProjectFAQRepository,
) *AdminUsecase {
	return &AdminUsecase{
		projectRepo:     projectRepo,
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		documentRepo:    documentRepo,
		transactionRepo: transactionRepo,
		teamRepo:        teamRepo,
		faqRepo:         faqRepo,
		now:             time.Now,
	}
}

func (u *AdminUsecase) SetNow(now func() time.Time) {
	if now != nil {
		u.now = now
	}
}

// ListProjects defaults to the submitted queue, newest first, ten per page.
func (u *AdminUsecase) ListProjects(ctx context.Context, q AdminProjectQuery) ([]*entities.Project, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(q.Page, q.Limit)
	filter := entities.ProjectFilter{
		Sort:   "created_at",
		Order:  "DESC",
		Limit:  params.Limit,
		Offset: params.CalculateOffset(),
	}

	status := strings.TrimSpace(q.Status)
	switch {
	case status == "":
		filter.Statuses = []entities.ProjectStatus{entities.ProjectStatusSubmitted}
	case strings.EqualFold(status, "all"):
	default:
		s := entities.ProjectStatus(status)
		if !s.IsValid() {
			return nil, utils.PaginationMeta{}, domainerrors.Validation(domainerrors.CodeInvalidStatus, "unknown project status '"+status+"'")
		}
		filter.Statuses = []entities.ProjectStatus{s}
	}
	if adminSortWhitelist[q.Sort] {
		filter.Sort = q.Sort
	}
	if strings.EqualFold(q.Order, "ASC") {
		filter.Order = "ASC"
	}

	items, total, err := u.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return items, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// ProjectDetail loads everything a reviewer needs and derives the statistics.
func (u *AdminUsecase) ProjectDetail(ctx context.Context, adminID, projectID uuid.UUID) (*entities.ProjectDetail, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errProjectNotFound()
		}
		return nil, domainerrors.InternalError(err)
	}

	in := StatisticsInput{Project: project}

	company, err := u.companyRepo.GetByID(ctx, project.CompanyID)
	switch {
	case err == nil:
		in.Company = company
		founder, err := u.userRepo.GetByID(ctx, company.UserID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InternalError(err)
		}
		in.Founder = founder
	case !errors.Is(err, domainerrors.ErrNotFound):
		return nil, domainerrors.InternalError(err)
	}

	if in.Documents, err = u.documentRepo.ListByProject(ctx, project.ID); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if in.Transactions, err = u.transactionRepo.ListByProject(ctx, project.ID); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if in.TeamMembers, err = u.teamRepo.ListByProject(ctx, project.ID); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if in.FAQs, err = u.faqRepo.ListByProject(ctx, project.ID); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "Admin accessed project details",
		zap.String("admin_id", adminID.String()),
		zap.String("project_id", project.ID.String()),
	)

	return &entities.ProjectDetail{
		Project:        project,
		Company:        in.Company,
		Founder:        in.Founder,
		Documents:      in.Documents,
		TeamMembers:    in.TeamMembers,
		FAQs:           in.FAQs,
		Statistics:     ComputeProjectStatistics(in, u.now()),
		RiskIndicators: ComputeRiskIndicators(in),
	}, nil
}
