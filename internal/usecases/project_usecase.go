package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

var (
	editableByCompany   = []entities.ProjectStatus{entities.ProjectStatusDraft}
	reviewDecisions     = []entities.ProjectStatus{entities.ProjectStatusApproved, entities.ProjectStatusRejected}
	adminStatusChanges  = []entities.ProjectStatus{entities.ProjectStatusUnderReview, entities.ProjectStatusApproved, entities.ProjectStatusRejected, entities.ProjectStatusActive}
	publicSortWhitelist = map[string]bool{"created_at": true, "updated_at": true, "title": true, "funding_goal": true}
)

// ListProjectsQuery is the catalogue query accepted by GET /projects.
type ListProjectsQuery struct {
	Industry string
	Impact   string
	Mine     bool
	Page     int
	Limit    int
	Sort     string
	Order    string
}

// ProjectUsecase drives the project lifecycle.
type ProjectUsecase struct {
	projectRepo  repositories.ProjectRepository
	companyRepo  repositories.CompanyProfileRepository
	userRepo     repositories.UserRepository
	documentRepo repositories.DocumentRepository
	teamRepo     repositories.ProjectTeamRepository
	faqRepo      repositories.ProjectFAQRepository
	access       *ProjectAccess
	notifier     Notifier
	metrics      MetricsRecorder
	now          func() time.Time
}

func NewProjectUsecase(
	projectRepo repositories.ProjectRepository,
	companyRepo repositories.CompanyProfileRepository,
	userRepo repositories.UserRepository,
	documentRepo repositories.DocumentRepository,
	teamRepo repositories.ProjectTeamRepository,
	faqRepo repositories.ProjectFAQRepository,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo:  projectRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		documentRepo: documentRepo,
		teamRepo:     teamRepo,
		faqRepo:      faqRepo,
		access:       NewProjectAccess(projectRepo, companyRepo),
		notifier:     nopNotifier{},
		metrics:      nopMetrics{},
		now:          time.Now,
	}
}

func (u *ProjectUsecase) SetNotifier(n Notifier) {
	if n != nil {
		u.notifier = n
	}
}

func (u *ProjectUsecase) SetMetrics(m MetricsRecorder) {
	if m != nil {
		u.metrics = m
	}
}

func (u *ProjectUsecase) SetNow(now func() time.Time) {
	if now != nil {
		u.now = now
	}
}

// Create stores a new draft owned by the caller's company.
func (u *ProjectUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.ProjectInput) (*entities.Project, error) {
	company, err := u.companyRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("a company profile is required to create projects").
				WithCode(domainerrors.CodeCompanyProfileRequired)
		}
		return nil, domainerrors.InternalError(err)
	}

	project := &entities.Project{
		CompanyID: company.ID,
		Status:    entities.ProjectStatusDraft,
	}
	if violations := applyProjectInput(project, input, true); len(violations) > 0 {
		return nil, validationFailed(violations)
	}

	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	logger.Info(ctx, "Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("company_id", company.ID.String()),
	)
	return project, nil
}

// Update edits content. Companies may only edit drafts they own; admins edit any status.
func (u *ProjectUsecase) Update(ctx context.Context, actor *Actor, projectID uuid.UUID, input *entities.ProjectInput) (*entities.Project, error) {
	allowed := editableByCompany
	if actor.IsAdmin() {
		allowed = nil
	}
	project, err := u.access.Check(ctx, projectID, actor.UserID, allowed, AccessOptions{AdminBypass: actor.IsAdmin()})
	if err != nil {
		return nil, err
	}

	observed := project.Status
	if violations := applyProjectInput(project, input, false); len(violations) > 0 {
		return nil, validationFailed(violations)
	}
	if err := u.projectRepo.UpdateContent(ctx, project, observed); err != nil {
		return nil, mapWriteError(err)
	}
	return project, nil
}

// Submit moves a complete draft to submitted.
func (u *ProjectUsecase) Submit(ctx context.Context, userID, projectID uuid.UUID) (*entities.Project, error) {
	project, err := u.access.Check(ctx, projectID, userID, editableByCompany, AccessOptions{})
	if err != nil {
		return nil, err
	}

	docs, err := u.documentRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	if err := CheckSubmissionReadiness(project, docs).Err(); err != nil {
		return nil, err
	}

	next := *project
	next.Status = entities.ProjectStatusSubmitted
	next.SubmittedAt = null.TimeFrom(u.now().UTC())
	if err := u.transition(ctx, &next, project.Status); err != nil {
		return nil, err
	}

	publish(ctx, u.notifier, entities.DomainEvent{
		Type:    entities.EventProjectSubmitted,
		Subject: fmt.Sprintf("Project \"%s\" submitted for review", next.Title),
		Data:    map[string]interface{}{"projectId": next.ID.String(), "companyId": next.CompanyID.String()},
	})
	return &next, nil
}

// Review records an admin decision on a submitted or under_review project.
func (u *ProjectUsecase) Review(ctx context.Context, adminID, projectID uuid.UUID, input *entities.ReviewInput) (*entities.Project, error) {
	var violations []violation
	if !containsStatus(reviewDecisions, input.Status) {
		violations = append(violations, violation{domainerrors.CodeInvalidStatus, "status", "status must be one of: approved, rejected"})
	}
	if input.RiskRating != nil && (*input.RiskRating < 1 || *input.RiskRating > 5) {
		violations = append(violations, violation{domainerrors.CodeInvalidRiskRating, "risk_rating", "risk rating must be between 1 and 5"})
	}
	if len(violations) > 0 {
		return nil, validationFailed(violations)
	}

	project, err := u.access.Check(ctx, projectID, adminID, nil, AccessOptions{AdminBypass: true})
	if err != nil {
		return nil, err
	}
	if !project.Status.IsReviewable() {
		return nil, notReviewable(project.Status)
	}

	next := *project
	next.Status = input.Status
	reviewer := adminID
	next.ReviewerID = &reviewer
	next.ReviewedAt = null.TimeFrom(u.now().UTC())
	if input.ReviewNotes != nil {
		next.ReviewNotes = null.StringFrom(*input.ReviewNotes)
	}
	if input.RiskRating != nil {
		next.RiskRating = null.IntFrom(*input.RiskRating)
	}
	if err := u.transition(ctx, &next, project.Status); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Project reviewed",
		zap.String("project_id", next.ID.String()),
		zap.String("reviewer_id", adminID.String()),
		zap.String("status", string(next.Status)),
	)
	subject, body := ReviewMessage(&next)
	publish(ctx, u.notifier, entities.DomainEvent{
		Type:      entities.EventProjectReviewed,
		Recipient: u.ownerEmail(ctx, next.CompanyID),
		Subject:   subject,
		Message:   body,
		Data: map[string]interface{}{
			"projectId": next.ID.String(),
			"status":    string(next.Status),
		},
	})
	return &next, nil
}

// StartReview marks a submitted project as picked up by an admin.
func (u *ProjectUsecase) StartReview(ctx context.Context, adminID, projectID uuid.UUID) (*entities.Project, error) {
	project, err := u.access.Check(ctx, projectID, adminID, nil, AccessOptions{AdminBypass: true})
	if err != nil {
		return nil, err
	}
	if project.Status != entities.ProjectStatusSubmitted {
		return nil, notReviewable(project.Status)
	}

	next := *project
	next.Status = entities.ProjectStatusUnderReview
	reviewer := adminID
	next.ReviewerID = &reviewer
	if err := u.transition(ctx, &next, project.Status); err != nil {
		return nil, err
	}
	return &next, nil
}

// Activate opens an approved project for funding for duration_months from today.
func (u *ProjectUsecase) Activate(ctx context.Context, adminID, projectID uuid.UUID) (*entities.Project, error) {
	project, err := u.access.Check(ctx, projectID, adminID, nil, AccessOptions{AdminBypass: true})
	if err != nil {
		return nil, err
	}
	if project.Status != entities.ProjectStatusApproved {
		return nil, domainerrors.Validation(domainerrors.CodeProjectNotActivatable,
			fmt.Sprintf("only approved projects can be activated, current status is '%s'", project.Status)).
			WithDetail("currentStatus", project.Status)
	}
	if !project.DurationMonths.Valid || project.DurationMonths.Int <= 0 {
		return nil, domainerrors.Validation(domainerrors.CodeMissingRequiredFields, "project has no duration").
			WithDetail("missingFields", []string{"duration_months"})
	}

	now := u.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := *project
	next.Status = entities.ProjectStatusActive
	next.StartDate = null.TimeFrom(start)
	next.EndDate = null.TimeFrom(start.AddDate(0, project.DurationMonths.Int, 0))
	if err := u.transition(ctx, &next, project.Status); err != nil {
		return nil, err
	}

	publish(ctx, u.notifier, entities.DomainEvent{
		Type:      entities.EventProjectActivated,
		Recipient: u.ownerEmail(ctx, next.CompanyID),
		Subject:   fmt.Sprintf("Project \"%s\" is now open for funding", next.Title),
		Data: map[string]interface{}{
			"projectId": next.ID.String(),
			"endDate":   next.EndDate.Time.Format(time.RFC3339),
		},
	})
	return &next, nil
}

// ChangeStatus is the admin status endpoint; it dispatches to the matching transition.
func (u *ProjectUsecase) ChangeStatus(ctx context.Context, adminID, projectID uuid.UUID, input *entities.ReviewInput) (*entities.Project, error) {
	switch input.Status {
	case entities.ProjectStatusUnderReview:
		return u.StartReview(ctx, adminID, projectID)
	case entities.ProjectStatusApproved, entities.ProjectStatusRejected:
		return u.Review(ctx, adminID, projectID, input)
	case entities.ProjectStatusActive:
		return u.Activate(ctx, adminID, projectID)
	}
	names := make([]string, 0, len(adminStatusChanges))
	for _, s := range adminStatusChanges {
		names = append(names, string(s))
	}
	return nil, domainerrors.Validation(domainerrors.CodeInvalidStatus,
		"invalid status, must be one of: "+strings.Join(names, ", "))
}

// Get returns a project page. Non public projects are visible to their owner and admins only.
func (u *ProjectUsecase) Get(ctx context.Context, viewer *Actor, projectID uuid.UUID) (*entities.ProjectPage, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errProjectNotFound()
		}
		return nil, domainerrors.InternalError(err)
	}
	if !project.Status.IsPublic() && !viewer.IsAdmin() {
		if viewer == nil || !u.ownsProject(ctx, viewer.UserID, project) {
			return nil, domainerrors.Forbidden("you are not allowed to view this project").
				WithCode(domainerrors.CodeInsufficientPermissions)
		}
	}

	team, err := u.teamRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	faqs, err := u.faqRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return &entities.ProjectPage{Project: project, TeamMembers: team, FAQs: faqs}, nil
}

// List returns the catalogue. Anonymous users and investors see public projects,
// admins see everything, and a company asking for its own projects sees all of them.
func (u *ProjectUsecase) List(ctx context.Context, viewer *Actor, q ListProjectsQuery) ([]*entities.Project, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(q.Page, q.Limit)
	filter := entities.ProjectFilter{
		Industry: q.Industry,
		Impact:   q.Impact,
		Sort:     "created_at",
		Order:    "DESC",
		Limit:    params.Limit,
		Offset:   params.CalculateOffset(),
	}
	if publicSortWhitelist[q.Sort] {
		filter.Sort = q.Sort
	}
	if strings.EqualFold(q.Order, "ASC") {
		filter.Order = "ASC"
	}

	switch {
	case q.Mine && viewer != nil && viewer.Role == entities.UserRoleCompany:
		company, err := u.companyRepo.GetByUserID(ctx, viewer.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return []*entities.Project{}, utils.CalculateMeta(0, params.Page, params.Limit), nil
			}
			return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
		}
		filter.CompanyID = &company.ID
	case viewer.IsAdmin():
	default:
		filter.Statuses = entities.PublicProjectStatuses
	}

	items, total, err := u.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return items, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

func (u *ProjectUsecase) AddTeamMember(ctx context.Context, actor *Actor, projectID uuid.UUID, input *entities.TeamMemberInput) (*entities.ProjectTeamMember, error) {
	if _, err := u.checkPageEdit(ctx, actor, projectID); err != nil {
		return nil, err
	}
	member := &entities.ProjectTeamMember{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(input.Name),
		Position:    strings.TrimSpace(input.Position),
		Bio:         input.Bio,
		LinkedInURL: input.LinkedInURL,
	}
	if err := u.teamRepo.Create(ctx, member); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return member, nil
}

func (u *ProjectUsecase) RemoveTeamMember(ctx context.Context, actor *Actor, projectID, memberID uuid.UUID) error {
	if _, err := u.checkPageEdit(ctx, actor, projectID); err != nil {
		return err
	}
	if err := u.teamRepo.Delete(ctx, projectID, memberID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("team member not found")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

func (u *ProjectUsecase) AddFAQ(ctx context.Context, actor *Actor, projectID uuid.UUID, input *entities.FAQInput) (*entities.ProjectFAQ, error) {
	if _, err := u.checkPageEdit(ctx, actor, projectID); err != nil {
		return nil, err
	}
	faq := &entities.ProjectFAQ{
		ProjectID: projectID,
		Question:  strings.TrimSpace(input.Question),
		Answer:    strings.TrimSpace(input.Answer),
	}
	if err := u.faqRepo.Create(ctx, faq); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return faq, nil
}

func (u *ProjectUsecase) RemoveFAQ(ctx context.Context, actor *Actor, projectID, faqID uuid.UUID) error {
	if _, err := u.checkPageEdit(ctx, actor, projectID); err != nil {
		return err
	}
	if err := u.faqRepo.Delete(ctx, projectID, faqID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("faq not found")
		}
		return domainerrors.InternalError(err)
	}
	return nil
}

func (u *ProjectUsecase) checkPageEdit(ctx context.Context, actor *Actor, projectID uuid.UUID) (*entities.Project, error) {
	if actor.IsAdmin() {
		return u.access.Check(ctx, projectID, actor.UserID, nil, AccessOptions{AdminBypass: true})
	}
	return u.access.Check(ctx, projectID, actor.UserID, editableByCompany, AccessOptions{})
}

func (u *ProjectUsecase) transition(ctx context.Context, next *entities.Project, from entities.ProjectStatus) error {
	if !from.CanTransitionTo(next.Status) {
		return domainerrors.Validation(domainerrors.CodeInvalidStatus,
			fmt.Sprintf("cannot move project from '%s' to '%s'", from, next.Status))
	}
	if err := u.projectRepo.Transition(ctx, next, from); err != nil {
		return mapWriteError(err)
	}
	u.metrics.RecordTransition(string(from), string(next.Status))
	return nil
}

func (u *ProjectUsecase) ownsProject(ctx context.Context, userID uuid.UUID, project *entities.Project) bool {
	company, err := u.companyRepo.GetByUserID(ctx, userID)
	return err == nil && company.ID == project.CompanyID
}

func (u *ProjectUsecase) ownerEmail(ctx context.Context, companyID uuid.UUID) string {
	company, err := u.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		logger.Warn(ctx, "Company lookup for notification failed", zap.String("company_id", companyID.String()), zap.Error(err))
		return ""
	}
	user, err := u.userRepo.GetByID(ctx, company.UserID)
	if err != nil {
		logger.Warn(ctx, "Owner lookup for notification failed", zap.String("company_id", companyID.String()), zap.Error(err))
		return ""
	}
	return user.Email
}

func notReviewable(status entities.ProjectStatus) error {
	return domainerrors.Validation(domainerrors.CodeProjectNotReviewable,
		fmt.Sprintf("project cannot be reviewed while '%s'", status)).
		WithDetail("currentStatus", status)
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, domainerrors.ErrConflict):
		return domainerrors.Conflict("project status changed concurrently, reload and retry").
			WithCode(domainerrors.CodeProjectStatusConflict)
	case errors.Is(err, domainerrors.ErrNotFound):
		return errProjectNotFound()
	}
	return domainerrors.InternalError(err)
}

type violation struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationFailed reports every violation; the response code is the first one's.
func validationFailed(violations []violation) error {
	messages := make([]string, 0, len(violations))
	for _, v := range violations {
		messages = append(messages, v.Message)
	}
	return domainerrors.Validation(violations[0].Code, strings.Join(messages, "; ")).
		WithDetail("errors", violations)
}

func applyProjectInput(p *entities.Project, in *entities.ProjectInput, creating bool) []violation {
	var out []violation
	invalid := func(field, msg string) {
		out = append(out, violation{domainerrors.CodeValidation, field, msg})
	}

	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if (creating || in.Title != nil) && p.Title == "" {
		invalid("title", "title is required")
	} else if len(p.Title) > 255 {
		invalid("title", "title must be at most 255 characters")
	}
	if in.ShortDescription != nil {
		p.ShortDescription = strings.TrimSpace(*in.ShortDescription)
		if len(p.ShortDescription) > 500 {
			invalid("shortDescription", "short description must be at most 500 characters")
		}
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.FundingType != nil {
		p.FundingType = entities.FundingType(*in.FundingType)
	}
	if (creating || in.FundingType != nil) && !p.FundingType.IsValid() {
		invalid("fundingType", "funding type must be one of: equity, donation")
	}
	if in.ImpactType != nil {
		p.ImpactType = entities.ImpactType(*in.ImpactType)
		if !p.ImpactType.IsValid() {
			invalid("impactType", "impact type must be one of: social, environmental, both, none")
		}
	}
	if in.IndustrySector != nil {
		p.IndustrySector = strings.TrimSpace(*in.IndustrySector)
	}
	if in.FundingGoal != nil {
		if *in.FundingGoal <= 0 {
			invalid("fundingGoal", "funding goal must be positive")
		}
		p.FundingGoal = null.Float64From(*in.FundingGoal)
	}
	if in.MinInvestment != nil {
		if *in.MinInvestment < 0 {
			invalid("minInvestment", "minimum investment cannot be negative")
		}
		p.MinInvestment = null.Float64From(*in.MinInvestment)
	}
	if p.MinInvestment.Valid && p.FundingGoal.Valid && p.MinInvestment.Float64 > p.FundingGoal.Float64 {
		invalid("minInvestment", "minimum investment cannot exceed the funding goal")
	}
	if in.DurationMonths != nil {
		if *in.DurationMonths < 1 || *in.DurationMonths > 120 {
			invalid("durationMonths", "duration must be between 1 and 120 months")
		}
		p.DurationMonths = null.IntFrom(*in.DurationMonths)
	}
	if in.ExpectedReturnRate != nil {
		if *in.ExpectedReturnRate < 0 || *in.ExpectedReturnRate > 100 {
			invalid("expectedReturnRate", "expected return rate must be between 0 and 100")
		}
		p.ExpectedReturnRate = null.Float64From(*in.ExpectedReturnRate)
	}
	if in.VideoURL != nil {
		p.VideoURL = strings.TrimSpace(*in.VideoURL)
		if p.VideoURL != "" {
			if parsed, err := url.ParseRequestURI(p.VideoURL); err != nil || parsed.Host == "" {
				invalid("videoUrl", "video url must be an absolute url")
			}
		}
	}
	return out
}
