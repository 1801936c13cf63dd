package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/infrastructure/models"
	"crowdfund.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

var projectSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"submitted_at": "submitted_at",
	"title":        "title",
	"funding_goal": "funding_goal",
}

// ProjectRepository implements project persistence
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *entities.Project) error {
	if p.ID == uuid.Nil {
		p.ID = utils.GenerateUUIDv7()
	}
	if p.Status == "" {
		p.Status = entities.ProjectStatusDraft
	}
	m := r.toModel(p)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns one page of projects plus the total matching count.
func (r *ProjectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Project{})
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Industry != "" {
		query = query.Where("industry_sector = ?", filter.Industry)
	}
	if filter.Impact != "" {
		query = query.Where("impact_type = ?", filter.Impact)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := projectSortColumns[filter.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.Order == "ASC" {
		direction = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", column, direction))
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var ms []models.Project
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

// UpdateContent writes the editable fields if the status is still expected.
func (r *ProjectRepository) UpdateContent(ctx context.Context, p *entities.Project, expected entities.ProjectStatus) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.Project{}).
		Where("id = ? AND status = ?", p.ID, string(expected)).
		Updates(map[string]interface{}{
			"title":                p.Title,
			"short_description":    p.ShortDescription,
			"description":          p.Description,
			"funding_goal":         p.FundingGoal.Ptr(),
			"min_investment":       p.MinInvestment.Ptr(),
			"funding_type":         string(p.FundingType),
			"industry_sector":      p.IndustrySector,
			"impact_type":          string(p.ImpactType),
			"duration_months":      p.DurationMonths.Ptr(),
			"expected_return_rate": p.ExpectedReturnRate.Ptr(),
			"video_url":            p.VideoURL,
			"updated_at":           now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	p.UpdatedAt = now
	return nil
}

// Transition persists p.Status and the review and schedule fields that ride
// along with it, guarded by the status the caller read.
func (r *ProjectRepository) Transition(ctx context.Context, p *entities.Project, from entities.ProjectStatus) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.Project{}).
		Where("id = ? AND status = ?", p.ID, string(from)).
		Updates(map[string]interface{}{
			"status":       string(p.Status),
			"reviewer_id":  p.ReviewerID,
			"risk_rating":  p.RiskRating.Ptr(),
			"review_notes": p.ReviewNotes.Ptr(),
			"submitted_at": p.SubmittedAt.Ptr(),
			"reviewed_at":  p.ReviewedAt.Ptr(),
			"start_date":   p.StartDate.Ptr(),
			"end_date":     p.EndDate.Ptr(),
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	p.UpdatedAt = now
	return nil
}

// ListEndedActive returns active campaigns whose end date has passed.
func (r *ProjectRepository) ListEndedActive(ctx context.Context, now time.Time, limit int) ([]*entities.Project, error) {
	var ms []models.Project
	if err := GetDB(ctx, r.db).
		Where("status = ? AND end_date IS NOT NULL AND end_date <= ?", string(entities.ProjectStatusActive), now).
		Order("end_date ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *ProjectRepository) toModel(p *entities.Project) *models.Project {
	return &models.Project{
		ID:                 p.ID,
		CompanyID:          p.CompanyID,
		Title:              p.Title,
		ShortDescription:   p.ShortDescription,
		Description:        p.Description,
		FundingGoal:        p.FundingGoal.Ptr(),
		MinInvestment:      p.MinInvestment.Ptr(),
		FundingType:        string(p.FundingType),
		IndustrySector:     p.IndustrySector,
		ImpactType:         string(p.ImpactType),
		DurationMonths:     p.DurationMonths.Ptr(),
		ExpectedReturnRate: p.ExpectedReturnRate.Ptr(),
		VideoURL:           p.VideoURL,
		StartDate:          p.StartDate.Ptr(),
		EndDate:            p.EndDate.Ptr(),
		Status:             string(p.Status),
		ReviewerID:         p.ReviewerID,
		RiskRating:         p.RiskRating.Ptr(),
		ReviewNotes:        p.ReviewNotes.Ptr(),
		SubmittedAt:        p.SubmittedAt.Ptr(),
		ReviewedAt:         p.ReviewedAt.Ptr(),
	}
}

func (r *ProjectRepository) toEntity(m *models.Project) *entities.Project {
	return &entities.Project{
		ID:                 m.ID,
		CompanyID:          m.CompanyID,
		Title:              m.Title,
		ShortDescription:   m.ShortDescription,
		Description:        m.Description,
		FundingGoal:        null.Float64FromPtr(m.FundingGoal),
		MinInvestment:      null.Float64FromPtr(m.MinInvestment),
		FundingType:        entities.FundingType(m.FundingType),
		IndustrySector:     m.IndustrySector,
		ImpactType:         entities.ImpactType(m.ImpactType),
		DurationMonths:     null.IntFromPtr(m.DurationMonths),
		ExpectedReturnRate: null.Float64FromPtr(m.ExpectedReturnRate),
		VideoURL:           m.VideoURL,
		StartDate:          null.TimeFromPtr(m.StartDate),
		EndDate:            null.TimeFromPtr(m.EndDate),
		Status:             entities.ProjectStatus(m.Status),
		ReviewerID:         m.ReviewerID,
		RiskRating:         null.IntFromPtr(m.RiskRating),
		ReviewNotes:        null.StringFromPtr(m.ReviewNotes),
		SubmittedAt:        null.TimeFromPtr(m.SubmittedAt),
		ReviewedAt:         null.TimeFromPtr(m.ReviewedAt),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ProjectTeamRepository implements team member persistence
type ProjectTeamRepository struct {
	db *gorm.DB
}

func NewProjectTeamRepository(db *gorm.DB) *ProjectTeamRepository {
	return &ProjectTeamRepository{db: db}
}

func (r *ProjectTeamRepository) Create(ctx context.Context, member *entities.ProjectTeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = utils.GenerateUUIDv7()
	}
	m := &models.ProjectTeamMember{
		ID:          member.ID,
		ProjectID:   member.ProjectID,
		Name:        member.Name,
		Position:    member.Position,
		Bio:         member.Bio,
		LinkedInURL: member.LinkedInURL,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	member.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectTeamRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectTeamMember, error) {
	var ms []models.ProjectTeamMember
	if err := GetDB(ctx, r.db).Where("project_id = ?", projectID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.ProjectTeamMember, 0, len(ms))
	for _, m := range ms {
		items = append(items, &entities.ProjectTeamMember{
			ID:          m.ID,
			ProjectID:   m.ProjectID,
			Name:        m.Name,
			Position:    m.Position,
			Bio:         m.Bio,
			LinkedInURL: m.LinkedInURL,
			CreatedAt:   m.CreatedAt,
		})
	}
	return items, nil
}

func (r *ProjectTeamRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ? AND project_id = ?", id, projectID).Delete(&models.ProjectTeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ProjectFAQRepository implements FAQ persistence
type ProjectFAQRepository struct {
	db *gorm.DB
}

func NewProjectFAQRepository(db *gorm.DB) *ProjectFAQRepository {
	return &ProjectFAQRepository{db: db}
}

func (r *ProjectFAQRepository) Create(ctx context.Context, faq *entities.ProjectFAQ) error {
	if faq.ID == uuid.Nil {
		faq.ID = utils.GenerateUUIDv7()
	}
	m := &models.ProjectFAQ{
		ID:        faq.ID,
		ProjectID: faq.ProjectID,
		Question:  faq.Question,
		Answer:    faq.Answer,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	faq.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectFAQRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectFAQ, error) {
	var ms []models.ProjectFAQ
	if err := GetDB(ctx, r.db).Where("project_id = ?", projectID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.ProjectFAQ, 0, len(ms))
	for _, m := range ms {
		items = append(items, &entities.ProjectFAQ{
			ID:        m.ID,
			ProjectID: m.ProjectID,
			Question:  m.Question,
			Answer:    m.Answer,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}

func (r *ProjectFAQRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ? AND project_id = ?", id, projectID).Delete(&models.ProjectFAQ{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}
