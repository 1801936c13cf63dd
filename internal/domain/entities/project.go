package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft       ProjectStatus = "draft"
	ProjectStatusSubmitted   ProjectStatus = "submitted"
	ProjectStatusUnderReview ProjectStatus = "under_review"
	ProjectStatusApproved    ProjectStatus = "approved"
	ProjectStatusRejected    ProjectStatus = "rejected"
	ProjectStatusActive      ProjectStatus = "active"
	ProjectStatusFunded      ProjectStatus = "funded"
	ProjectStatusFailed      ProjectStatus = "failed"
)

// AllProjectStatuses lists every state in lifecycle order.
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusDraft,
	ProjectStatusSubmitted,
	ProjectStatusUnderReview,
	ProjectStatusApproved,
	ProjectStatusRejected,
	ProjectStatusActive,
	ProjectStatusFunded,
	ProjectStatusFailed,
}

// PublicProjectStatuses are visible to anyone.
var PublicProjectStatuses = []ProjectStatus{
	ProjectStatusApproved,
	ProjectStatusActive,
	ProjectStatusFunded,
}

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusDraft:       {ProjectStatusSubmitted},
	ProjectStatusSubmitted:   {ProjectStatusUnderReview, ProjectStatusApproved, ProjectStatusRejected},
	ProjectStatusUnderReview: {ProjectStatusApproved, ProjectStatusRejected},
	ProjectStatusApproved:    {ProjectStatusActive},
	ProjectStatusActive:      {ProjectStatusFunded, ProjectStatusFailed},
}

func (s ProjectStatus) IsValid() bool {
	for _, known := range AllProjectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether next is a direct successor of s.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves s.
func (s ProjectStatus) IsTerminal() bool {
	return s.IsValid() && len(projectTransitions[s]) == 0
}

// IsReviewable reports whether an admin decision may be recorded.
func (s ProjectStatus) IsReviewable() bool {
	return s == ProjectStatusSubmitted || s == ProjectStatusUnderReview
}

// IsPublic reports whether the project is listed for everyone.
func (s ProjectStatus) IsPublic() bool {
	for _, p := range PublicProjectStatuses {
		if s == p {
			return true
		}
	}
	return false
}

// FundingType distinguishes equity rounds from donation campaigns.
type FundingType string

const (
	FundingTypeEquity   FundingType = "equity"
	FundingTypeDonation FundingType = "donation"
)

func (t FundingType) IsValid() bool {
	return t == FundingTypeEquity || t == FundingTypeDonation
}

// ImpactType describes the declared impact of a project.
type ImpactType string

const (
	ImpactSocial        ImpactType = "social"
	ImpactEnvironmental ImpactType = "environmental"
	ImpactBoth          ImpactType = "both"
	ImpactNone          ImpactType = "none"
)

func (t ImpactType) IsValid() bool {
	switch t {
	case ImpactSocial, ImpactEnvironmental, ImpactBoth, ImpactNone:
		return true
	}
	return false
}

type Project struct {
	ID                 uuid.UUID     `json:"id"`
	CompanyID          uuid.UUID     `json:"companyId"`
	Title              string        `json:"title"`
	ShortDescription   string        `json:"shortDescription,omitempty"`
	Description        string        `json:"description"`
	FundingGoal        null.Float64  `json:"fundingGoal"`
	MinInvestment      null.Float64  `json:"minInvestment"`
	FundingType        FundingType   `json:"fundingType"`
	IndustrySector     string        `json:"industrySector"`
	ImpactType         ImpactType    `json:"impactType"`
	DurationMonths     null.Int      `json:"durationMonths"`
	ExpectedReturnRate null.Float64  `json:"expectedReturnRate"`
	VideoURL           string        `json:"videoUrl,omitempty"`
	StartDate          null.Time     `json:"startDate"`
	EndDate            null.Time     `json:"endDate"`
	Status             ProjectStatus `json:"status"`
	ReviewerID         *uuid.UUID    `json:"reviewerId,omitempty"`
	RiskRating         null.Int      `json:"riskRating"`
	ReviewNotes        null.String   `json:"reviewNotes"`
	SubmittedAt        null.Time     `json:"submittedAt"`
	ReviewedAt         null.Time     `json:"reviewedAt"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// ProjectInput carries create and partial update fields. Nil means "not sent".
type ProjectInput struct {
	Title              *string  `json:"title"`
	ShortDescription   *string  `json:"shortDescription"`
	Description        *string  `json:"description"`
	FundingGoal        *float64 `json:"fundingGoal"`
	MinInvestment      *float64 `json:"minInvestment"`
	FundingType        *string  `json:"fundingType"`
	IndustrySector     *string  `json:"industrySector"`
	ImpactType         *string  `json:"impactType"`
	DurationMonths     *int     `json:"durationMonths"`
	ExpectedReturnRate *float64 `json:"expectedReturnRate"`
	VideoURL           *string  `json:"videoUrl"`
}

// ReviewInput is the admin decision on a submitted project.
type ReviewInput struct {
	Status      ProjectStatus `json:"status" binding:"required"`
	ReviewNotes *string       `json:"review_notes"`
	RiskRating  *int          `json:"risk_rating"`
}

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Statuses  []ProjectStatus
	CompanyID *uuid.UUID
	Industry  string
	Impact    string
	Sort      string
	Order     string
	Limit     int
	Offset    int
}

// ProjectTeamMember is a founder or employee shown on the project page.
type ProjectTeamMember struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Bio         string    `json:"bio,omitempty"`
	LinkedInURL string    `json:"linkedinUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProjectFAQ is a question and answer pair shown on the project page.
type ProjectFAQ struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"projectId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectPage is the public project payload with its team and FAQs.
type ProjectPage struct {
	Project     *Project             `json:"project"`
	TeamMembers []*ProjectTeamMember `json:"teamMembers"`
	FAQs        []*ProjectFAQ        `json:"faqs"`
}

// TeamMemberInput adds a member to a project page.
type TeamMemberInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	Position    string `json:"position" binding:"required,max=255"`
	Bio         string `json:"bio"`
	LinkedInURL string `json:"linkedinUrl" binding:"omitempty,url"`
}

// FAQInput adds a question to a project page.
type FAQInput struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}
