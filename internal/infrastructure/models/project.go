package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;index;not null"`
	Title              string     `gorm:"type:varchar(255);not null"`
	ShortDescription   string     `gorm:"type:varchar(500)"`
	Description        string     `gorm:"type:text"`
	FundingGoal        *float64   `gorm:"type:numeric(15,2)"`
	MinInvestment      *float64   `gorm:"type:numeric(15,2)"`
	FundingType        string     `gorm:"type:varchar(20);not null"`
	IndustrySector     string     `gorm:"type:varchar(100)"`
	ImpactType         string     `gorm:"type:varchar(20)"`
	DurationMonths     *int       `gorm:"type:integer"`
	ExpectedReturnRate *float64   `gorm:"type:numeric(5,2)"`
	VideoURL           string     `gorm:"column:video_url;type:text"`
	StartDate          *time.Time `gorm:"type:timestamp"`
	EndDate            *time.Time `gorm:"type:timestamp"`
	Status             string     `gorm:"type:varchar(20);index;not null"`
	ReviewerID         *uuid.UUID `gorm:"type:uuid"`
	RiskRating         *int       `gorm:"type:integer"`
	ReviewNotes        *string    `gorm:"type:text"`
	SubmittedAt        *time.Time `gorm:"type:timestamp"`
	ReviewedAt         *time.Time `gorm:"type:timestamp"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ProjectTeamMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Position    string    `gorm:"type:varchar(120);not null"`
	Bio         string    `gorm:"type:text"`
	LinkedInURL string    `gorm:"column:linkedin_url;type:text"`
	CreatedAt   time.Time
}

func (ProjectTeamMember) TableName() string {
	return "project_team_members"
}

type ProjectFAQ struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`
	Question  string    `gorm:"type:text;not null"`
	Answer    string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (ProjectFAQ) TableName() string {
	return "project_faqs"
}
