package models

import (
	"time"

	"github.com/google/uuid"
)

type InvestorProfile struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	InvestorType        *string   `gorm:"type:varchar(20)"`
	KYCStatus           string    `gorm:"column:kyc_status;type:varchar(20);not null"`
	MaxInvestmentAmount *float64  `gorm:"type:numeric(15,2)"`
	TermsAccepted       bool      `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type CompanyProfile struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName        string     `gorm:"type:varchar(255);not null"`
	LegalStatus        string     `gorm:"type:varchar(50)"`
	RegistrationNumber string     `gorm:"type:varchar(100)"`
	TaxID              string     `gorm:"column:tax_id;type:varchar(100)"`
	IndustrySector     string     `gorm:"type:varchar(100)"`
	Website            string     `gorm:"type:varchar(255)"`
	Description        string     `gorm:"type:text"`
	EmployeeCount      *int       `gorm:"type:integer"`
	FoundingDate       *time.Time `gorm:"type:date"`
	Address            string     `gorm:"type:text"`
	City               string     `gorm:"type:varchar(100)"`
	KYCStatus          string     `gorm:"column:kyc_status;type:varchar(20);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
