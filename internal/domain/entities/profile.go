package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KYCStatus is the compliance state of a profile.
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// InvestorType classifies investors for investment limits.
type InvestorType string

const (
	InvestorRetail        InvestorType = "retail"
	InvestorProfessional  InvestorType = "professional"
	InvestorInstitutional InvestorType = "institutional"
	InvestorDiaspora      InvestorType = "diaspora"
)

func (t InvestorType) IsValid() bool {
	switch t {
	case InvestorRetail, InvestorProfessional, InvestorInstitutional, InvestorDiaspora:
		return true
	}
	return false
}

type InvestorProfile struct {
	ID                  uuid.UUID    `json:"id"`
	UserID              uuid.UUID    `json:"userId"`
	InvestorType        null.String  `json:"investorType"`
	KYCStatus           KYCStatus    `json:"kycStatus"`
	MaxInvestmentAmount null.Float64 `json:"maxInvestmentAmount"`
	TermsAccepted       bool         `json:"termsAccepted"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

type CompanyProfile struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	CompanyName        string    `json:"companyName"`
	LegalStatus        string    `json:"legalStatus,omitempty"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	TaxID              string    `json:"taxId,omitempty"`
	IndustrySector     string    `json:"industrySector,omitempty"`
	Website            string    `json:"website,omitempty"`
	Description        string    `json:"description,omitempty"`
	EmployeeCount      null.Int  `json:"employeeCount"`
	FoundingDate       null.Time `json:"foundingDate"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city,omitempty"`
	KYCStatus          KYCStatus `json:"kycStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// UpdateInvestorProfileInput is a partial update; nil fields are left untouched.
type UpdateInvestorProfileInput struct {
	InvestorType        *string  `json:"investorType"`
	MaxInvestmentAmount *float64 `json:"maxInvestmentAmount"`
	TermsAccepted       *bool    `json:"termsAccepted"`
}

// UpdateCompanyProfileInput is a partial update; nil fields are left untouched.
type UpdateCompanyProfileInput struct {
	CompanyName        *string    `json:"companyName"`
	LegalStatus        *string    `json:"legalStatus"`
	RegistrationNumber *string    `json:"registrationNumber"`
	TaxID              *string    `json:"taxId"`
	IndustrySector     *string    `json:"industrySector"`
	Website            *string    `json:"website"`
	Description        *string    `json:"description"`
	EmployeeCount      *int       `json:"employeeCount"`
	FoundingDate       *time.Time `json:"foundingDate"`
	Address            *string    `json:"address"`
	City               *string    `json:"city"`
}

// ProfileView is what GET /profile returns.
type ProfileView struct {
	User            *User            `json:"user"`
	InvestorProfile *InvestorProfile `json:"investorProfile,omitempty"`
	CompanyProfile  *CompanyProfile  `json:"companyProfile,omitempty"`
}
