package entities

import "time"

// ProjectStatistics is the reviewer's derived view of a project.
type ProjectStatistics struct {
	Funding      FundingStats     `json:"funding"`
	Backers      BackerStats      `json:"backers"`
	Transactions TransactionStats `json:"transactions"`
	Documents    DocumentStats    `json:"documents"`
	Engagement   EngagementStats  `json:"engagement"`
	Timeline     TimelineStats    `json:"timeline"`
}

type FundingStats struct {
	TotalRaised      float64 `json:"totalRaised"`
	TotalInvestments float64 `json:"totalInvestments"`
	TotalDonations   float64 `json:"totalDonations"`
	FundingGoal      float64 `json:"fundingGoal"`
	FundingProgress  float64 `json:"fundingProgress"`
	RemainingAmount  float64 `json:"remainingAmount"`
}

type BackerStats struct {
	Total     int `json:"total"`
	Investors int `json:"investors"`
	Donors    int `json:"donors"`
}

type TransactionStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Failed    int `json:"failed"`
}

type DocumentStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Pending  int `json:"pending"`
}

type EngagementStats struct {
	TeamMembersCount int `json:"teamMembersCount"`
	FAQsCount        int `json:"faqsCount"`
}

type TimelineStats struct {
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	SubmittedAt   *time.Time `json:"submittedAt,omitempty"`
	DaysActive    *int       `json:"daysActive,omitempty"`
	DaysRemaining *int       `json:"daysRemaining,omitempty"`
}

// RiskIndicators summarise what a reviewer should double check.
type RiskIndicators struct {
	CompanyKYCStatus         string              `json:"companyKycStatus"`
	DocumentVerificationRate float64             `json:"documentVerificationRate"`
	FounderVerification      FounderVerification `json:"founderVerification"`
	ProjectCompleteness      ProjectCompleteness `json:"projectCompleteness"`
}

type FounderVerification struct {
	EmailVerified bool `json:"emailVerified"`
	PhoneVerified bool `json:"phoneVerified"`
}

type ProjectCompleteness struct {
	HasTeam          bool           `json:"hasTeam"`
	HasFAQs          bool           `json:"hasFaqs"`
	HasDocuments     bool           `json:"hasDocuments"`
	MissingFields    []string       `json:"missingFields"`
	MissingDocuments []DocumentType `json:"missingDocuments"`
}

// ProjectDetail is the admin detail payload.
type ProjectDetail struct {
	Project        *Project             `json:"project"`
	Company        *CompanyProfile      `json:"company,omitempty"`
	Founder        *User                `json:"founder,omitempty"`
	Documents      []*Document          `json:"documents"`
	TeamMembers    []*ProjectTeamMember `json:"teamMembers"`
	FAQs           []*ProjectFAQ        `json:"faqs"`
	Statistics     ProjectStatistics    `json:"statistics"`
	RiskIndicators RiskIndicators       `json:"riskIndicators"`
}
