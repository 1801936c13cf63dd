package usecases

import (
	"math"
	"time"

	"crowdfund.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// StatisticsInput is everything the admin aggregator reads. Company and
// Founder may be nil when the rows are gone.
type StatisticsInput struct {
	Project      *entities.Project
	Company      *entities.CompanyProfile
	Founder      *entities.User
	Documents    []*entities.Document
	Transactions []*entities.Transaction
	TeamMembers  []*entities.ProjectTeamMember
	FAQs         []*entities.ProjectFAQ
}

const day = 24 * time.Hour

// ComputeProjectStatistics derives funding, backer, document and timeline
// figures. The result depends only on in and now.
func ComputeProjectStatistics(in StatisticsInput, now time.Time) entities.ProjectStatistics {
	p := in.Project
	var stats entities.ProjectStatistics

	investors := map[uuid.UUID]struct{}{}
	donors := map[uuid.UUID]struct{}{}
	backers := map[uuid.UUID]struct{}{}
	for _, tx := range in.Transactions {
		stats.Transactions.Total++
		switch tx.Status {
		case entities.TransactionCompleted:
			stats.Transactions.Completed++
		case entities.TransactionInitiated, entities.TransactionProcessing:
			stats.Transactions.Pending++
		case entities.TransactionFailed:
			stats.Transactions.Failed++
		}
		if tx.Status != entities.TransactionCompleted {
			continue
		}

		switch tx.Kind {
		case entities.TransactionInvestment:
			stats.Funding.TotalInvestments += tx.Amount
		case entities.TransactionDonation:
			stats.Funding.TotalDonations += tx.Amount
		}
		if tx.BackerID == nil {
			continue
		}
		backers[*tx.BackerID] = struct{}{}
		if tx.Kind == entities.TransactionInvestment {
			investors[*tx.BackerID] = struct{}{}
		} else {
			donors[*tx.BackerID] = struct{}{}
		}
	}

	stats.Funding.TotalRaised = stats.Funding.TotalInvestments + stats.Funding.TotalDonations
	if p.FundingGoal.Valid {
		stats.Funding.FundingGoal = p.FundingGoal.Float64
	}
	stats.Funding.FundingProgress = FundingProgress(stats.Funding.TotalRaised, stats.Funding.FundingGoal)
	stats.Funding.RemainingAmount = math.Max(stats.Funding.FundingGoal-stats.Funding.TotalRaised, 0)

	stats.Backers.Total = len(backers)
	stats.Backers.Investors = len(investors)
	stats.Backers.Donors = len(donors)

	stats.Documents.Total = len(in.Documents)
	for _, d := range in.Documents {
		if d.Verified {
			stats.Documents.Verified++
		}
	}
	stats.Documents.Pending = stats.Documents.Total - stats.Documents.Verified

	stats.Engagement.TeamMembersCount = len(in.TeamMembers)
	stats.Engagement.FAQsCount = len(in.FAQs)

	stats.Timeline.CreatedAt = p.CreatedAt
	stats.Timeline.UpdatedAt = p.UpdatedAt
	if p.SubmittedAt.Valid {
		submitted := p.SubmittedAt.Time
		stats.Timeline.SubmittedAt = &submitted
	}
	if p.StartDate.Valid {
		days := ceilDays(now.Sub(p.StartDate.Time))
		stats.Timeline.DaysActive = &days
	}
	if p.EndDate.Valid {
		days := ceilDays(p.EndDate.Time.Sub(now))
		stats.Timeline.DaysRemaining = &days
	}
	return stats
}

// ComputeRiskIndicators summarises KYC, verification and completeness for reviewers.
func ComputeRiskIndicators(in StatisticsInput) entities.RiskIndicators {
	risk := entities.RiskIndicators{CompanyKYCStatus: "unknown"}
	if in.Company != nil && in.Company.KYCStatus != "" {
		risk.CompanyKYCStatus = string(in.Company.KYCStatus)
	}
	if len(in.Documents) > 0 {
		verified := 0
		for _, d := range in.Documents {
			if d.Verified {
				verified++
			}
		}
		risk.DocumentVerificationRate = float64(verified) / float64(len(in.Documents)) * 100
	}
	if in.Founder != nil {
		risk.FounderVerification.EmailVerified = in.Founder.EmailVerified
		risk.FounderVerification.PhoneVerified = in.Founder.PhoneVerified
	}

	readiness := CheckSubmissionReadiness(in.Project, in.Documents)
	risk.ProjectCompleteness = entities.ProjectCompleteness{
		HasTeam:          len(in.TeamMembers) > 0,
		HasFAQs:          len(in.FAQs) > 0,
		HasDocuments:     len(in.Documents) > 0,
		MissingFields:    readiness.MissingFields,
		MissingDocuments: readiness.MissingDocuments,
	}
	return risk
}

// FundingProgress is the raised share of goal in percent, clamped to [0, 100].
func FundingProgress(raised, goal float64) float64 {
	if goal <= 0 || raised <= 0 {
		return 0
	}
	return math.Min(100, raised/goal*100)
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(day)))
}
