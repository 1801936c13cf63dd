package usecases

import (
	"strings"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
)

// ReadinessReport lists what still blocks a draft from being submitted.
// Both lists are always non-nil so they serialise as [].
type ReadinessReport struct {
	MissingFields    []string                `json:"missingFields"`
	MissingDocuments []entities.DocumentType `json:"missingDocuments"`
}

func (r ReadinessReport) Ready() bool {
	return len(r.MissingFields) == 0 && len(r.MissingDocuments) == 0
}

// Err renders the report as a validation error, or nil when nothing is missing.
func (r ReadinessReport) Err() error {
	if r.Ready() {
		return nil
	}
	code := domainerrors.CodeProjectIncomplete
	message := "project is missing required fields and documents"
	switch {
	case len(r.MissingDocuments) == 0:
		code = domainerrors.CodeMissingRequiredFields
		message = "project is missing required fields: " + strings.Join(r.MissingFields, ", ")
	case len(r.MissingFields) == 0:
		code = domainerrors.CodeMissingRequiredDocuments
		names := make([]string, 0, len(r.MissingDocuments))
		for _, d := range r.MissingDocuments {
			names = append(names, string(d))
		}
		message = "project is missing required documents: " + strings.Join(names, ", ")
	}
	return domainerrors.Validation(code, message).
		WithDetail("missingFields", r.MissingFields).
		WithDetail("missingDocuments", r.MissingDocuments)
}

// CheckSubmissionReadiness is pure: it reports every missing required field in
// a fixed order, then every required document type not attached.
func CheckSubmissionReadiness(p *entities.Project, docs []*entities.Document) ReadinessReport {
	report := ReadinessReport{
		MissingFields:    []string{},
		MissingDocuments: []entities.DocumentType{},
	}

	checks := []struct {
		name    string
		present bool
	}{
		{"title", strings.TrimSpace(p.Title) != ""},
		{"description", strings.TrimSpace(p.Description) != ""},
		{"funding_goal", p.FundingGoal.Valid && p.FundingGoal.Float64 > 0},
		{"industry_sector", strings.TrimSpace(p.IndustrySector) != ""},
		{"impact_type", p.ImpactType != ""},
		{"duration_months", p.DurationMonths.Valid && p.DurationMonths.Int > 0},
		{"expected_return_rate", p.ExpectedReturnRate.Valid},
	}
	for _, c := range checks {
		if !c.present {
			report.MissingFields = append(report.MissingFields, c.name)
		}
	}

	attached := make(map[entities.DocumentType]bool, len(docs))
	for _, d := range docs {
		if d == nil || d.ProjectID == nil || *d.ProjectID != p.ID {
			continue
		}
		attached[d.DocType] = true
	}
	for _, required := range entities.RequiredProjectDocuments {
		if !attached[required] {
			report.MissingDocuments = append(report.MissingDocuments, required)
		}
	}
	return report
}
