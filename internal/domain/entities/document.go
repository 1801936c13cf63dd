package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType classifies uploaded files.
type DocumentType string

const (
	DocBusinessPlan        DocumentType = "business_plan"
	DocFinancialStatements DocumentType = "financial_statements"
	DocIDCard              DocumentType = "id_card"
	DocPassport            DocumentType = "passport"
	DocCompanyRegistration DocumentType = "company_registration"
	DocProjectImage        DocumentType = "project_image"
	DocProjectVideo        DocumentType = "project_video"
	DocOther               DocumentType = "other"
)

// RequiredProjectDocuments must be attached before a project can be submitted.
var RequiredProjectDocuments = []DocumentType{
	DocBusinessPlan,
	DocFinancialStatements,
}

func (t DocumentType) IsValid() bool {
	switch t {
	case DocBusinessPlan, DocFinancialStatements, DocIDCard, DocPassport,
		DocCompanyRegistration, DocProjectImage, DocProjectVideo, DocOther:
		return true
	}
	return false
}

type Document struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"userId"`
	ProjectID         *uuid.UUID   `json:"projectId,omitempty"`
	DocType           DocumentType `json:"docType"`
	StorageKey        string       `json:"-"`
	OriginalFilename  string       `json:"originalFilename"`
	MimeType          string       `json:"mimeType"`
	SizeBytes         int64        `json:"sizeBytes"`
	Verified          bool         `json:"verified"`
	VerificationNotes null.String  `json:"verificationNotes"`
	VerifiedBy        *uuid.UUID   `json:"verifiedBy,omitempty"`
	VerifiedAt        null.Time    `json:"verifiedAt"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// VerifyDocumentInput is the admin verdict on a document.
type VerifyDocumentInput struct {
	Verified *bool   `json:"verified" binding:"required"`
	Notes    *string `json:"notes"`
}
