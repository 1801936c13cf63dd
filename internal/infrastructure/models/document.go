package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProjectID         *uuid.UUID `gorm:"type:uuid;index"`
	DocType           string     `gorm:"type:varchar(50);not null"`
	StorageKey        string     `gorm:"type:text;not null"`
	OriginalFilename  string     `gorm:"type:varchar(255);not null"`
	MimeType          string     `gorm:"type:varchar(100);not null"`
	SizeBytes         int64      `gorm:"not null"`
	Verified          bool       `gorm:"not null"`
	VerificationNotes *string    `gorm:"type:text"`
	VerifiedBy        *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt        *time.Time `gorm:"type:timestamp"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
