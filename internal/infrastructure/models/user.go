package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	FirstName     string    `gorm:"type:varchar(100);not null"`
	LastName      string    `gorm:"type:varchar(100);not null"`
	Phone         string    `gorm:"type:varchar(30)"`
	Role          string    `gorm:"type:varchar(20);not null"`
	EmailVerified bool      `gorm:"not null"`
	PhoneVerified bool      `gorm:"not null"`
	IsActive      bool      `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
