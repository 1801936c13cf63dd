package models

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Kind          string     `gorm:"type:varchar(20);not null"`
	BackerID      *uuid.UUID `gorm:"type:uuid"`
	Amount        float64    `gorm:"type:numeric(15,2);not null"`
	Status        string     `gorm:"type:varchar(20);not null"`
	PaymentMethod string     `gorm:"type:varchar(50)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Transaction) TableName() string {
	return "transactions"
}
