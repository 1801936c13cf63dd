package entities

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind separates equity investments from donations.
type TransactionKind string

const (
	TransactionInvestment TransactionKind = "investment"
	TransactionDonation   TransactionKind = "donation"
)

// TransactionStatus follows the payment processor's states.
type TransactionStatus string

const (
	TransactionInitiated  TransactionStatus = "initiated"
	TransactionProcessing TransactionStatus = "processing"
	TransactionCompleted  TransactionStatus = "completed"
	TransactionFailed     TransactionStatus = "failed"
)

// Transaction is a backer's investment or donation. BackerID is nil for
// anonymous donations.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	ProjectID     uuid.UUID         `json:"projectId"`
	Kind          TransactionKind   `json:"kind"`
	BackerID      *uuid.UUID        `json:"backerId,omitempty"`
	Amount        float64           `json:"amount"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
