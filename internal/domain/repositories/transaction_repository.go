package repositories

import (
	"context"

	"crowdfund.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// TransactionRepository is a read-only view over investments and donations
type TransactionRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Transaction, error)
	SumCompleted(ctx context.Context, projectID uuid.UUID) (float64, error)
}
