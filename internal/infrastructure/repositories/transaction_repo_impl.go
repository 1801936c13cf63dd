package repositories

import (
	"context"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository reads investments and donations. Writes belong to
// the payment integration.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Transaction, error) {
	var ms []models.Transaction
	if err := GetDB(ctx, r.db).Where("project_id = ?", projectID).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Transaction, 0, len(ms))
	for _, m := range ms {
		items = append(items, &entities.Transaction{
			ID:            m.ID,
			ProjectID:     m.ProjectID,
			Kind:          entities.TransactionKind(m.Kind),
			BackerID:      m.BackerID,
			Amount:        m.Amount,
			Status:        entities.TransactionStatus(m.Status),
			PaymentMethod: m.PaymentMethod,
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.UpdatedAt,
		})
	}
	return items, nil
}

// SumCompleted totals completed investments and donations for a project.
func (r *TransactionRepository) SumCompleted(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	err := GetDB(ctx, r.db).Model(&models.Transaction{}).
		Where("project_id = ? AND status = ?", projectID, string(entities.TransactionCompleted)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
