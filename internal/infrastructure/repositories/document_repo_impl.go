package repositories

import (
	"context"
	"errors"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/infrastructure/models"
	"crowdfund.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// DocumentRepository implements document metadata persistence
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = utils.GenerateUUIDv7()
	}
	m := &models.Document{
		ID:                doc.ID,
		UserID:            doc.UserID,
		ProjectID:         doc.ProjectID,
		DocType:           string(doc.DocType),
		StorageKey:        doc.StorageKey,
		OriginalFilename:  doc.OriginalFilename,
		MimeType:          doc.MimeType,
		SizeBytes:         doc.SizeBytes,
		Verified:          doc.Verified,
		VerificationNotes: doc.VerificationNotes.Ptr(),
		VerifiedBy:        doc.VerifiedBy,
		VerifiedAt:        doc.VerifiedAt.Ptr(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	doc.CreatedAt = m.CreatedAt
	doc.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *DocumentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Document, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

// ListByUser returns the documents a user uploaded outside any project.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	return r.list(ctx, "user_id = ? AND project_id IS NULL", userID)
}

func (r *DocumentRepository) UpdateVerification(ctx context.Context, doc *entities.Document) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.Document{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
		"verified":           doc.Verified,
		"verification_notes": doc.VerificationNotes.Ptr(),
		"verified_by":        doc.VerifiedBy,
		"verified_at":        doc.VerifiedAt.Ptr(),
		"updated_at":         now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	doc.UpdatedAt = now
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) list(ctx context.Context, query string, arg interface{}) ([]*entities.Document, error) {
	var ms []models.Document
	if err := GetDB(ctx, r.db).Where(query, arg).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Document, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *DocumentRepository) toEntity(m *models.Document) *entities.Document {
	return &entities.Document{
		ID:                m.ID,
		UserID:            m.UserID,
		ProjectID:         m.ProjectID,
		DocType:           entities.DocumentType(m.DocType),
		StorageKey:        m.StorageKey,
		OriginalFilename:  m.OriginalFilename,
		MimeType:          m.MimeType,
		SizeBytes:         m.SizeBytes,
		Verified:          m.Verified,
		VerificationNotes: null.StringFromPtr(m.VerificationNotes),
		VerifiedBy:        m.VerifiedBy,
		VerifiedAt:        null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
