package repositories

import (
	"context"
	"io"

	"crowdfund.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// DocumentRepository defines document metadata operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Document, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error)
	UpdateVerification(ctx context.Context, doc *entities.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlobStore holds uploaded file contents addressed by storage key
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
