package repositories

import (
	"context"

	"crowdfund.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// InvestorProfileRepository defines investor profile operations
type InvestorProfileRepository interface {
	Create(ctx context.Context, profile *entities.InvestorProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.InvestorProfile, error)
	Update(ctx context.Context, profile *entities.InvestorProfile) error
}

// CompanyProfileRepository defines company profile operations
type CompanyProfileRepository interface {
	Create(ctx context.Context, profile *entities.CompanyProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.CompanyProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.CompanyProfile, error)
	Update(ctx context.Context, profile *entities.CompanyProfile) error
}
