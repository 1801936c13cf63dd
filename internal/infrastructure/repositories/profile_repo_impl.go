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

// InvestorProfileRepository implements investor profile persistence
type InvestorProfileRepository struct {
	db *gorm.DB
}

func NewInvestorProfileRepository(db *gorm.DB) *InvestorProfileRepository {
	return &InvestorProfileRepository{db: db}
}

func (r *InvestorProfileRepository) Create(ctx context.Context, p *entities.InvestorProfile) error {
	if p.ID == uuid.Nil {
		p.ID = utils.GenerateUUIDv7()
	}
	if p.KYCStatus == "" {
		p.KYCStatus = entities.KYCPending
	}
	m := &models.InvestorProfile{
		ID:                  p.ID,
		UserID:              p.UserID,
		InvestorType:        p.InvestorType.Ptr(),
		KYCStatus:           string(p.KYCStatus),
		MaxInvestmentAmount: p.MaxInvestmentAmount.Ptr(),
		TermsAccepted:       p.TermsAccepted,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *InvestorProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.InvestorProfile, error) {
	var m models.InvestorProfile
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.InvestorProfile{
		ID:                  m.ID,
		UserID:              m.UserID,
		InvestorType:        null.StringFromPtr(m.InvestorType),
		KYCStatus:           entities.KYCStatus(m.KYCStatus),
		MaxInvestmentAmount: null.Float64FromPtr(m.MaxInvestmentAmount),
		TermsAccepted:       m.TermsAccepted,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

func (r *InvestorProfileRepository) Update(ctx context.Context, p *entities.InvestorProfile) error {
	result := GetDB(ctx, r.db).Model(&models.InvestorProfile{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"investor_type":         p.InvestorType.Ptr(),
		"kyc_status":            string(p.KYCStatus),
		"max_investment_amount": p.MaxInvestmentAmount.Ptr(),
		"terms_accepted":        p.TermsAccepted,
		"updated_at":            time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CompanyProfileRepository implements company profile persistence
type CompanyProfileRepository struct {
	db *gorm.DB
}

func NewCompanyProfileRepository(db *gorm.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

func (r *CompanyProfileRepository) Create(ctx context.Context, p *entities.CompanyProfile) error {
	if p.ID == uuid.Nil {
		p.ID = utils.GenerateUUIDv7()
	}
	if p.KYCStatus == "" {
		p.KYCStatus = entities.KYCPending
	}
	m := r.toModel(p)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *CompanyProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CompanyProfile, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.CompanyProfile, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *CompanyProfileRepository) Update(ctx context.Context, p *entities.CompanyProfile) error {
	result := GetDB(ctx, r.db).Model(&models.CompanyProfile{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"company_name":        p.CompanyName,
		"legal_status":        p.LegalStatus,
		"registration_number": p.RegistrationNumber,
		"tax_id":              p.TaxID,
		"industry_sector":     p.IndustrySector,
		"website":             p.Website,
		"description":         p.Description,
		"employee_count":      p.EmployeeCount.Ptr(),
		"founding_date":       p.FoundingDate.Ptr(),
		"address":             p.Address,
		"city":                p.City,
		"kyc_status":          string(p.KYCStatus),
		"updated_at":          time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *CompanyProfileRepository) first(ctx context.Context, query string, arg interface{}) (*entities.CompanyProfile, error) {
	var m models.CompanyProfile
	if err := GetDB(ctx, r.db).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *CompanyProfileRepository) toModel(p *entities.CompanyProfile) *models.CompanyProfile {
	return &models.CompanyProfile{
		ID:                 p.ID,
		UserID:             p.UserID,
		CompanyName:        p.CompanyName,
		LegalStatus:        p.LegalStatus,
		RegistrationNumber: p.RegistrationNumber,
		TaxID:              p.TaxID,
		IndustrySector:     p.IndustrySector,
		Website:            p.Website,
		Description:        p.Description,
		EmployeeCount:      p.EmployeeCount.Ptr(),
		FoundingDate:       p.FoundingDate.Ptr(),
		Address:            p.Address,
		City:               p.City,
		KYCStatus:          string(p.KYCStatus),
	}
}

func (r *CompanyProfileRepository) toEntity(m *models.CompanyProfile) *entities.CompanyProfile {
	return &entities.CompanyProfile{
		ID:                 m.ID,
		UserID:             m.UserID,
		CompanyName:        m.CompanyName,
		LegalStatus:        m.LegalStatus,
		RegistrationNumber: m.RegistrationNumber,
		TaxID:              m.TaxID,
		IndustrySector:     m.IndustrySector,
		Website:            m.Website,
		Description:        m.Description,
		EmployeeCount:      null.IntFromPtr(m.EmployeeCount),
		FoundingDate:       null.TimeFromPtr(m.FoundingDate),
		Address:            m.Address,
		City:               m.City,
		KYCStatus:          entities.KYCStatus(m.KYCStatus),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
