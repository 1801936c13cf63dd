package usecases

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProfileUsecase manages the role specific profile attached to each user.
type ProfileUsecase struct {
	userRepo     repositories.UserRepository
	investorRepo repositories.InvestorProfileRepository
	companyRepo  repositories.CompanyProfileRepository
}

func NewProfileUsecase(
	userRepo repositories.UserRepository,
	investorRepo repositories.InvestorProfileRepository,
	companyRepo repositories.CompanyProfileRepository,
) *ProfileUsecase {
	return &ProfileUsecase{userRepo: userRepo, investorRepo: investorRepo, companyRepo: companyRepo}
}

// Get returns the user with its profile, creating an empty profile for
// accounts that predate profiles.
func (u *ProfileUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.ProfileView, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found").WithCode(domainerrors.CodeUserNotFound)
		}
		return nil, domainerrors.InternalError(err)
	}

	view := &entities.ProfileView{User: user}
	switch user.Role {
	case entities.UserRoleInvestor:
		view.InvestorProfile, err = u.investorProfile(ctx, user.ID)
	case entities.UserRoleCompany:
		view.CompanyProfile, err = u.companyProfile(ctx, user)
	}
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return view, nil
}

// UpdateInvestor applies the provided fields only.
func (u *ProfileUsecase) UpdateInvestor(ctx context.Context, actor *Actor, input *entities.UpdateInvestorProfileInput) (*entities.InvestorProfile, error) {
	if actor.Role != entities.UserRoleInvestor {
		return nil, domainerrors.Forbidden("only investors have an investor profile").
			WithCode(domainerrors.CodeInsufficientPermissions)
	}
	profile, err := u.investorProfile(ctx, actor.UserID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	var violations []violation
	if input.InvestorType != nil {
		if !entities.InvestorType(*input.InvestorType).IsValid() {
			violations = append(violations, violation{domainerrors.CodeValidation, "investorType", "investor type must be one of: retail, professional, institutional, diaspora"})
		}
		profile.InvestorType = null.StringFrom(*input.InvestorType)
	}
	if input.MaxInvestmentAmount != nil {
		if *input.MaxInvestmentAmount < 0 {
			violations = append(violations, violation{domainerrors.CodeValidation, "maxInvestmentAmount", "max investment amount cannot be negative"})
		}
		profile.MaxInvestmentAmount = null.Float64From(*input.MaxInvestmentAmount)
	}
	if input.TermsAccepted != nil {
		profile.TermsAccepted = *input.TermsAccepted
	}
	if len(violations) > 0 {
		return nil, validationFailed(violations)
	}

	if err := u.investorRepo.Update(ctx, profile); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return profile, nil
}

// UpdateCompany applies the provided fields only.
func (u *ProfileUsecase) UpdateCompany(ctx context.Context, actor *Actor, input *entities.UpdateCompanyProfileInput) (*entities.CompanyProfile, error) {
	if actor.Role != entities.UserRoleCompany {
		return nil, domainerrors.Forbidden("only companies have a company profile").
			WithCode(domainerrors.CodeInsufficientPermissions)
	}
	user, err := u.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	profile, err := u.companyProfile(ctx, user)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}

	var violations []violation
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	if input.CompanyName != nil && strings.TrimSpace(*input.CompanyName) == "" {
		violations = append(violations, violation{domainerrors.CodeValidation, "companyName", "company name cannot be empty"})
	}
	setString(&profile.CompanyName, input.CompanyName)
	setString(&profile.LegalStatus, input.LegalStatus)
	setString(&profile.RegistrationNumber, input.RegistrationNumber)
	setString(&profile.TaxID, input.TaxID)
	setString(&profile.IndustrySector, input.IndustrySector)
	setString(&profile.Description, input.Description)
	setString(&profile.Address, input.Address)
	setString(&profile.City, input.City)
	if input.Website != nil {
		profile.Website = strings.TrimSpace(*input.Website)
		if profile.Website != "" {
			if parsed, err := url.ParseRequestURI(profile.Website); err != nil || parsed.Host == "" {
				violations = append(violations, violation{domainerrors.CodeValidation, "website", "website must be an absolute url"})
			}
		}
	}
	if input.EmployeeCount != nil {
		if *input.EmployeeCount < 0 {
			violations = append(violations, violation{domainerrors.CodeValidation, "employeeCount", "employee count cannot be negative"})
		}
		profile.EmployeeCount = null.IntFrom(*input.EmployeeCount)
	}
	if input.FoundingDate != nil {
		profile.FoundingDate = null.TimeFrom(*input.FoundingDate)
	}
	if len(violations) > 0 {
		return nil, validationFailed(violations)
	}

	if err := u.companyRepo.Update(ctx, profile); err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return profile, nil
}

func (u *ProfileUsecase) investorProfile(ctx context.Context, userID uuid.UUID) (*entities.InvestorProfile, error) {
	profile, err := u.investorRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	profile = &entities.InvestorProfile{UserID: userID, KYCStatus: entities.KYCPending}
	if err := u.investorRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *ProfileUsecase) companyProfile(ctx context.Context, user *entities.User) (*entities.CompanyProfile, error) {
	profile, err := u.companyRepo.GetByUserID(ctx, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	profile = &entities.CompanyProfile{UserID: user.ID, CompanyName: user.FullName(), KYCStatus: entities.KYCPending}
	if err := u.companyRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
