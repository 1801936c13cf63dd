package handlers

import (
	"context"
	"net/http"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/interfaces/http/response"
	"crowdfund.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileService is implemented by usecases.ProfileUsecase.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.ProfileView, error)
	UpdateInvestor(ctx context.Context, actor *usecases.Actor, input *entities.UpdateInvestorProfileInput) (*entities.InvestorProfile, error)
	UpdateCompany(ctx context.Context, actor *usecases.Actor, input *entities.UpdateCompanyProfileInput) (*entities.CompanyProfile, error)
}

type ProfileHandler struct {
	profiles ProfileService
}

func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	view, err := h.profiles.Get(c.Request.Context(), a.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// PATCH /api/profile/investor
func (h *ProfileHandler) UpdateInvestor(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var input entities.UpdateInvestorProfileInput
	if !bindJSON(c, &input) {
		return
	}
	profile, err := h.profiles.UpdateInvestor(c.Request.Context(), a, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"investorProfile": profile})
}

// PATCH /api/profile/company
func (h *ProfileHandler) UpdateCompany(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var input entities.UpdateCompanyProfileInput
	if !bindJSON(c, &input) {
		return
	}
	profile, err := h.profiles.UpdateCompany(c.Request.Context(), a, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"companyProfile": profile})
}
