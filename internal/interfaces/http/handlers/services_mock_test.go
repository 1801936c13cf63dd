package handlers

import (
	"context"
	"io"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/internal/usecases"
	"crowdfund.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockProjectService struct{ mock.Mock }

func (m *mockProjectService) Create(ctx context.Context, userID uuid.UUID, input *entities.ProjectInput) (*entities.Project, error) {
	args := m.Called(ctx, userID, input)
	p, _ := args.Get(0).(*entities.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) Update(ctx context.Context, a *usecases.Actor, projectID uuid.UUID, input *entities.ProjectInput) (*entities.Project, error) {
	args := m.Called(ctx, a, projectID, input)
	p, _ := args.Get(0).(*entities.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) Submit(ctx context.Context, userID, projectID uuid.UUID) (*entities.Project, error) {
	args := m.Called(ctx, userID, projectID)
	p, _ := args.Get(0).(*entities.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) Review(ctx context.Context, adminID, projectID uuid.UUID, input *entities.ReviewInput) (*entities.Project, error) {
	args := m.Called(ctx, adminID, projectID, input)
	p, _ := args.Get(0).(*entities.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) ChangeStatus(ctx context.Context, adminID, projectID uuid.UUID, input *entities.ReviewInput) (*entities.Project, error) {
	args := m.Called(ctx, adminID, projectID, input)
	p, _ := args.Get(0).(*entities.Project)
	return p, args.Error(1)
}

func (m *mockProjectService) Get(ctx context.Context, viewer *usecases.Actor, projectID uuid.UUID) (*entities.ProjectPage, error) {
	args := m.Called(ctx, viewer, projectID)
	p, _ := args.Get(0).(*entities.ProjectPage)
	return p, args.Error(1)
}

func (m *mockProjectService) List(ctx context.Context, viewer *usecases.Actor, q usecases.ListProjectsQuery) ([]*entities.Project, utils.PaginationMeta, error) {
	args := m.Called(ctx, viewer, q)
	items, _ := args.Get(0).([]*entities.Project)
	return items, args.Get(1).(utils.PaginationMeta), args.Error(2)
}

func (m *mockProjectService) AddTeamMember(ctx context.Context, a *usecases.Actor, projectID uuid.UUID, input *entities.TeamMemberInput) (*entities.ProjectTeamMember, error) {
	args := m.Called(ctx, a, projectID, input)
	p, _ := args.Get(0).(*entities.ProjectTeamMember)
	return p, args.Error(1)
}

func (m *mockProjectService) RemoveTeamMember(ctx context.Context, a *usecases.Actor, projectID, memberID uuid.UUID) error {
	return m.Called(ctx, a, projectID, memberID).Error(0)
}

func (m *mockProjectService) AddFAQ(ctx context.Context, a *usecases.Actor, projectID uuid.UUID, input *entities.FAQInput) (*entities.ProjectFAQ, error) {
	args := m.Called(ctx, a, projectID, input)
	p, _ := args.Get(0).(*entities.ProjectFAQ)
	return p, args.Error(1)
}

func (m *mockProjectService) RemoveFAQ(ctx context.Context, a *usecases.Actor, projectID, faqID uuid.UUID) error {
	return m.Called(ctx, a, projectID, faqID).Error(0)
}

type mockDocumentService struct{ mock.Mock }

func (m *mockDocumentService) UploadForProject(ctx context.Context, a *usecases.Actor, projectID uuid.UUID, upload *usecases.DocumentUpload) (*entities.Document, error) {
	args := m.Called(ctx, a, projectID, upload)
	d, _ := args.Get(0).(*entities.Document)
	return d, args.Error(1)
}

func (m *mockDocumentService) UploadForUser(ctx context.Context, a *usecases.Actor, upload *usecases.DocumentUpload) (*entities.Document, error) {
	args := m.Called(ctx, a, upload)
	d, _ := args.Get(0).(*entities.Document)
	return d, args.Error(1)
}

func (m *mockDocumentService) ListForProject(ctx context.Context, a *usecases.Actor, projectID uuid.UUID) ([]*entities.Document, error) {
	args := m.Called(ctx, a, projectID)
	d, _ := args.Get(0).([]*entities.Document)
	return d, args.Error(1)
}

func (m *mockDocumentService) ListForUser(ctx context.Context, a *usecases.Actor) ([]*entities.Document, error) {
	args := m.Called(ctx, a)
	d, _ := args.Get(0).([]*entities.Document)
	return d, args.Error(1)
}

func (m *mockDocumentService) Open(ctx context.Context, a *usecases.Actor, documentID uuid.UUID) (*entities.Document, io.ReadCloser, error) {
	args := m.Called(ctx, a, documentID)
	d, _ := args.Get(0).(*entities.Document)
	body, _ := args.Get(1).(io.ReadCloser)
	return d, body, args.Error(2)
}

func (m *mockDocumentService) Delete(ctx context.Context, a *usecases.Actor, documentID uuid.UUID) error {
	return m.Called(ctx, a, documentID).Error(0)
}

func (m *mockDocumentService) Verify(ctx context.Context, adminID, documentID uuid.UUID, input *entities.VerifyDocumentInput) (*entities.Document, error) {
	args := m.Called(ctx, adminID, documentID, input)
	d, _ := args.Get(0).(*entities.Document)
	return d, args.Error(1)
}

type mockAdminService struct{ mock.Mock }

func (m *mockAdminService) ListProjects(ctx context.Context, q usecases.AdminProjectQuery) ([]*entities.Project, utils.PaginationMeta, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]*entities.Project)
	return items, args.Get(1).(utils.PaginationMeta), args.Error(2)
}

func (m *mockAdminService) ProjectDetail(ctx context.Context, adminID, projectID uuid.UUID) (*entities.ProjectDetail, error) {
	args := m.Called(ctx, adminID, projectID)
	d, _ := args.Get(0).(*entities.ProjectDetail)
	return d, args.Error(1)
}

type mockProfileService struct{ mock.Mock }

func (m *mockProfileService) Get(ctx context.Context, userID uuid.UUID) (*entities.ProfileView, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(*entities.ProfileView)
	return v, args.Error(1)
}

func (m *mockProfileService) UpdateInvestor(ctx context.Context, a *usecases.Actor, input *entities.UpdateInvestorProfileInput) (*entities.InvestorProfile, error) {
	args := m.Called(ctx, a, input)
	p, _ := args.Get(0).(*entities.InvestorProfile)
	return p, args.Error(1)
}

func (m *mockProfileService) UpdateCompany(ctx context.Context, a *usecases.Actor, input *entities.UpdateCompanyProfileInput) (*entities.CompanyProfile, error) {
	args := m.Called(ctx, a, input)
	p, _ := args.Get(0).(*entities.CompanyProfile)
	return p, args.Error(1)
}
