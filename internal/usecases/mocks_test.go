package usecases_test

import (
	"context"
	"io"
	"time"

	"crowdfund.backend/internal/domain/entities"
	"crowdfund.backend/pkg/redis"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock InvestorProfileRepository
type MockInvestorProfileRepository struct {
	mock.Mock
}

func (m *MockInvestorProfileRepository) Create(ctx context.Context, profile *entities.InvestorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockInvestorProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.InvestorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InvestorProfile), args.Error(1)
}

func (m *MockInvestorProfileRepository) Update(ctx context.Context, profile *entities.InvestorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// Mock CompanyProfileRepository
type MockCompanyProfileRepository struct {
	mock.Mock
}

func (m *MockCompanyProfileRepository) Create(ctx context.Context, profile *entities.CompanyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCompanyProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.CompanyProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompanyProfile), args.Error(1)
}

func (m *MockCompanyProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.CompanyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CompanyProfile), args.Error(1)
}

func (m *MockCompanyProfileRepository) Update(ctx context.Context, profile *entities.CompanyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, filter entities.ProjectFilter) ([]*entities.Project, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Project), args.Get(1).(int64), args.Error(2)
}

func (m *MockProjectRepository) UpdateContent(ctx context.Context, project *entities.Project, expected entities.ProjectStatus) error {
	args := m.Called(ctx, project, expected)
	return args.Error(0)
}

func (m *MockProjectRepository) Transition(ctx context.Context, project *entities.Project, from entities.ProjectStatus) error {
	args := m.Called(ctx, project, from)
	return args.Error(0)
}

func (m *MockProjectRepository) ListEndedActive(ctx context.Context, now time.Time, limit int) ([]*entities.Project, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Project), args.Error(1)
}

// Mock ProjectTeamRepository
type MockProjectTeamRepository struct {
	mock.Mock
}

func (m *MockProjectTeamRepository) Create(ctx context.Context, member *entities.ProjectTeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockProjectTeamRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectTeamMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProjectTeamMember), args.Error(1)
}

func (m *MockProjectTeamRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

// Mock ProjectFAQRepository
type MockProjectFAQRepository struct {
	mock.Mock
}

func (m *MockProjectFAQRepository) Create(ctx context.Context, faq *entities.ProjectFAQ) error {
	args := m.Called(ctx, faq)
	return args.Error(0)
}

func (m *MockProjectFAQRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.ProjectFAQ, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProjectFAQ), args.Error(1)
}

func (m *MockProjectFAQRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	args := m.Called(ctx, projectID, id)
	return args.Error(0)
}

// Mock DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Document, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateVerification(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Transaction, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumCompleted(ctx context.Context, projectID uuid.UUID) (float64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(float64), args.Error(1)
}

// Mock BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// Mock SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	args := m.Called(ctx, sessionID, data, expiration)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.SessionData), args.Error(1)
}

func (m *MockSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// recordingNotifier keeps published events for assertions.
type recordingNotifier struct {
	events []entities.DomainEvent
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, event entities.DomainEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type recordingMetrics struct {
	transitions   []string
	registrations []string
	uploads       []string
}

func (m *recordingMetrics) RecordTransition(from, to string) {
	m.transitions = append(m.transitions, from+"->"+to)
}

func (m *recordingMetrics) RecordRegistration(role string) {
	m.registrations = append(m.registrations, role)
}

func (m *recordingMetrics) RecordUpload(docType string) {
	m.uploads = append(m.uploads, docType)
}
