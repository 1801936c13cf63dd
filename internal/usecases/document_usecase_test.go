package usecases_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/usecases"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	*projectFixture
	blobs   *MockBlobStore
	metrics *recordingMetrics
	uc      *usecases.DocumentUsecase
}

func newDocumentFixture() *documentFixture {
	pf := newProjectFixture()
	f := &documentFixture{projectFixture: pf, blobs: new(MockBlobStore), metrics: &recordingMetrics{}}
	f.uc = usecases.NewDocumentUsecase(pf.documents, pf.projects, pf.companies, f.blobs)
	f.uc.SetMetrics(f.metrics)
	f.uc.SetNow(func() time.Time { return fixedNow })
	return f
}

func pdfUpload(docType entities.DocumentType, size int64) *usecases.DocumentUpload {
	return &usecases.DocumentUpload{
		DocType:  docType,
		Filename: "Plan.PDF",
		MimeType: "application/pdf",
		Size:     size,
		Body:     strings.NewReader("%PDF-1.7"),
	}
}

func TestDocumentLimits(t *testing.T) {
	assert.Equal(t, int64(5<<20), usecases.MaxDocumentBytes(entities.DocProjectImage))
	assert.Equal(t, int64(50<<20), usecases.MaxDocumentBytes(entities.DocProjectVideo))
	assert.Equal(t, int64(10<<20), usecases.MaxDocumentBytes(entities.DocBusinessPlan))
	assert.Contains(t, usecases.AllowedMimeTypes(entities.DocFinancialStatements), "application/vnd.ms-excel")
	assert.Equal(t, []string{"application/pdf", "image/jpeg", "image/png"}, usecases.AllowedMimeTypes(entities.DocOther))
}

func TestDocumentUsecase_UploadValidation(t *testing.T) {
	f := newDocumentFixture()
	owner := f.owner()
	projectID := uuid.New()

	_, err := f.uc.UploadForProject(context.Background(), owner, projectID, nil)
	requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeNoFileUploaded)

	_, err = f.uc.UploadForProject(context.Background(), owner, projectID, pdfUpload("", 10))
	requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeMissingDocType)

	image := pdfUpload(entities.DocProjectImage, 10)
	_, err = f.uc.UploadForProject(context.Background(), owner, projectID, image)
	appErr := requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeInvalidFile)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp"}, appErr.Details["allowedTypes"])

	_, err = f.uc.UploadForProject(context.Background(), owner, projectID, pdfUpload(entities.DocBusinessPlan, 10<<20+1))
	requireAppError(t, err, http.StatusRequestEntityTooLarge, domainerrors.CodeFileTooLarge)

	f.projects.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.blobs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDocumentUsecase_UploadForProject(t *testing.T) {
	f := newDocumentFixture()
	f.expectOwnerCompany()
	project := f.completeDraft()
	f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil).Once()

	var key string
	f.blobs.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(2048), "application/pdf").
		Return(nil).Run(func(args mock.Arguments) { key = args.String(1) }).Once()
	f.documents.On("Create", mock.Anything, mock.MatchedBy(func(d *entities.Document) bool {
		return d.ProjectID != nil && *d.ProjectID == project.ID && d.UserID == f.ownerID && d.StorageKey == key
	})).Return(nil).Once()

	upload := pdfUpload(entities.DocBusinessPlan, 2048)
	upload.MimeType = "Application/PDF; charset=binary"
	doc, err := f.uc.UploadForProject(context.Background(), f.owner(), project.ID, upload)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "business_plan/2026-03/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
	assert.Equal(t, "Plan.PDF", doc.OriginalFilename)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Equal(t, []string{"business_plan"}, f.metrics.uploads)
}

func TestDocumentUsecase_UploadForProject_ActiveProjectRejected(t *testing.T) {
	f := newDocumentFixture()
	f.expectOwnerCompany()
	project := f.completeDraft()
	project.Status = entities.ProjectStatusActive
	f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil).Once()

	_, err := f.uc.UploadForProject(context.Background(), f.owner(), project.ID, pdfUpload(entities.DocBusinessPlan, 10))
	requireAppError(t, err, http.StatusForbidden, domainerrors.CodeProjectStatusNotAllowed)
}

func TestDocumentUsecase_UploadRemovesBlobWhenMetadataFails(t *testing.T) {
	f := newDocumentFixture()
	actor := &usecases.Actor{UserID: uuid.New(), Role: entities.UserRoleInvestor}
	upload := &usecases.DocumentUpload{DocType: entities.DocIDCard, Filename: "id.png", MimeType: "image/png", Size: 100, Body: strings.NewReader("png")}

	f.blobs.On("Put", mock.Anything, mock.Anything, mock.Anything, int64(100), "image/png").Return(nil).Once()
	f.documents.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
	f.blobs.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "id_card/") })).Return(nil).Once()

	_, err := f.uc.UploadForUser(context.Background(), actor, upload)
	requireAppError(t, err, http.StatusInternalServerError, domainerrors.CodeInternalError)
	f.blobs.AssertExpectations(t)
	assert.Empty(t, f.metrics.uploads)
}

func TestDocumentUsecase_Open(t *testing.T) {
	f := newDocumentFixture()
	uploader := uuid.New()
	doc := &entities.Document{ID: uuid.New(), UserID: uploader, StorageKey: "id_card/2026-03/x.png"}
	f.documents.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	f.blobs.On("Open", mock.Anything, doc.StorageKey).Return(io.NopCloser(strings.NewReader("png")), nil).Once()

	_, body, err := f.uc.Open(context.Background(), &usecases.Actor{UserID: uploader, Role: entities.UserRoleInvestor}, doc.ID)
	require.NoError(t, err)
	data, _ := io.ReadAll(body)
	assert.Equal(t, "png", string(data))
	require.NoError(t, body.Close())

	_, _, err = f.uc.Open(context.Background(), &usecases.Actor{UserID: uuid.New(), Role: entities.UserRoleInvestor}, doc.ID)
	requireAppError(t, err, http.StatusNotFound, domainerrors.CodeDocumentNotFound)
}

func TestDocumentUsecase_Delete(t *testing.T) {
	f := newDocumentFixture()
	f.expectOwnerCompany()
	project := f.completeDraft()
	project.Status = entities.ProjectStatusSubmitted
	pid := project.ID
	doc := &entities.Document{ID: uuid.New(), UserID: f.ownerID, ProjectID: &pid, StorageKey: "business_plan/2026-03/a.pdf"}
	f.documents.On("GetByID", mock.Anything, doc.ID).Return(doc, nil).Once()
	f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil).Once()
	f.documents.On("Delete", mock.Anything, doc.ID).Return(nil).Once()
	f.blobs.On("Delete", mock.Anything, doc.StorageKey).Return(errors.New("s3 hiccup")).Once()

	require.NoError(t, f.uc.Delete(context.Background(), f.owner(), doc.ID))
	f.documents.AssertExpectations(t)
}

func TestDocumentUsecase_Delete_ApprovedProjectNeedsAdmin(t *testing.T) {
	f := newDocumentFixture()
	f.expectOwnerCompany()
	project := f.completeDraft()
	project.Status = entities.ProjectStatusApproved
	pid := project.ID
	doc := &entities.Document{ID: uuid.New(), UserID: f.ownerID, ProjectID: &pid}
	f.documents.On("GetByID", mock.Anything, doc.ID).Return(doc, nil)
	f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	err := f.uc.Delete(context.Background(), f.owner(), doc.ID)
	requireAppError(t, err, http.StatusForbidden, domainerrors.CodeProjectStatusNotAllowed)

	f.documents.On("Delete", mock.Anything, doc.ID).Return(nil).Once()
	f.blobs.On("Delete", mock.Anything, doc.StorageKey).Return(nil).Once()
	admin := &usecases.Actor{UserID: uuid.New(), Role: entities.UserRoleAdmin}
	require.NoError(t, f.uc.Delete(context.Background(), admin, doc.ID))
}

func TestDocumentUsecase_Verify(t *testing.T) {
	f := newDocumentFixture()
	adminID := uuid.New()
	doc := &entities.Document{ID: uuid.New()}
	f.documents.On("GetByID", mock.Anything, doc.ID).Return(doc, nil).Once()
	f.documents.On("UpdateVerification", mock.Anything, doc).Return(nil).Once()

	_, err := f.uc.Verify(context.Background(), adminID, doc.ID, &entities.VerifyDocumentInput{})
	requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeValidation)

	verified := true
	got, err := f.uc.Verify(context.Background(), adminID, doc.ID, &entities.VerifyDocumentInput{Verified: &verified, Notes: strPtr("matches registry")})
	require.NoError(t, err)
	assert.True(t, got.Verified)
	assert.Equal(t, "matches registry", got.VerificationNotes.String)
	assert.Equal(t, adminID, *got.VerifiedBy)
	assert.Equal(t, fixedNow, got.VerifiedAt.Time)

	missing := uuid.New()
	f.documents.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = f.uc.Verify(context.Background(), adminID, missing, &entities.VerifyDocumentInput{Verified: &verified})
	requireAppError(t, err, http.StatusNotFound, domainerrors.CodeDocumentNotFound)
}

func TestDocumentUsecase_ListForProject_OwnerOnly(t *testing.T) {
	f := newDocumentFixture()
	project := f.completeDraft()
	stranger := uuid.New()
	f.projects.On("GetByID", mock.Anything, project.ID).Return(project, nil).Once()
	f.companies.On("GetByUserID", mock.Anything, stranger).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := f.uc.ListForProject(context.Background(), &usecases.Actor{UserID: stranger, Role: entities.UserRoleInvestor}, project.ID)
	requireAppError(t, err, http.StatusForbidden, domainerrors.CodeNotProjectOwner)
}
