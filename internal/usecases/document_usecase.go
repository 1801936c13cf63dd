package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"crowdfund.backend/internal/domain/entities"
	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/internal/domain/repositories"
	"crowdfund.backend/pkg/logger"
	"crowdfund.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

const (
	defaultMaxDocumentBytes int64 = 10 << 20
	maxImageBytes           int64 = 5 << 20
	maxVideoBytes           int64 = 50 << 20
)

var (
	mimePDF  = "application/pdf"
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS  = "application/vnd.ms-excel"

	allowedMimeTypes = map[entities.DocumentType][]string{
		entities.DocBusinessPlan:        {mimePDF, mimeDOCX},
		entities.DocFinancialStatements: {mimePDF, mimeXLSX, mimeXLS},
		entities.DocIDCard:              {mimeJPEG, mimePNG, mimePDF},
		entities.DocPassport:            {mimeJPEG, mimePNG, mimePDF},
		entities.DocCompanyRegistration: {mimePDF},
		entities.DocProjectImage:        {mimeJPEG, mimePNG, "image/webp"},
		entities.DocProjectVideo:        {"video/mp4", "video/webm"},
	}
	defaultMimeTypes = []string{mimePDF, mimeJPEG, mimePNG}

	// Documents may be added or removed while the project is still with its owner or queued for review.
	documentEditableStatuses = []entities.ProjectStatus{entities.ProjectStatusDraft, entities.ProjectStatusSubmitted}
)

// AllowedMimeTypes lists what may be uploaded for a document type.
func AllowedMimeTypes(docType entities.DocumentType) []string {
	if allowed, ok := allowedMimeTypes[docType]; ok {
		return allowed
	}
	return defaultMimeTypes
}

// MaxDocumentBytes is the size limit for a document type.
func MaxDocumentBytes(docType entities.DocumentType) int64 {
	switch docType {
	case entities.DocProjectImage:
		return maxImageBytes
	case entities.DocProjectVideo:
		return maxVideoBytes
	}
	return defaultMaxDocumentBytes
}

// DocumentUpload is a single file received from a multipart form.
type DocumentUpload struct {
	DocType  entities.DocumentType
	Filename string
	MimeType string
	Size     int64
	Body     io.Reader
}

// DocumentUsecase stores uploaded files and their metadata.
type DocumentUsecase struct {
	documentRepo repositories.DocumentRepository
	blobs        repositories.BlobStore
	access       *ProjectAccess
	metrics      MetricsRecorder
	now          func() time.Time
}

func NewDocumentUsecase(
	documentRepo repositories.DocumentRepository,
	projectRepo repositories.ProjectRepository,
	companyRepo repositories.CompanyProfileRepository,
	blobs repositories.BlobStore,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo: documentRepo,
		blobs:        blobs,
		access:       NewProjectAccess(projectRepo, companyRepo),
		metrics:      nopMetrics{},
		now:          time.Now,
	}
}

func (u *DocumentUsecase) SetMetrics(m MetricsRecorder) {
	if m != nil {
		u.metrics = m
	}
}

func (u *DocumentUsecase) SetNow(now func() time.Time) {
	u.now = now
}

// UploadForProject attaches a document to a project the actor may edit.
func (u *DocumentUsecase) UploadForProject(ctx context.Context, actor *Actor, projectID uuid.UUID, upload *DocumentUpload) (*entities.Document, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}
	if _, err := u.checkProjectDocuments(ctx, actor, projectID, documentEditableStatuses); err != nil {
		return nil, err
	}
	return u.store(ctx, actor.UserID, &projectID, upload)
}

// UploadForUser stores a personal document such as an identity card.
func (u *DocumentUsecase) UploadForUser(ctx context.Context, actor *Actor, upload *DocumentUpload) (*entities.Document, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}
	return u.store(ctx, actor.UserID, nil, upload)
}

// ListForProject returns the documents attached to a project, for its owner or an admin.
func (u *DocumentUsecase) ListForProject(ctx context.Context, actor *Actor, projectID uuid.UUID) ([]*entities.Document, error) {
	if _, err := u.checkProjectDocuments(ctx, actor, projectID, nil); err != nil {
		return nil, err
	}
	docs, err := u.documentRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return docs, nil
}

// ListForUser returns the personal documents of the actor.
func (u *DocumentUsecase) ListForUser(ctx context.Context, actor *Actor) ([]*entities.Document, error) {
	docs, err := u.documentRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return docs, nil
}

// Open returns the document and a reader over its contents. The caller closes the reader.
func (u *DocumentUsecase) Open(ctx context.Context, actor *Actor, documentID uuid.UUID) (*entities.Document, io.ReadCloser, error) {
	doc, err := u.readable(ctx, actor, documentID)
	if err != nil {
		return nil, nil, err
	}
	body, err := u.blobs.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, errDocumentNotFound()
		}
		return nil, nil, domainerrors.InternalError(err)
	}
	return doc, body, nil
}

// Delete removes a document. Project documents can only go while the project
// is in draft or submitted, unless an admin deletes them.
func (u *DocumentUsecase) Delete(ctx context.Context, actor *Actor, documentID uuid.UUID) error {
	doc, err := u.getDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if doc.ProjectID != nil {
		if _, err := u.checkProjectDocuments(ctx, actor, *doc.ProjectID, documentEditableStatuses); err != nil {
			return err
		}
	} else if doc.UserID != actor.UserID && !actor.IsAdmin() {
		return errDocumentNotFound()
	}

	if err := u.documentRepo.Delete(ctx, doc.ID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return errDocumentNotFound()
		}
		return domainerrors.InternalError(err)
	}
	if err := u.blobs.Delete(ctx, doc.StorageKey); err != nil {
		logger.Warn(ctx, "Failed to delete document blob",
			zap.String("document_id", doc.ID.String()),
			zap.String("storage_key", doc.StorageKey),
			zap.Error(err),
		)
	}
	return nil
}

// Verify records an admin's verdict on a document.
func (u *DocumentUsecase) Verify(ctx context.Context, adminID, documentID uuid.UUID, input *entities.VerifyDocumentInput) (*entities.Document, error) {
	if input == nil || input.Verified == nil {
		return nil, domainerrors.Validation(domainerrors.CodeValidation, "verified is required")
	}
	doc, err := u.getDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	doc.Verified = *input.Verified
	doc.VerificationNotes = null.StringFromPtr(input.Notes)
	doc.VerifiedBy = &adminID
	doc.VerifiedAt = null.TimeFrom(u.now().UTC())
	if err := u.documentRepo.UpdateVerification(ctx, doc); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errDocumentNotFound()
		}
		return nil, domainerrors.InternalError(err)
	}
	return doc, nil
}

func (u *DocumentUsecase) store(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID, upload *DocumentUpload) (*entities.Document, error) {
	id := utils.GenerateUUIDv7()
	key := storageKey(upload.DocType, u.now().UTC(), id, upload.Filename)

	if err := u.blobs.Put(ctx, key, upload.Body, upload.Size, upload.MimeType); err != nil {
		return nil, domainerrors.InternalError(err)
	}

	doc := &entities.Document{
		ID:               id,
		UserID:           userID,
		ProjectID:        projectID,
		DocType:          upload.DocType,
		StorageKey:       key,
		OriginalFilename: filepath.Base(upload.Filename),
		MimeType:         upload.MimeType,
		SizeBytes:        upload.Size,
	}
	if err := u.documentRepo.Create(ctx, doc); err != nil {
		if delErr := u.blobs.Delete(ctx, key); delErr != nil {
			logger.Warn(ctx, "Failed to remove orphaned blob", zap.String("storage_key", key), zap.Error(delErr))
		}
		return nil, domainerrors.InternalError(err)
	}

	u.metrics.RecordUpload(string(doc.DocType))
	logger.Info(ctx, "Document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("doc_type", string(doc.DocType)),
		zap.Int64("size", doc.SizeBytes),
	)
	return doc, nil
}

// readable allows project owners and admins on project documents, and the uploader on personal ones.
func (u *DocumentUsecase) readable(ctx context.Context, actor *Actor, documentID uuid.UUID) (*entities.Document, error) {
	doc, err := u.getDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || doc.UserID == actor.UserID {
		return doc, nil
	}
	if doc.ProjectID != nil {
		if _, err := u.access.Check(ctx, *doc.ProjectID, actor.UserID, nil, AccessOptions{}); err != nil {
			return nil, err
		}
		return doc, nil
	}
	return nil, errDocumentNotFound()
}

func (u *DocumentUsecase) checkProjectDocuments(ctx context.Context, actor *Actor, projectID uuid.UUID, allowed []entities.ProjectStatus) (*entities.Project, error) {
	if actor.IsAdmin() {
		return u.access.Check(ctx, projectID, actor.UserID, nil, AccessOptions{AdminBypass: true})
	}
	return u.access.Check(ctx, projectID, actor.UserID, allowed, AccessOptions{})
}

func (u *DocumentUsecase) getDocument(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	doc, err := u.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, errDocumentNotFound()
		}
		return nil, domainerrors.InternalError(err)
	}
	return doc, nil
}

func validateUpload(upload *DocumentUpload) error {
	if upload == nil || upload.Body == nil {
		return domainerrors.Validation(domainerrors.CodeNoFileUploaded, "no file uploaded")
	}
	if upload.DocType == "" {
		return domainerrors.Validation(domainerrors.CodeMissingDocType, "docType is required")
	}
	if !upload.DocType.IsValid() {
		return domainerrors.Validation(domainerrors.CodeMissingDocType, fmt.Sprintf("unknown docType '%s'", upload.DocType))
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.SplitN(upload.MimeType, ";", 2)[0]))
	allowed := AllowedMimeTypes(upload.DocType)
	if !containsString(allowed, mimeType) {
		return domainerrors.Validation(domainerrors.CodeInvalidFile,
			fmt.Sprintf("file type '%s' is not allowed for %s", mimeType, upload.DocType)).
			WithDetail("allowedTypes", allowed)
	}
	upload.MimeType = mimeType

	if limit := MaxDocumentBytes(upload.DocType); upload.Size > limit {
		return domainerrors.NewAppError(http.StatusRequestEntityTooLarge, domainerrors.CodeFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit for %s", limit>>20, upload.DocType), domainerrors.ErrInvalidInput).
			WithDetail("maxBytes", limit)
	}
	if upload.Size <= 0 {
		return domainerrors.Validation(domainerrors.CodeNoFileUploaded, "uploaded file is empty")
	}
	return nil
}

// storageKey lays blobs out as <docType>/<YYYY-MM>/<id><ext>.
func storageKey(docType entities.DocumentType, at time.Time, id uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", docType, at.Format("2006-01"), id, ext)
}

func containsString(set []string, s string) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func errDocumentNotFound() *domainerrors.AppError {
	return domainerrors.NotFound("document not found").WithCode(domainerrors.CodeDocumentNotFound)
}
